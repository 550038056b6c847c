// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package event defines the tracker's typed event records: tri-axial
// sensor samples (AxesEvent), orientation snapshots (OrientationEvent),
// the event-kind enum shared by both, and the running per-sensor
// statistics (SensorStats) the tracker's Statistics filter maintains.
package event

import (
	"encoding/json"
	"fmt"

	"github.com/relabs-tech/inertial-tracker/internal/vecmat"
)

// Kind identifies the sensor or system origin of an event.
type Kind int8

const (
	Unknown             Kind = 0x00
	Accelerometer       Kind = 0x01
	Gyroscope           Kind = 0x02
	MagneticField       Kind = 0x03
	Orientation         Kind = 0x04
	Velocity            Kind = 0x05
	Displacement        Kind = 0x06
	LinearAcceleration  Kind = 0x07
	System              Kind = 0x70
	Start               Kind = 0x10
	Stop                Kind = 0x20
)

// IsSystem reports whether k carries the System mask, i.e. is a lifecycle
// signal rather than a sensor reading.
func IsSystem(k Kind) bool {
	return k&System != 0
}

// TimestampToSeconds converts a raw nanosecond timestamp to seconds.
const nanosToSeconds = 1e-9

func TimestampToSeconds(ts int64) float64 {
	return float64(ts) * nanosToSeconds
}

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "UNKNOWN"
	case Accelerometer:
		return "ACCELEROMETER"
	case Gyroscope:
		return "GYROSCOPE"
	case MagneticField:
		return "MAGNETIC_FIELD"
	case Orientation:
		return "ORIENTATION"
	case Velocity:
		return "VELOCITY"
	case Displacement:
		return "DISPLACEMENT"
	case LinearAcceleration:
		return "LINEAR_ACCELERATION"
	case Start:
		return "START"
	case Stop:
		return "STOP"
	default:
		return fmt.Sprintf("KIND(0x%02x)", int8(k))
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// AxesEvent is a tri-axial sensor sample or derived quantity.
type AxesEvent struct {
	Kind      Kind
	Timestamp int64
	Value     vecmat.Vec3
}

// OrientationEvent is a rotation-matrix snapshot. The zero value is not
// a valid orientation; use NewOrientationEvent for the identity default.
type OrientationEvent struct {
	Kind      Kind
	Timestamp int64
	Value     vecmat.Mat3
}

// NewOrientationEvent returns an OrientationEvent whose Value is the
// identity matrix.
func NewOrientationEvent() OrientationEvent {
	return OrientationEvent{Kind: Orientation, Value: vecmat.Identity3()}
}

// SensorStats is the running per-sensor window statistics maintained by
// the Statistics filter stage. The zero value is the correct initial
// state (count 0, mean zero).
type SensorStats struct {
	Count         int
	Rate          float64
	Mean          vecmat.Vec3
	MeanMagnitude float64
	Variance      float64
	Squares       float64
}
