// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package wire implements the tracker's fixed-size on-wire event codec:
// a 25-byte big-endian frame used for network reception and file
// recording.
package wire

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/relabs-tech/inertial-tracker/internal/event"
)

// Magic is the four-byte value every encoded frame must begin with.
const Magic uint32 = 0x56289740

// FrameSize is the exact byte length of an encoded frame.
const FrameSize = 25

// Encode serializes e into a 25-byte big-endian frame.
func Encode(e event.AxesEvent) [FrameSize]byte {
	var buf [FrameSize]byte
	binary.BigEndian.PutUint32(buf[0:4], Magic)
	buf[4] = byte(e.Kind)
	binary.BigEndian.PutUint64(buf[5:13], uint64(e.Timestamp))
	binary.BigEndian.PutUint32(buf[13:17], math.Float32bits(float32(e.Value[0])))
	binary.BigEndian.PutUint32(buf[17:21], math.Float32bits(float32(e.Value[1])))
	binary.BigEndian.PutUint32(buf[21:25], math.Float32bits(float32(e.Value[2])))
	return buf
}

// Decode parses a 25-byte frame. A magic-number mismatch is not an error:
// it logs a diagnostic and returns a zero-value Unknown event, matching
// a decode error is logged rather than raised.
func Decode(buf []byte) event.AxesEvent {
	if len(buf) < FrameSize {
		log.Printf("wire: short frame: got %d bytes, want %d", len(buf), FrameSize)
		return event.AxesEvent{Kind: event.Unknown}
	}
	magic := binary.BigEndian.Uint32(buf[0:4])
	if magic != Magic {
		log.Printf("wire: bad magic: got 0x%08x, want 0x%08x", magic, Magic)
		return event.AxesEvent{Kind: event.Unknown}
	}

	kind := event.Kind(int8(buf[4]))
	ts := int64(binary.BigEndian.Uint64(buf[5:13]))
	var value [3]float64
	for i := 0; i < 3; i++ {
		off := 13 + i*4
		bits := binary.BigEndian.Uint32(buf[off : off+4])
		value[i] = float64(math.Float32frombits(bits))
	}

	return event.AxesEvent{Kind: kind, Timestamp: ts, Value: value}
}
