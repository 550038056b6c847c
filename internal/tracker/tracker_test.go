// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package tracker

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/inertial-tracker/internal/config"
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/vecmat"
)

const ns = int64(time.Millisecond) * 10 // 10ms sample spacing

func fastCalibrationConfig() *config.Config {
	cfg := config.New()
	cfg.Set(KeyStillnessAccEventNumber, "4")
	cfg.Set(KeyStillnessGyrEventNumber, "4")
	cfg.Set(KeyStillnessMagEventNumber, "4")
	cfg.Set(KeyStillnessAccVarianceThresh, "1.0")
	cfg.Set(KeyStillnessGyrSquaresThresh, "1.0")
	cfg.Set(KeyStillnessMagVarianceThresh, "1.0")
	cfg.Set(KeyAccDropInit, "0")
	cfg.Set(KeyGyrDropInit, "0")
	cfg.Set(KeyMagDropInit, "0")
	return cfg
}

// calibrate feeds n identical stillness samples of each kind, interleaved,
// to drive the tracker through its one-time calibration transition.
func calibrate(t *Tracker, n int, acc, gyr, mag vecmat.Vec3, startTS int64) int64 {
	ts := startTS
	for i := 0; i < n; i++ {
		t.ReceiveEvent(event.AxesEvent{Kind: event.Accelerometer, Timestamp: ts, Value: acc})
		t.ReceiveEvent(event.AxesEvent{Kind: event.Gyroscope, Timestamp: ts, Value: gyr})
		t.ReceiveEvent(event.AxesEvent{Kind: event.MagneticField, Timestamp: ts, Value: mag})
		ts += ns
	}
	return ts
}

func TestCalibrationTransitionsExactlyOnce(t *testing.T) {
	tr := New(fastCalibrationConfig())
	tr.Start()
	defer tr.Stop()

	// The worker holds tr.mu while it runs callbacks, so the callback
	// reads the field directly instead of calling Calibrated().
	var transitions int
	wasCalibrated := false
	tr.SetRawAccelerometerCallback(func(event.AxesEvent) {
		if tr.calibrated && !wasCalibrated {
			transitions++
		}
		wasCalibrated = tr.calibrated
	})

	ts := calibrate(tr, 4, vecmat.Vec3{0, 0, 9.81}, vecmat.Vec3{0, 0, 0}, vecmat.Vec3{20, 0, 40}, 0)
	// A few more stillness samples after calibration: calibrated() must
	// not flip again and gravity must not move.
	calibrate(tr, 4, vecmat.Vec3{0, 0, 9.81}, vecmat.Vec3{0, 0, 0}, vecmat.Vec3{20, 0, 40}, ts)

	tr.Stop()

	assert.True(t, tr.Calibrated())
	assert.Equal(t, 1, transitions)

	tr.mu.Lock()
	gravity := tr.gravity.Value
	tr.mu.Unlock()
	assert.InDelta(t, 9.81, vecmat.Norm(gravity), 0.2)
}

func TestDriftFixKeepsOrientationStable(t *testing.T) {
	tr := New(fastCalibrationConfig())
	tr.Start()
	defer tr.Stop()

	ts := calibrate(tr, 4, vecmat.Vec3{0, 0, 9.81}, vecmat.Vec3{0, 0, 0}, vecmat.Vec3{20, 0, 40}, 0)
	require.Eventually(t, tr.Calibrated, time.Second, time.Millisecond)

	// Feed a few more still samples: accel at gravity, gyro at zero,
	// mag at the reference. Drift-fix should be a no-op on an already
	// correct orientation.
	calibrate(tr, 4, vecmat.Vec3{0, 0, 9.81}, vecmat.Vec3{0, 0, 0}, vecmat.Vec3{20, 0, 40}, ts)
	tr.Stop()

	oe := tr.Orientation()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, oe.Value[i][j], 1e-6)
		}
	}
}

// TestStillDeviceScenario: 64 accel (0,0,9.81), 64 gyro (0,0,0), 64 mag
// (20,0,40), interleaved. Expect calibrated, velocity~=0,
// displacement~=0, orientation=identity.
func TestStillDeviceScenario(t *testing.T) {
	tr := New(config.New()) // default thresholds and windows
	tr.Start()
	defer tr.Stop()

	calibrate(tr, 64, vecmat.Vec3{0, 0, 9.81}, vecmat.Vec3{0, 0, 0}, vecmat.Vec3{20, 0, 40}, 0)
	tr.Stop()

	assert.True(t, tr.Calibrated())

	vel := tr.Velocity()
	disp := tr.Displacement()
	assert.InDelta(t, 0.0, vecmat.Norm(vel.Value), 0.2)
	assert.InDelta(t, 0.0, vecmat.Norm(disp.Value), 0.2)

	oe := tr.Orientation()
	matAlmostEqual(t, vecmat.Identity3(), oe.Value, 0.05)
}

// TestLinearDisplacementScenario: after calibration, a constant
// 1 m/s^2 accelerometer signal along X (plus residual gravity along Z)
// for 1s should yield velocity near 1 m/s and displacement near 0.5 m.
func TestLinearDisplacementScenario(t *testing.T) {
	tr := New(fastCalibrationConfig())
	tr.Start()
	defer tr.Stop()

	ts := calibrate(tr, 4, vecmat.Vec3{0, 0, 9.81}, vecmat.Vec3{0, 0, 0}, vecmat.Vec3{20, 0, 40}, 0)
	require.Eventually(t, tr.Calibrated, time.Second, time.Millisecond)

	for i := 0; i < 100; i++ {
		tr.ReceiveEvent(event.AxesEvent{Kind: event.Accelerometer, Timestamp: ts, Value: vecmat.Vec3{1, 0, 9.81}})
		ts += ns
	}
	tr.Stop()

	vel := tr.Velocity()
	disp := tr.Displacement()
	assert.InDelta(t, 1.0, vecmat.Norm(vel.Value), 0.3)
	assert.InDelta(t, 0.5, vecmat.Norm(disp.Value), 0.3)
}

// TestYawScenario: after calibration, a constant pi/2 rad/s gyro
// signal about Z for 1s should rotate the orientation to approximately
// rotation_matrix((0,0,1), pi/2).
func TestYawScenario(t *testing.T) {
	tr := New(fastCalibrationConfig())
	tr.Start()
	defer tr.Stop()

	ts := calibrate(tr, 4, vecmat.Vec3{0, 0, 9.81}, vecmat.Vec3{0, 0, 0}, vecmat.Vec3{20, 0, 40}, 0)
	require.Eventually(t, tr.Calibrated, time.Second, time.Millisecond)

	for i := 0; i < 100; i++ {
		tr.ReceiveEvent(event.AxesEvent{Kind: event.Gyroscope, Timestamp: ts, Value: vecmat.Vec3{0, 0, math.Pi / 2}})
		ts += ns
	}
	tr.Stop()

	want := vecmat.RotationMatrix(vecmat.Vec3{0, 0, 1}, math.Pi/2)
	matAlmostEqual(t, want, tr.Orientation().Value, 0.1)
}

func matAlmostEqual(t *testing.T, want, got vecmat.Mat3, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDeltaf(t, want[i][j], got[i][j], tol, "mismatch at [%d][%d]", i, j)
		}
	}
}
