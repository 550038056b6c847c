// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package tracker implements the inertial tracker core: the shared
// orientation/velocity/displacement state, the four per-sensor filter
// chains that mutate it, the worker goroutine that dispatches queued
// events to those chains, and stillness-based calibration and drift
// correction.
package tracker

import (
	"log"
	"sync"

	"github.com/relabs-tech/inertial-tracker/internal/config"
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/pipeline"
	"github.com/relabs-tech/inertial-tracker/internal/queue"
)

// Tracker owns the tracker's shared state, its worker goroutine, and
// the four filter chains. The zero value is not usable; construct one
// with New.
type Tracker struct {
	mu sync.Mutex

	cfg *config.Config
	th  thresholds

	orientation event.OrientationEvent
	velocity    event.AxesEvent
	displacement event.AxesEvent
	gravity     event.AxesEvent
	magneticRef event.AxesEvent
	statsAcc    event.SensorStats
	statsGyr    event.SensorStats
	statsMag    event.SensorStats
	calibrated  bool

	running bool
	queue   *queue.BlockingQueue[event.AxesEvent]
	wg      sync.WaitGroup

	accelHead  pipeline.Receiver[event.AxesEvent]
	gyroHead   pipeline.Receiver[event.AxesEvent]
	magHead    pipeline.Receiver[event.AxesEvent]
	linearHead pipeline.Receiver[event.AxesEvent]

	onRawAccelerometer      func(event.AxesEvent)
	onFilteredAccelerometer func(event.AxesEvent)
	onVelocity              func(event.AxesEvent)
	onDisplacement          func(event.AxesEvent)
	onRawGyroscope          func(event.AxesEvent)
	onFilteredGyroscope     func(event.AxesEvent)
	onOrientation           func(event.OrientationEvent)
	onRawMagneticField      func(event.AxesEvent)
	onFilteredMagneticField func(event.AxesEvent)
}

// New returns an inert Tracker bound to cfg. cfg may be mutated freely
// until Start is called; the tracker reads the stillness and epsilon
// keys from it on every Start.
func New(cfg *config.Config) *Tracker {
	return &Tracker{cfg: cfg, orientation: event.NewOrientationEvent()}
}

// Config returns the tracker's configuration map. It is intended to be
// mutated only before Start.
func (t *Tracker) Config() *config.Config {
	return t.cfg
}

// Start resets all tracker state, rebuilds the four filter chains from
// the current configuration, and spawns the worker goroutine. If the
// tracker is already running, it is stopped first.
func (t *Tracker) Start() {
	t.Stop()

	t.mu.Lock()
	t.th = loadThresholds(t.cfg)
	t.orientation = event.NewOrientationEvent()
	t.velocity = event.AxesEvent{Kind: event.Velocity}
	t.displacement = event.AxesEvent{Kind: event.Displacement}
	t.gravity = event.AxesEvent{Kind: event.Accelerometer}
	t.magneticRef = event.AxesEvent{Kind: event.MagneticField}
	t.statsAcc = event.SensorStats{}
	t.statsGyr = event.SensorStats{}
	t.statsMag = event.SensorStats{}
	t.calibrated = false
	t.queue = queue.New[event.AxesEvent]()
	t.buildChains()
	t.running = true
	t.mu.Unlock()

	t.wg.Add(1)
	go t.run()
}

// Stop signals the worker to drain and exit, and waits for it to do
// so. It is a no-op if the tracker is not running.
func (t *Tracker) Stop() {
	t.mu.Lock()
	running := t.running
	q := t.queue
	t.mu.Unlock()
	if !running {
		return
	}
	q.PushBack(event.AxesEvent{Kind: event.Stop})
	t.wg.Wait()
}

// Stopped reports whether the worker goroutine is not currently running.
func (t *Tracker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.running
}

// Calibrated reports whether the tracker has completed its one-time
// stillness calibration.
func (t *Tracker) Calibrated() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calibrated
}

// ReceiveEvent is the tracker's single entry point for producers. START
// and STOP are handled immediately; any other kind is enqueued for the
// worker if the tracker is running, and otherwise dropped.
func (t *Tracker) ReceiveEvent(e event.AxesEvent) {
	switch e.Kind {
	case event.Stop:
		t.Stop()
	case event.Start:
		t.Start()
	default:
		t.mu.Lock()
		running := t.running
		q := t.queue
		t.mu.Unlock()
		if running {
			q.PushBack(e)
		}
	}
}

// Orientation returns a copy of the tracker's current orientation estimate.
func (t *Tracker) Orientation() event.OrientationEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.orientation
}

// Velocity returns a copy of the tracker's current velocity estimate.
func (t *Tracker) Velocity() event.AxesEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.velocity
}

// Displacement returns a copy of the tracker's current displacement estimate.
func (t *Tracker) Displacement() event.AxesEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.displacement
}

// AccelerometerStats returns a copy of the accelerometer window statistics.
func (t *Tracker) AccelerometerStats() event.SensorStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statsAcc
}

// GyroscopeStats returns a copy of the gyroscope window statistics.
func (t *Tracker) GyroscopeStats() event.SensorStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statsGyr
}

// MagneticFieldStats returns a copy of the magnetometer window statistics.
func (t *Tracker) MagneticFieldStats() event.SensorStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statsMag
}

// SetRawAccelerometerCallback sets the observer invoked with every raw
// accelerometer event, before drop/statistics/calibration.
func (t *Tracker) SetRawAccelerometerCallback(fn func(event.AxesEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRawAccelerometer = fn
}

// SetFilteredAccelerometerCallback sets the observer invoked with the
// gravity-removed, epsilon-zeroed accelerometer event.
func (t *Tracker) SetFilteredAccelerometerCallback(fn func(event.AxesEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onFilteredAccelerometer = fn
}

// SetVelocityCallback sets the observer invoked with every updated
// velocity estimate.
func (t *Tracker) SetVelocityCallback(fn func(event.AxesEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onVelocity = fn
}

// SetDisplacementCallback sets the observer invoked with every updated
// displacement estimate.
func (t *Tracker) SetDisplacementCallback(fn func(event.AxesEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDisplacement = fn
}

// SetRawGyroscopeCallback sets the observer invoked with every raw
// gyroscope event.
func (t *Tracker) SetRawGyroscopeCallback(fn func(event.AxesEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRawGyroscope = fn
}

// SetFilteredGyroscopeCallback sets the observer invoked with the
// epsilon-zeroed gyroscope event.
func (t *Tracker) SetFilteredGyroscopeCallback(fn func(event.AxesEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onFilteredGyroscope = fn
}

// SetOrientationCallback sets the observer invoked with every updated
// orientation estimate.
func (t *Tracker) SetOrientationCallback(fn func(event.OrientationEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOrientation = fn
}

// SetRawMagneticFieldCallback sets the observer invoked with every raw
// magnetometer event.
func (t *Tracker) SetRawMagneticFieldCallback(fn func(event.AxesEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRawMagneticField = fn
}

// SetFilteredMagneticFieldCallback sets the observer invoked with the
// reference-removed magnetometer event.
func (t *Tracker) SetFilteredMagneticFieldCallback(fn func(event.AxesEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onFilteredMagneticField = fn
}

func (t *Tracker) run() {
	defer t.wg.Done()
	for {
		e, err := t.queue.PopFront()
		if err != nil {
			log.Printf("tracker: queue wait failed, stopping worker: %v", err)
			t.mu.Lock()
			t.running = false
			t.mu.Unlock()
			return
		}
		if e.Kind == event.Stop {
			t.mu.Lock()
			t.running = false
			t.mu.Unlock()
			return
		}

		t.mu.Lock()
		switch e.Kind {
		case event.Accelerometer:
			t.accelHead.Receive(e)
		case event.Gyroscope:
			t.gyroHead.Receive(e)
		case event.MagneticField:
			t.magHead.Receive(e)
		case event.LinearAcceleration:
			t.linearHead.Receive(e)
		}
		t.mu.Unlock()
	}
}
