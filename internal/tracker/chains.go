// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package tracker

import (
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/filter"
	"github.com/relabs-tech/inertial-tracker/internal/pipeline"
)

// buildChains assembles the four filter chains fresh for a new run,
// wiring their stages against the tracker's shared state and callback
// dispatchers. Called with t.mu already held, from Start.
func (t *Tracker) buildChains() {
	t.buildAccelChain()
	t.buildGyroChain()
	t.buildMagChain()
	t.buildLinearChain()
}

func (t *Tracker) buildAccelChain() {
	raw := filter.NewCallback[event.AxesEvent](t.dispatchRawAccelerometer)
	drop := filter.NewDrop[event.AxesEvent](t.th.dropAcc)
	stats := filter.NewStatistics(&t.statsAcc, t.th.wAcc)
	calib := filter.NewFunctionFilter(t.calibrate)
	fixdrift := filter.NewCallback[event.AxesEvent](t.fixDrift)
	premul := filter.NewPreMultiplyBy(&t.orientation)
	removeGravity := filter.NewRemoveValueOf(&t.gravity)
	epsAcc := filter.NewEpsilonZero(t.th.epsAcc)
	filtered := filter.NewCallback[event.AxesEvent](t.dispatchFilteredAccelerometer)
	toVelocity := filter.NewChangeType(event.Velocity)
	integrateVel := filter.NewDeltaIntegrate()
	addVel := filter.NewAddValueTo(&t.velocity)
	epsVel := filter.NewEpsilonZero(t.th.epsVel)
	velocity := filter.NewCallback[event.AxesEvent](t.dispatchVelocity)
	toDisplacement := filter.NewChangeType(event.Displacement)
	integrateDisp := filter.NewDeltaIntegrate()
	addDisp := filter.NewAddValueTo(&t.displacement)
	displacement := filter.NewCallback[event.AxesEvent](t.dispatchDisplacement)

	pipeline.ConnectChain[event.AxesEvent](
		raw, drop, stats, calib, fixdrift, premul, removeGravity, epsAcc, filtered,
		toVelocity, integrateVel, addVel, epsVel, velocity,
		toDisplacement, integrateDisp, addDisp, displacement,
	)

	t.accelHead = raw
}

func (t *Tracker) buildGyroChain() {
	raw := filter.NewCallback[event.AxesEvent](t.dispatchRawGyroscope)
	drop := filter.NewDrop[event.AxesEvent](t.th.dropGyr)
	stats := filter.NewStatistics(&t.statsGyr, t.th.wGyr)
	calib := filter.NewFunctionFilter(t.calibrate)
	fixdrift := filter.NewCallback[event.AxesEvent](t.fixDrift)
	epsGyr := filter.NewEpsilonZero(t.th.epsGyr)
	filtered := filter.NewCallback[event.AxesEvent](t.dispatchFilteredGyroscope)
	toOrientation := filter.NewChangeType(event.Orientation)
	integrate := filter.NewDeltaIntegrate()
	toMatrix := &filter.ToRotationMatrix{}
	postmul := filter.NewPostMultiplyThe(&t.orientation)
	orientation := filter.NewCallback[event.OrientationEvent](t.dispatchOrientation)

	pipeline.ConnectChain[event.AxesEvent](raw, drop, stats, calib, fixdrift, epsGyr, filtered, toOrientation, integrate)
	pipeline.Connect[event.AxesEvent](integrate, toMatrix)
	pipeline.Connect[event.OrientationEvent](toMatrix, postmul)
	pipeline.Connect[event.OrientationEvent](postmul, orientation)

	t.gyroHead = raw
}

func (t *Tracker) buildMagChain() {
	raw := filter.NewCallback[event.AxesEvent](t.dispatchRawMagneticField)
	drop := filter.NewDrop[event.AxesEvent](t.th.dropMag)
	stats := filter.NewStatistics(&t.statsMag, t.th.wMag)
	calib := filter.NewFunctionFilter(t.calibrate)
	fixdrift := filter.NewCallback[event.AxesEvent](t.fixDrift)
	premul := filter.NewPreMultiplyBy(&t.orientation)
	removeRef := filter.NewRemoveValueOf(&t.magneticRef)
	filtered := filter.NewCallback[event.AxesEvent](t.dispatchFilteredMagneticField)

	pipeline.ConnectChain[event.AxesEvent](raw, drop, stats, calib, fixdrift, premul, removeRef, filtered)

	t.magHead = raw
}

// buildLinearChain assembles the pre-integrated linear-acceleration
// chain. It is mutually exclusive with the raw accelerometer and
// gyroscope chains within a single session: both reuse the shared
// &velocity and &displacement accumulators, so a host must not deliver
// both kinds of event in the same run.
func (t *Tracker) buildLinearChain() {
	toAccel := filter.NewChangeType(event.Accelerometer)
	raw := filter.NewCallback[event.AxesEvent](t.dispatchRawAccelerometer)
	drop := filter.NewDrop[event.AxesEvent](t.th.dropAcc)
	filtered := filter.NewCallback[event.AxesEvent](t.dispatchFilteredAccelerometer)
	toVelocity := filter.NewChangeType(event.Velocity)
	integrateVel := filter.NewDeltaIntegrate()
	addVel := filter.NewAddValueTo(&t.velocity)
	velocity := filter.NewCallback[event.AxesEvent](t.dispatchVelocity)
	toDisplacement := filter.NewChangeType(event.Displacement)
	integrateDisp := filter.NewDeltaIntegrate()
	addDisp := filter.NewAddValueTo(&t.displacement)
	displacement := filter.NewCallback[event.AxesEvent](t.dispatchDisplacement)

	pipeline.ConnectChain[event.AxesEvent](
		toAccel, raw, drop, filtered,
		toVelocity, integrateVel, addVel, velocity,
		toDisplacement, integrateDisp, addDisp, displacement,
	)

	t.linearHead = toAccel
}

func (t *Tracker) dispatchRawAccelerometer(e event.AxesEvent) {
	if t.onRawAccelerometer != nil {
		t.onRawAccelerometer(e)
	}
}

func (t *Tracker) dispatchFilteredAccelerometer(e event.AxesEvent) {
	if t.onFilteredAccelerometer != nil {
		t.onFilteredAccelerometer(e)
	}
}

func (t *Tracker) dispatchVelocity(e event.AxesEvent) {
	if t.onVelocity != nil {
		t.onVelocity(e)
	}
}

func (t *Tracker) dispatchDisplacement(e event.AxesEvent) {
	if t.onDisplacement != nil {
		t.onDisplacement(e)
	}
}

func (t *Tracker) dispatchRawGyroscope(e event.AxesEvent) {
	if t.onRawGyroscope != nil {
		t.onRawGyroscope(e)
	}
}

func (t *Tracker) dispatchFilteredGyroscope(e event.AxesEvent) {
	if t.onFilteredGyroscope != nil {
		t.onFilteredGyroscope(e)
	}
}

func (t *Tracker) dispatchOrientation(e event.OrientationEvent) {
	if t.onOrientation != nil {
		t.onOrientation(e)
	}
}

func (t *Tracker) dispatchRawMagneticField(e event.AxesEvent) {
	if t.onRawMagneticField != nil {
		t.onRawMagneticField(e)
	}
}

func (t *Tracker) dispatchFilteredMagneticField(e event.AxesEvent) {
	if t.onFilteredMagneticField != nil {
		t.onFilteredMagneticField(e)
	}
}
