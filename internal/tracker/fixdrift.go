// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package tracker

import (
	"math"

	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/vecmat"
)

// fixDrift is the effect behind each chain's FixDrift stage. It never
// filters; it only corrects shared state in place when the device is
// still. Called with t.mu already held by the worker dispatch loop.
func (t *Tracker) fixDrift(_ event.AxesEvent) {
	conditionA := t.statsGyr.Squares < t.th.thGyrSq &&
		t.statsAcc.Variance < t.th.thAccVar &&
		math.Abs(vecmat.Norm(t.gravity.Value)-vecmat.Norm(t.statsAcc.Mean)) < t.th.epsGrav

	if !conditionA {
		return
	}

	driftFix := vecmat.RotationMatrixBetween(
		vecmat.MulMatVec(t.orientation.Value, t.statsAcc.Mean),
		t.gravity.Value,
	)
	t.orientation.Value = vecmat.MulMat(driftFix, t.orientation.Value)
	if t.th.updateGravity {
		t.gravity.Value = vecmat.Scale(t.gravity.Value, t.statsAcc.MeanMagnitude/vecmat.Norm(t.gravity.Value))
	}
	t.velocity.Value = vecmat.Scale(t.velocity.Value, t.th.speedQuocient)

	conditionB := t.statsMag.Variance < t.th.thMagVar &&
		math.Abs(vecmat.Norm(t.statsMag.Mean)-vecmat.Norm(t.magneticRef.Value)) < t.th.epsMag
	if !conditionB {
		return
	}

	// R rotates gravity onto +Z; project collapses a vector onto the
	// horizontal plane in that frame, then rotates it back by R^T
	// (equivalently v*R, since R is orthonormal). The reverse rotation
	// must be this right-multiply form, not R^-1*(.) applied before
	// zeroing.
	R := vecmat.RotationMatrixBetween(t.gravity.Value, vecmat.Vec3{0, 0, 1})
	project := func(v vecmat.Vec3) vecmat.Vec3 {
		rv := vecmat.MulMatVec(R, v)
		rv[2] = 0
		return vecmat.MulVecMat(rv, R)
	}

	pNow := project(vecmat.MulMatVec(t.orientation.Value, t.statsMag.Mean))
	pRef := project(t.magneticRef.Value)
	headingFix := vecmat.RotationMatrixBetween(pNow, pRef)
	t.orientation.Value = vecmat.MulMat(headingFix, t.orientation.Value)
}
