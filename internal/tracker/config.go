// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package tracker

// Configuration keys and their documented defaults, grounded in the
// reference Tracker::run()'s local constant table.
const (
	KeyStillnessAccEventNumber    = "STILLNESS_ACC_EVENT_NUMBER"
	KeyStillnessGyrEventNumber    = "STILLNESS_GYR_EVENT_NUMBER"
	KeyStillnessMagEventNumber    = "STILLNESS_MAG_EVENT_NUMBER"
	KeyStillnessAccVarianceThresh = "STILLNESS_ACC_VARIANCE_THRESHOLD"
	KeyStillnessGyrSquaresThresh  = "STILLNESS_GYR_SQUARES_THRESHOLD"
	KeyStillnessMagVarianceThresh = "STILLNESS_MAG_VARIANCE_THRESHOLD"
	KeyStillnessGravityEpsilon    = "STILLNESS_GRAVITY_EPSILON"
	KeyStillnessMagFieldEpsilon   = "STILLNESS_MAG_FIELD_EPSILON"
	KeyStillnessSpeedQuocient     = "STILLNESS_SPEED_QUOCIENT"
	KeyStillnessUpdateGravity     = "STILLNESS_UPDATE_GRAVITY"
	KeyAccDropInit                = "ACC_DROP_INIT"
	KeyGyrDropInit                = "GYR_DROP_INIT"
	KeyMagDropInit                = "MAG_DROP_INIT"
	KeyAccEpsilonZero             = "ACC_EPSILON_ZERO"
	KeyVelEpsilonZero             = "VEL_EPSILON_ZERO"
	KeyGyrEpsilonZero             = "GYR_EPSILON_ZERO"
)

const (
	defaultStillnessAccEventNumber    = 16
	defaultStillnessGyrEventNumber    = 32
	defaultStillnessMagEventNumber    = 16
	defaultStillnessAccVarianceThresh = 0.01
	defaultStillnessGyrSquaresThresh  = 0.1
	defaultStillnessMagVarianceThresh = 0.15
	defaultStillnessGravityEpsilon    = 1.5
	defaultStillnessMagFieldEpsilon   = 30.0
	defaultStillnessSpeedQuocient     = 0.0
	defaultStillnessUpdateGravity     = 1
	defaultAccDropInit                = 32
	defaultGyrDropInit                = 32
	defaultMagDropInit                = 32
	defaultAccEpsilonZero             = 0.07
	defaultVelEpsilonZero             = 0.3
	defaultGyrEpsilonZero             = 0.02
)

// thresholds bundles the values read out of the configuration map at
// Start() time, so the chain closures don't re-parse the config map on
// every event.
type thresholds struct {
	wAcc, wGyr, wMag          int
	thAccVar, thGyrSq, thMagVar float64
	epsGrav, epsMag            float64
	speedQuocient              float64
	updateGravity              bool
	dropAcc, dropGyr, dropMag  int
	epsAcc, epsVel, epsGyr     float64
}

func loadThresholds(cfg configReader) thresholds {
	return thresholds{
		wAcc:          int(cfg.AsU64(KeyStillnessAccEventNumber, defaultStillnessAccEventNumber)),
		wGyr:          int(cfg.AsU64(KeyStillnessGyrEventNumber, defaultStillnessGyrEventNumber)),
		wMag:          int(cfg.AsU64(KeyStillnessMagEventNumber, defaultStillnessMagEventNumber)),
		thAccVar:      cfg.AsF64(KeyStillnessAccVarianceThresh, defaultStillnessAccVarianceThresh),
		thGyrSq:       cfg.AsF64(KeyStillnessGyrSquaresThresh, defaultStillnessGyrSquaresThresh),
		thMagVar:      cfg.AsF64(KeyStillnessMagVarianceThresh, defaultStillnessMagVarianceThresh),
		epsGrav:       cfg.AsF64(KeyStillnessGravityEpsilon, defaultStillnessGravityEpsilon),
		epsMag:        cfg.AsF64(KeyStillnessMagFieldEpsilon, defaultStillnessMagFieldEpsilon),
		speedQuocient: cfg.AsF64(KeyStillnessSpeedQuocient, defaultStillnessSpeedQuocient),
		updateGravity: cfg.AsU64(KeyStillnessUpdateGravity, defaultStillnessUpdateGravity) != 0,
		dropAcc:       int(cfg.AsU64(KeyAccDropInit, defaultAccDropInit)),
		dropGyr:       int(cfg.AsU64(KeyGyrDropInit, defaultGyrDropInit)),
		dropMag:       int(cfg.AsU64(KeyMagDropInit, defaultMagDropInit)),
		epsAcc:        cfg.AsF64(KeyAccEpsilonZero, defaultAccEpsilonZero),
		epsVel:        cfg.AsF64(KeyVelEpsilonZero, defaultVelEpsilonZero),
		epsGyr:        cfg.AsF64(KeyGyrEpsilonZero, defaultGyrEpsilonZero),
	}
}

// configReader is the subset of *config.Config the tracker depends on,
// kept narrow so tests can supply a stub.
type configReader interface {
	AsU64(key string, def uint64) uint64
	AsF64(key string, def float64) float64
}
