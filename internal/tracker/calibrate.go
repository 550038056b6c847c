// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package tracker

import "github.com/relabs-tech/inertial-tracker/internal/event"

// calibrate is the predicate behind each chain's Calibrate stage. Once
// the tracker has calibrated, every event passes through unchanged.
// Until then, it is evaluated on every event dropped out of all three
// chains; when the three stillness conditions co-occur it snapshots
// gravity and the magnetic heading reference and flips calibrated,
// then forwards this event. While uncalibrated it drops the event: no
// downstream stage in any chain runs on uncalibrated data.
//
// Called with t.mu already held by the worker dispatch loop.
func (t *Tracker) calibrate(_ event.AxesEvent) bool {
	if t.calibrated {
		return true
	}

	still := t.statsAcc.Count == t.th.wAcc && t.statsAcc.Variance < t.th.thAccVar &&
		t.statsGyr.Count == t.th.wGyr && t.statsGyr.Squares < t.th.thGyrSq &&
		t.statsMag.Count == t.th.wMag && t.statsMag.Variance < t.th.thMagVar

	if !still {
		return false
	}

	t.gravity.Value = t.statsAcc.Mean
	t.magneticRef.Value = t.statsMag.Mean
	t.calibrated = true
	return true
}
