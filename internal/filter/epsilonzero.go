// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package filter

import (
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/pipeline"
	"github.com/relabs-tech/inertial-tracker/internal/vecmat"
)

// EpsilonZero replaces an event's value with the zero vector whenever
// its norm falls below a threshold, suppressing sensor noise around
// rest. Kind and timestamp are always preserved.
type EpsilonZero struct {
	pipeline.Next[event.AxesEvent]
	epsilon float64
}

// NewEpsilonZero returns an EpsilonZero stage with the given threshold.
func NewEpsilonZero(epsilon float64) *EpsilonZero {
	return &EpsilonZero{epsilon: epsilon}
}

func (z *EpsilonZero) Receive(e event.AxesEvent) {
	if vecmat.Norm(e.Value) < z.epsilon {
		e.Value = vecmat.Vec3{}
	}
	z.Send(e)
}
