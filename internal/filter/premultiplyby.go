// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package filter

import (
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/pipeline"
	"github.com/relabs-tech/inertial-tracker/internal/vecmat"
)

// PreMultiplyBy rotates an axes event's value into a different frame by
// left-multiplying it with a shared orientation matrix (the tracker's
// current orientation estimate, updated concurrently by the gyroscope
// chain).
type PreMultiplyBy struct {
	pipeline.Next[event.AxesEvent]
	shared *event.OrientationEvent
}

// NewPreMultiplyBy returns a PreMultiplyBy stage using shared as the
// rotation source.
func NewPreMultiplyBy(shared *event.OrientationEvent) *PreMultiplyBy {
	return &PreMultiplyBy{shared: shared}
}

func (p *PreMultiplyBy) Receive(e event.AxesEvent) {
	e.Value = vecmat.MulMatVec(p.shared.Value, e.Value)
	p.Send(e)
}
