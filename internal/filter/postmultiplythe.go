// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package filter

import (
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/pipeline"
	"github.com/relabs-tech/inertial-tracker/internal/vecmat"
)

// PostMultiplyThe folds an incremental rotation event into a shared
// orientation matrix by multiplying it onto the right of the shared
// matrix in place (shared = shared × delta), emitting a copy
// of the updated shared state. This is how the gyroscope chain's
// integrated rotation deltas accumulate into the tracker's orientation.
type PostMultiplyThe struct {
	pipeline.Next[event.OrientationEvent]
	shared *event.OrientationEvent
}

// NewPostMultiplyThe returns a PostMultiplyThe stage folding into shared.
func NewPostMultiplyThe(shared *event.OrientationEvent) *PostMultiplyThe {
	return &PostMultiplyThe{shared: shared}
}

func (p *PostMultiplyThe) Receive(e event.OrientationEvent) {
	p.shared.Value = vecmat.MulMat(p.shared.Value, e.Value)
	p.shared.Kind = e.Kind
	p.shared.Timestamp = e.Timestamp
	p.Send(*p.shared)
}
