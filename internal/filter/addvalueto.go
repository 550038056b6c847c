// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package filter

import (
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/pipeline"
	"github.com/relabs-tech/inertial-tracker/internal/vecmat"
)

// AddValueTo accumulates incoming deltas into a shared AxesEvent (the
// tracker's velocity or displacement), emitting a copy of the updated
// shared state after each update.
type AddValueTo struct {
	pipeline.Next[event.AxesEvent]
	shared *event.AxesEvent
}

// NewAddValueTo returns an AddValueTo stage accumulating into shared.
func NewAddValueTo(shared *event.AxesEvent) *AddValueTo {
	return &AddValueTo{shared: shared}
}

func (a *AddValueTo) Receive(e event.AxesEvent) {
	a.shared.Value = vecmat.Add(a.shared.Value, e.Value)
	a.shared.Kind = e.Kind
	a.shared.Timestamp = e.Timestamp
	a.Send(*a.shared)
}
