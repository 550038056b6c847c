// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package filter

import (
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/pipeline"
	"github.com/relabs-tech/inertial-tracker/internal/vecmat"
)

// RemoveValueOf subtracts a shared reference value (gravity, magnetic
// reference) from every event it receives, emitting the corrected
// event. The shared value itself is never modified here.
type RemoveValueOf struct {
	pipeline.Next[event.AxesEvent]
	shared *event.AxesEvent
}

// NewRemoveValueOf returns a RemoveValueOf stage subtracting shared.
func NewRemoveValueOf(shared *event.AxesEvent) *RemoveValueOf {
	return &RemoveValueOf{shared: shared}
}

func (r *RemoveValueOf) Receive(e event.AxesEvent) {
	e.Value = vecmat.Sub(e.Value, r.shared.Value)
	r.Send(e)
}
