// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package filter

import (
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/pipeline"
)

// FunctionFilter gates events through a predicate: an event is forwarded
// if the predicate returns true or is unset, and dropped otherwise. The
// tracker's Calibrate stage is a FunctionFilter whose predicate closes
// over the shared stillness state.
type FunctionFilter struct {
	pipeline.Next[event.AxesEvent]
	predicate func(event.AxesEvent) bool
}

// NewFunctionFilter returns a FunctionFilter gated by predicate. A nil
// predicate forwards every event.
func NewFunctionFilter(predicate func(event.AxesEvent) bool) *FunctionFilter {
	return &FunctionFilter{predicate: predicate}
}

func (f *FunctionFilter) Receive(e event.AxesEvent) {
	if f.predicate != nil && !f.predicate(e) {
		return
	}
	f.Send(e)
}
