// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package filter

import (
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/pipeline"
	"github.com/relabs-tech/inertial-tracker/internal/vecmat"
)

// DeltaIntegrate performs trapezoidal numerical integration over
// consecutive events of the same sensor, emitting a per-sample
// increment suitable for in-place accumulation by a downstream adder.
// The first event received is stored and dropped; every subsequent
// event emits the trapezoid area since the previous one.
type DeltaIntegrate struct {
	pipeline.Next[event.AxesEvent]
	have bool
	prev event.AxesEvent
}

// NewDeltaIntegrate returns an empty DeltaIntegrate stage.
func NewDeltaIntegrate() *DeltaIntegrate {
	return &DeltaIntegrate{}
}

func (d *DeltaIntegrate) Receive(e event.AxesEvent) {
	if !d.have {
		d.prev = e
		d.have = true
		return
	}

	dt := event.TimestampToSeconds(e.Timestamp - d.prev.Timestamp)
	sum := vecmat.Add(e.Value, d.prev.Value)
	delta := vecmat.Scale(sum, dt/2)

	d.prev = e
	d.Send(event.AxesEvent{Kind: e.Kind, Timestamp: e.Timestamp, Value: delta})
}
