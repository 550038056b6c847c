// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package filter

import (
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/pipeline"
)

// ChangeType relabels the kind of every event it receives, leaving the
// timestamp and value untouched. It is how one chain's output is
// retagged as the input of the next semantic stage (e.g. acceleration
// becoming velocity after integration).
type ChangeType struct {
	pipeline.Next[event.AxesEvent]
	kind event.Kind
}

// NewChangeType returns a ChangeType stage that relabels events to kind.
func NewChangeType(kind event.Kind) *ChangeType {
	return &ChangeType{kind: kind}
}

func (c *ChangeType) Receive(e event.AxesEvent) {
	e.Kind = c.kind
	c.Send(e)
}
