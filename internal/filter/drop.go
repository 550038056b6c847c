// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package filter

import "github.com/relabs-tech/inertial-tracker/internal/pipeline"

// Drop discards the first N events it receives, then passes every
// subsequent event through unchanged. Used to let sensors settle before
// statistics or integration sees their output.
type Drop[T any] struct {
	pipeline.Next[T]
	remaining int
}

// NewDrop returns a Drop stage that discards the first n events.
func NewDrop[T any](n int) *Drop[T] {
	return &Drop[T]{remaining: n}
}

func (d *Drop[T]) Receive(e T) {
	if d.remaining > 0 {
		d.remaining--
		return
	}
	d.Send(e)
}
