// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package filter

import "github.com/relabs-tech/inertial-tracker/internal/pipeline"

// Callback invokes an optional observer with every event it receives,
// then re-emits the event unchanged. It is the tail stage of every core
// chain: the observer is the chain's only externally visible effect.
type Callback[T any] struct {
	pipeline.Next[T]
	fn func(T)
}

// NewCallback returns a Callback wrapping fn. fn may be nil, in which
// case the stage is a pure pass-through.
func NewCallback[T any](fn func(T)) *Callback[T] {
	return &Callback[T]{fn: fn}
}

// SetCallback replaces the observer function, nil to disable it.
func (c *Callback[T]) SetCallback(fn func(T)) {
	c.fn = fn
}

func (c *Callback[T]) Receive(e T) {
	if c.fn != nil {
		c.fn(e)
	}
	c.Send(e)
}
