// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/vecmat"
)

func TestDropDiscardsFirstN(t *testing.T) {
	var got []event.AxesEvent
	tail := NewCallback[event.AxesEvent](func(e event.AxesEvent) { got = append(got, e) })
	drop := NewDrop[event.AxesEvent](2)
	drop.SetNext(tail.Receive)

	drop.Receive(event.AxesEvent{Timestamp: 1})
	drop.Receive(event.AxesEvent{Timestamp: 2})
	drop.Receive(event.AxesEvent{Timestamp: 3})

	assert.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].Timestamp)
}

func TestChangeTypePreservesOtherFields(t *testing.T) {
	c := NewChangeType(event.Displacement)
	var got event.AxesEvent
	c.SetNext(func(e event.AxesEvent) { got = e })

	c.Receive(event.AxesEvent{Kind: event.Accelerometer, Timestamp: 7, Value: [3]float64{1, 2, 3}})

	assert.Equal(t, event.Displacement, got.Kind)
	assert.Equal(t, int64(7), got.Timestamp)
	assert.Equal(t, [3]float64{1, 2, 3}, got.Value)
}

// TestEpsilonZero: eps=0.1, value (0.05,0,0) is zeroed; (0.2,0,0)
// passes through.
func TestEpsilonZero(t *testing.T) {
	z := NewEpsilonZero(0.1)
	var got event.AxesEvent
	z.SetNext(func(e event.AxesEvent) { got = e })

	z.Receive(event.AxesEvent{Kind: event.Accelerometer, Timestamp: 1, Value: [3]float64{0.05, 0, 0}})
	assert.Equal(t, [3]float64{0, 0, 0}, got.Value)

	z.Receive(event.AxesEvent{Kind: event.Accelerometer, Timestamp: 2, Value: [3]float64{0.2, 0, 0}})
	assert.Equal(t, [3]float64{0.2, 0, 0}, got.Value)
}

// TestDeltaIntegrateTrapezoid: events at t=0,1s with values
// (2,0,0),(4,0,0) emit (3,0,0) at t=1s; a third event at t=2s value
// (4,0,0) emits (4,0,0).
func TestDeltaIntegrateTrapezoid(t *testing.T) {
	d := NewDeltaIntegrate()
	var got []event.AxesEvent
	d.SetNext(func(e event.AxesEvent) { got = append(got, e) })

	d.Receive(event.AxesEvent{Kind: event.Accelerometer, Timestamp: 0, Value: [3]float64{2, 0, 0}})
	assert.Empty(t, got, "first event is stored and dropped")

	d.Receive(event.AxesEvent{Kind: event.Accelerometer, Timestamp: 1_000_000_000, Value: [3]float64{4, 0, 0}})
	assert.Len(t, got, 1)
	assert.InDelta(t, 3.0, got[0].Value[0], 1e-9)
	assert.Equal(t, int64(1_000_000_000), got[0].Timestamp)

	d.Receive(event.AxesEvent{Kind: event.Accelerometer, Timestamp: 2_000_000_000, Value: [3]float64{4, 0, 0}})
	assert.Len(t, got, 2)
	assert.InDelta(t, 4.0, got[1].Value[0], 1e-9)
}

func TestAddValueToAccumulates(t *testing.T) {
	var shared event.AxesEvent
	a := NewAddValueTo(&shared)
	var got event.AxesEvent
	a.SetNext(func(e event.AxesEvent) { got = e })

	a.Receive(event.AxesEvent{Kind: event.Velocity, Timestamp: 1, Value: [3]float64{1, 0, 0}})
	a.Receive(event.AxesEvent{Kind: event.Velocity, Timestamp: 2, Value: [3]float64{0, 1, 0}})

	assert.Equal(t, [3]float64{1, 1, 0}, shared.Value)
	assert.Equal(t, shared, got)
}

func TestRemoveValueOfSubtractsWithoutMutatingShared(t *testing.T) {
	shared := event.AxesEvent{Value: [3]float64{1, 1, 1}}
	r := NewRemoveValueOf(&shared)
	var got event.AxesEvent
	r.SetNext(func(e event.AxesEvent) { got = e })

	r.Receive(event.AxesEvent{Value: [3]float64{3, 3, 3}})

	assert.Equal(t, [3]float64{2, 2, 2}, got.Value)
	assert.Equal(t, [3]float64{1, 1, 1}, shared.Value)
}

func TestFunctionFilterGatesOnPredicate(t *testing.T) {
	var got []event.AxesEvent
	f := NewFunctionFilter(func(e event.AxesEvent) bool { return e.Value[0] > 0 })
	f.SetNext(func(e event.AxesEvent) { got = append(got, e) })

	f.Receive(event.AxesEvent{Value: [3]float64{-1, 0, 0}})
	f.Receive(event.AxesEvent{Value: [3]float64{1, 0, 0}})

	assert.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Value[0])
}

func TestFunctionFilterNilPredicateForwardsEverything(t *testing.T) {
	var got []event.AxesEvent
	f := NewFunctionFilter(nil)
	f.SetNext(func(e event.AxesEvent) { got = append(got, e) })

	f.Receive(event.AxesEvent{})
	f.Receive(event.AxesEvent{})

	assert.Len(t, got, 2)
}

// TestStatisticsWindow: feed W equal events of value (1,0,0); then
// count=W, mean=(1,0,0), variance=0, squares=W. Feed one more event
// and the oldest is evicted, invariants preserved.
func TestStatisticsWindow(t *testing.T) {
	var stats event.SensorStats
	s := NewStatistics(&stats, 4)
	s.SetNext(func(event.AxesEvent) {})

	for i := 0; i < 4; i++ {
		s.Receive(event.AxesEvent{Timestamp: int64(i) * 1_000_000_000, Value: [3]float64{1, 0, 0}})
	}

	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, [3]float64{1, 0, 0}, stats.Mean)
	assert.InDelta(t, 0.0, stats.Variance, 1e-9)
	assert.InDelta(t, 4.0, stats.Squares, 1e-9)

	s.Receive(event.AxesEvent{Timestamp: 4_000_000_000, Value: [3]float64{1, 0, 0}})

	assert.LessOrEqual(t, stats.Count, 4)
	assert.Equal(t, [3]float64{1, 0, 0}, stats.Mean)
	assert.InDelta(t, 0.0, stats.Variance, 1e-9)
}

func TestToRotationMatrixUsesNormAsAngle(t *testing.T) {
	toMatrix := &ToRotationMatrix{}
	var got event.OrientationEvent
	toMatrix.SetNext(func(e event.OrientationEvent) { got = e })

	toMatrix.Receive(event.AxesEvent{Kind: event.Orientation, Timestamp: 5, Value: [3]float64{0, 0, 0}})

	assert.Equal(t, event.Orientation, got.Kind)
	assert.Equal(t, int64(5), got.Timestamp)
	assert.Equal(t, vecmat.Identity3(), got.Value)
}
