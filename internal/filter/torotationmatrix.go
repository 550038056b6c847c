// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package filter

import (
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/pipeline"
	"github.com/relabs-tech/inertial-tracker/internal/vecmat"
)

// ToRotationMatrix converts an axes event carrying an instantaneous
// rotation delta (u,v,w) into an orientation event whose value is the
// corresponding rotation matrix, using the delta's own magnitude as the
// rotation angle.
type ToRotationMatrix struct {
	pipeline.Next[event.OrientationEvent]
}

func (t *ToRotationMatrix) Receive(e event.AxesEvent) {
	angle := vecmat.Norm(e.Value)
	m := vecmat.RotationMatrix(e.Value, angle)
	t.Send(event.OrientationEvent{Kind: e.Kind, Timestamp: e.Timestamp, Value: m})
}
