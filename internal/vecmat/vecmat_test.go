// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package vecmat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func matAlmostEqual(t *testing.T, want, got Mat3, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDeltaf(t, want[i][j], got[i][j], tol, "mismatch at [%d][%d]", i, j)
		}
	}
}

func TestRotationMatrixZeroAngleIsIdentity(t *testing.T) {
	m := RotationMatrix(Vec3{1, 0, 0}, 0)
	matAlmostEqual(t, Identity3(), m, 1e-9)
}

func TestRotationMatrixBetweenEqualVectorsIsIdentity(t *testing.T) {
	a := Vec3{1, 2, 3}
	m := RotationMatrixBetween(a, a)
	matAlmostEqual(t, Identity3(), m, 1e-9)
}

func TestRotationMatrixInverseComposesToIdentity(t *testing.T) {
	axis := Normalized(Vec3{1, 1, 1})
	theta := math.Pi / 5
	fwd := RotationMatrix(axis, theta)
	back := RotationMatrix(axis, -theta)
	matAlmostEqual(t, Identity3(), MulMat(fwd, back), 1e-9)
}

func TestNormalized(t *testing.T) {
	v := Normalized(Vec3{3, 4, 0})
	assert.InDelta(t, 1.0, Norm(v), 1e-12)

	zero := Normalized(Vec3{0, 0, 0})
	assert.Equal(t, Vec3{0, 0, 0}, zero)
}

func TestCrossAndDot(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	assert.Equal(t, Vec3{0, 0, 1}, Cross(x, y))
	assert.Equal(t, 0.0, Dot(x, y))
}

func TestRotationMatrix90AboutZ(t *testing.T) {
	m := RotationMatrix(Vec3{0, 0, 1}, math.Pi/2)
	rotated := MulMatVec(m, Vec3{1, 0, 0})
	assert.InDelta(t, 0.0, rotated[0], 1e-9)
	assert.InDelta(t, 1.0, rotated[1], 1e-9)
	assert.InDelta(t, 0.0, rotated[2], 1e-9)
}

func TestTransposeIsInverseOfRotation(t *testing.T) {
	m := RotationMatrix(Vec3{0, 1, 0}, 0.7)
	matAlmostEqual(t, Identity3(), MulMat(m, Transpose(m)), 1e-9)
}
