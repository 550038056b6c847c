// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package vecmat implements the fixed-size vector/matrix algebra the
// tracker's filter chains are built on: 3-vectors and 3x3 matrices, their
// arithmetic, and the two rotation-matrix constructions (axis-angle and
// vector-to-vector) the orientation and drift-fix stages rely on.
package vecmat

import "math"

// Vec3 is a 3-axis sensor reading or derived quantity (acceleration,
// angular rate, magnetic field, velocity, displacement).
type Vec3 [3]float64

// Mat3 is a row-major 3x3 matrix, used exclusively to represent rotations
// in this package.
type Mat3 [3][3]float64

// Identity3 returns the 3x3 identity matrix, the tracker's neutral
// orientation.
func Identity3() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Add returns a+b.
func Add(a, b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a-b.
func Sub(a, b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale returns v*s.
func Scale(v Vec3, s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Div returns v/s.
func Div(v Vec3, s float64) Vec3 {
	return Vec3{v[0] / s, v[1] / s, v[2] / s}
}

// Dot returns the scalar product a·b.
func Dot(a, b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns the 3D vector product a×b.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - b[1]*a[2],
		a[2]*b[0] - b[2]*a[0],
		a[0]*b[1] - b[0]*a[1],
	}
}

// Norm returns ||v||.
func Norm(v Vec3) float64 {
	return math.Sqrt(Dot(v, v))
}

// Normalized returns v scaled to unit length, or v unchanged if ||v|| == 0.
func Normalized(v Vec3) Vec3 {
	mag := Norm(v)
	if mag > 0 {
		return Div(v, mag)
	}
	return v
}

// AddMat returns a+b.
func AddMat(a, b Mat3) Mat3 {
	var res Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[i][j] = a[i][j] + b[i][j]
		}
	}
	return res
}

// MulMat returns the matrix product a*b.
func MulMat(a, b Mat3) Mat3 {
	var res Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[i][k] * b[k][j]
			}
			res[i][j] = sum
		}
	}
	return res
}

// MulMatVec returns the matrix-vector product m*v (m treated as acting on
// a column vector).
func MulMatVec(m Mat3, v Vec3) Vec3 {
	var res Vec3
	for i := 0; i < 3; i++ {
		res[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return res
}

// MulVecMat returns the vector-matrix product v*m (v treated as a row
// vector), equivalent to m^T * v.
func MulVecMat(v Vec3, m Mat3) Vec3 {
	var res Vec3
	for j := 0; j < 3; j++ {
		res[j] = v[0]*m[0][j] + v[1]*m[1][j] + v[2]*m[2][j]
	}
	return res
}

// Transpose returns the transpose of m.
func Transpose(m Mat3) Mat3 {
	var res Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[j][i] = m[i][j]
		}
	}
	return res
}

// RotationMatrix builds the rotation matrix for a right-handed rotation of
// angle radians about axis (Rodrigues form). If axis is non-zero and not
// already a unit vector, it is normalized internally.
func RotationMatrix(axis Vec3, angle float64) Mat3 {
	u, v, w := axis[0], axis[1], axis[2]

	mag := Norm(axis)
	if mag > 0 && mag != 1.0 {
		u /= mag
		v /= mag
		w /= mag
	}

	uu, vv, ww := u*u, v*v, w*w
	uv, uw, vw := u*v, u*w, v*w
	sinAng, cosAng := math.Sin(angle), math.Cos(angle)
	usin, vsin, wsin := u*sinAng, v*sinAng, w*sinAng

	return Mat3{
		{uu + (1-uu)*cosAng, uv*(1-cosAng) - wsin, uw*(1-cosAng) + vsin},
		{uv*(1-cosAng) + wsin, vv + (1-vv)*cosAng, vw*(1-cosAng) - usin},
		{uw*(1-cosAng) - vsin, vw*(1-cosAng) + usin, ww + (1-ww)*cosAng},
	}
}

// RotationMatrixBetween builds the rotation about a×b by the angle
// asin(||a×b|| / (||a||·||b||)), which rotates a onto the direction of b
// when the angle between them is at most 90 degrees. For wider angles
// asin yields the supplement of the true angle, so a is not brought onto
// b. Degenerate when a and b are parallel or antiparallel (the cross
// product is zero): RotationMatrix then returns the identity, since the
// angle collapses to zero regardless of axis.
func RotationMatrixBetween(a, b Vec3) Mat3 {
	axis := Cross(a, b)
	angle := math.Asin(Norm(axis) / (Norm(a) * Norm(b)))
	return RotationMatrix(axis, angle)
}
