// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "fmt"

// Matrix4 is a 4x4 matrix stored in column-major order,
// the layout used by WebGL and by the tracking library's
// projection and pose matrices.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() Matrix4 {
	m := Matrix4{}
	m.SetIdentity()
	return m
}

// Matrix4FromArray returns a new [Matrix4] from the first 16 values
// of the given slice, in column-major order. It returns an error
// if the slice is too short.
func Matrix4FromArray(a []float32) (Matrix4, error) {
	m := Matrix4{}
	if len(a) < 16 {
		return m, fmt.Errorf("math32.Matrix4FromArray: need 16 elements, got %d", len(a))
	}
	copy(m[:], a[:16])
	return m, nil
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	*m = Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// IsIdentity returns whether this matrix is the identity matrix.
func (m *Matrix4) IsIdentity() bool {
	return *m == Identity4()
}

// MulMatrices sets this matrix as the matrix multiplication a by b (i.e., a*b).
func (m *Matrix4) MulMatrices(a, b *Matrix4) {
	var r Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	*m = r
}

// Mul returns this matrix times the other matrix (this stays the same).
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var r Matrix4
	r.MulMatrices(&m, &other)
	return r
}

// SetTranslation sets this matrix to a translation matrix from the given position.
func (m *Matrix4) SetTranslation(pos Vector3) {
	m.SetIdentity()
	m[12] = pos.X
	m[13] = pos.Y
	m[14] = pos.Z
}

// SetScale sets this matrix to a scaling matrix from the given scale.
func (m *Matrix4) SetScale(scale Vector3) {
	*m = Matrix4{
		scale.X, 0, 0, 0,
		0, scale.Y, 0, 0,
		0, 0, scale.Z, 0,
		0, 0, 0, 1,
	}
}

// SetTransform sets this matrix to the transformation matrix for the
// given position and scale, without rotation.
func (m *Matrix4) SetTransform(pos, scale Vector3) {
	m.SetScale(scale)
	m[12] = pos.X
	m[13] = pos.Y
	m[14] = pos.Z
}

// SetPerspective sets this matrix to a perspective projection matrix
// with the given vertical field of view in degrees, aspect ratio,
// and near and far clipping planes.
func (m *Matrix4) SetPerspective(fov, aspect, near, far float32) {
	f := 1 / Tan(DegToRad(fov)/2)
	nf := 1 / (near - far)
	*m = Matrix4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// Pos returns the translation component of this matrix.
func (m *Matrix4) Pos() Vector3 {
	return Vector3{m[12], m[13], m[14]}
}

// IsEqualTol returns whether all elements of this matrix are
// within the given tolerance of the other matrix.
func (m *Matrix4) IsEqualTol(other *Matrix4, tol float32) bool {
	for i := range m {
		if Abs(m[i]-other[i]) > tol {
			return false
		}
	}
	return true
}

// ToArray copies this matrix into a new slice of 16 values in column-major order.
func (m *Matrix4) ToArray() []float32 {
	a := make([]float32, 16)
	copy(a, m[:])
	return a
}
