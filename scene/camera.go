// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/arview/math32"

// Camera is the root camera of a [Scene]. In augmented reality the
// projection comes from the tracking library's camera calibration,
// so it is copied in rather than computed from the field of view.
type Camera struct {

	// Projection is the projection matrix.
	Projection math32.Matrix4

	// Visible is whether the camera currently sees the tracked marker.
	// The scene is only drawn when the camera is visible.
	Visible bool

	// FOV is the vertical field of view in degrees used by [Camera.Defaults].
	FOV float32

	// Near is the near clipping plane distance.
	Near float32

	// Far is the far clipping plane distance.
	Far float32

	// Aspect is the width over height aspect ratio.
	Aspect float32
}

// Defaults sets a default perspective projection and makes the camera visible.
func (cm *Camera) Defaults() {
	cm.FOV = 30
	cm.Near = 0.01
	cm.Far = 1000
	cm.Aspect = 1.5
	cm.Visible = true
	cm.UpdateProjection()
}

// UpdateProjection recomputes the projection from FOV, Aspect, Near and Far.
func (cm *Camera) UpdateProjection() {
	cm.Projection.SetPerspective(cm.FOV, cm.Aspect, cm.Near, cm.Far)
}

// SetProjection copies the given projection matrix into the camera.
func (cm *Camera) SetProjection(m math32.Matrix4) {
	cm.Projection = m
}
