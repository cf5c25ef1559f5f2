// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// Model is a loaded 3D model placed in the scene. The model content
// itself is held by the rendering backend as an opaque Asset.
type Model struct {
	NodeBase

	// URL is the resource path the model was loaded from.
	URL string

	// Asset is the backend-specific loaded model object
	// (for example the root object of a parsed glTF file).
	Asset any
}

// NewModel returns a new visible [Model] for the given loaded asset.
func NewModel(name, url string, asset any) *Model {
	md := &Model{URL: url, Asset: asset}
	md.init(name)
	return md
}

// SetPos sets the [Pose.Pos] position of the model
func (md *Model) SetPos(x, y, z float32) *Model {
	md.Pose.Pos.Set(x, y, z)
	return md
}

// SetScale sets the [Pose.Scale] scale of the model
func (md *Model) SetScale(x, y, z float32) *Model {
	md.Pose.Scale.Set(x, y, z)
	return md
}

// test for impl
var _ Node = &Model{}
