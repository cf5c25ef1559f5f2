// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides the scene graph drawn over the camera feed:
// a camera whose projection comes from the tracker, a root group
// holding the marker anchor and the loaded model, and lights.
// Rendering backends translate a Scene into their own objects on
// every render call.
package scene

import (
	"image/color"
	"slices"
)

// Scene is the overall scene graph for one view session.
type Scene struct {

	// Name is the name of the scene.
	Name string

	// Visible is whether anything is drawn. It mirrors the camera
	// visibility every frame, so nothing is drawn while the marker
	// is not detected.
	Visible bool

	// Camera determines the view onto the scene.
	Camera Camera

	// Root is the top-level group that all nodes are added under.
	Root *Group

	// Background is the clear color. It is transparent by default
	// so that the camera video shows through.
	Background color.RGBA

	// Lights are all the lights used in the scene, in order added.
	Lights []Light
}

// NewScene returns a new empty, visible [Scene] with default camera.
func NewScene(name string) *Scene {
	sc := &Scene{Name: name, Visible: true}
	sc.Camera.Defaults()
	sc.Root = NewGroup("root")
	return sc
}

// Add adds the given node at the top level of the scene.
func (sc *Scene) Add(n Node) error {
	return sc.Root.Add(n)
}

// FindNode returns the first node with the given name, or nil.
func (sc *Scene) FindNode(name string) Node {
	var found Node
	Walk(sc.Root, func(n Node) bool {
		if found != nil {
			return false
		}
		if n.AsNodeBase().Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Models returns all the models anywhere in the scene.
func (sc *Scene) Models() []*Model {
	var ms []*Model
	Walk(sc.Root, func(n Node) bool {
		if m, ok := n.(*Model); ok {
			ms = append(ms, m)
		}
		return true
	})
	return ms
}

// UpdateMatrices recomputes the local matrices of all nodes
// whose poses are derived from position and scale.
func (sc *Scene) UpdateMatrices() {
	Walk(sc.Root, func(n Node) bool {
		n.AsNodeBase().Pose.UpdateMatrix()
		return true
	})
}

// AddLight adds the given light to the scene, replacing any
// existing light with the same name.
func (sc *Scene) AddLight(lt Light) {
	name := lt.AsLightBase().Name
	i := slices.IndexFunc(sc.Lights, func(l Light) bool { return l.AsLightBase().Name == name })
	if i >= 0 {
		sc.Lights[i] = lt
		return
	}
	sc.Lights = append(sc.Lights, lt)
}

// Light returns the light with the given name, or nil.
func (sc *Scene) Light(name string) Light {
	for _, l := range sc.Lights {
		if l.AsLightBase().Name == name {
			return l
		}
	}
	return nil
}
