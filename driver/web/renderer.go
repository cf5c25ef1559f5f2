// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build js

package web

import (
	"fmt"
	"image"
	"image/color"
	"syscall/js"

	"cogentcore.org/arview/arview"
	"cogentcore.org/arview/scene"
)

// Renderers makes THREE.WebGLRenderer renderers on canvas elements.
type Renderers struct{}

func (Renderers) NewRenderer(sf arview.Surface, opts arview.RendererOptions) (arview.Renderer, error) {
	cv, ok := sf.(*Canvas)
	if !ok {
		return nil, fmt.Errorf("web: surface %T is not a canvas", sf)
	}
	ctor := global("THREE.WebGLRenderer")
	if ctor.Type() != js.TypeFunction {
		return nil, fmt.Errorf("THREE.WebGLRenderer is not available")
	}
	var v js.Value
	var perr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				perr = fmt.Errorf("creating WebGL renderer: %v", r)
			}
		}()
		v = ctor.New(map[string]any{
			"canvas":    cv.Value,
			"alpha":     opts.Alpha,
			"antialias": opts.Antialias,
		})
	}()
	if perr != nil {
		return nil, perr
	}
	v.Call("setClearColor", global("THREE.Color").New("lightgrey"), 0)
	r := &Renderer{
		Value:   v,
		scene:   global("THREE.Scene").New(),
		camera:  global("THREE.Camera").New(),
		objects: map[scene.Node]js.Value{},
		lights:  map[string]js.Value{},
	}
	r.scene.Call("add", r.camera)
	return r, nil
}

// Renderer draws a [scene.Scene] by mirroring it into a THREE.Scene.
type Renderer struct {
	js.Value

	scene  js.Value
	camera js.Value

	// objects are the THREE objects of the scene nodes.
	objects map[scene.Node]js.Value

	// lights are the THREE lights by light name.
	lights map[string]js.Value

	size image.Point
}

func (r *Renderer) SetSize(size image.Point) {
	r.size = size
	r.Call("setSize", size.X, size.Y)
}

func (r *Renderer) Size() image.Point {
	return r.size
}

func (r *Renderer) Render(sc *scene.Scene) {
	sc.UpdateMatrices()
	r.scene.Set("visible", sc.Visible)
	pm := r.camera.Get("projectionMatrix")
	setMatrix(pm, sc.Camera.Projection)
	if inv := r.camera.Get("projectionMatrixInverse"); inv.Truthy() && inv.Get("invert").Type() == js.TypeFunction {
		inv.Call("copy", pm).Call("invert")
	}
	r.syncNodes(sc)
	r.syncLights(sc)
	r.Call("render", r.scene, r.camera)
}

// syncNodes adds, updates and removes THREE objects
// to match the nodes of the scene.
func (r *Renderer) syncNodes(sc *scene.Scene) {
	seen := map[scene.Node]bool{}
	scene.Walk(sc.Root, func(n scene.Node) bool {
		if n == scene.Node(sc.Root) {
			return true
		}
		obj, ok := r.object(n)
		if !ok {
			return false
		}
		seen[n] = true
		nb := n.AsNodeBase()
		obj.Set("matrixAutoUpdate", false)
		setMatrix(obj.Get("matrix"), nb.Pose.Matrix)
		obj.Set("matrixWorldNeedsUpdate", true)
		obj.Set("visible", nb.Visible)
		parent := r.scene
		if p := nb.Parent(); p != nil && p != scene.Node(sc.Root) {
			parent = r.objects[p]
		}
		if !obj.Get("parent").Equal(parent) {
			parent.Call("add", obj)
		}
		return true
	})
	for n, obj := range r.objects {
		if seen[n] {
			continue
		}
		if p := obj.Get("parent"); p.Truthy() {
			p.Call("remove", obj)
		}
		delete(r.objects, n)
	}
}

// object returns the THREE object for the given node, making it if needed.
func (r *Renderer) object(n scene.Node) (js.Value, bool) {
	if obj, ok := r.objects[n]; ok {
		return obj, true
	}
	var obj js.Value
	switch n := n.(type) {
	case *scene.Group:
		obj = global("THREE.Group").New()
	case *scene.Model:
		m, ok := n.Asset.(*Model)
		if !ok {
			return js.Undefined(), false
		}
		obj = m.Object
	default:
		return js.Undefined(), false
	}
	obj.Set("name", n.AsNodeBase().Name)
	r.objects[n] = obj
	return obj, true
}

func (r *Renderer) syncLights(sc *scene.Scene) {
	for _, lt := range sc.Lights {
		lb := lt.AsLightBase()
		obj, ok := r.lights[lb.Name]
		if !ok {
			switch lt.(type) {
			case *scene.AmbientLight:
				obj = global("THREE.AmbientLight").New()
			case *scene.DirLight:
				obj = global("THREE.DirectionalLight").New()
			default:
				continue
			}
			r.lights[lb.Name] = obj
			r.scene.Call("add", obj)
		}
		obj.Get("color").Call("setHex", hex(lb.Color))
		obj.Set("intensity", lb.Lumens)
		obj.Set("visible", lb.On)
		if dl, ok := lt.(*scene.DirLight); ok {
			obj.Get("position").Call("set", dl.Pos.X, dl.Pos.Y, dl.Pos.Z)
		}
	}
}

func hex(c color.RGBA) int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

func (r *Renderer) Dispose() {
	r.Call("dispose")
	if r.Get("forceContextLoss").Type() == js.TypeFunction {
		r.Call("forceContextLoss")
	}
	r.objects = map[scene.Node]js.Value{}
	r.lights = map[string]js.Value{}
}
