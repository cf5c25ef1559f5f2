// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build js

package web

import (
	"fmt"
	"image"
	"strings"
	"syscall/js"

	"cogentcore.org/arview/arview"
	"cogentcore.org/arview/base/errors"
	"cogentcore.org/arview/math32"
	"cogentcore.org/arview/scene"
)

// Tracker binds the THREEx tracking library globals.
type Tracker struct {

	// EntryPoints are the dotted global names the library must define.
	EntryPoints []string
}

// global returns the value at the given dotted path from the global object.
func global(path string) js.Value {
	v := js.Global()
	for _, p := range strings.Split(path, ".") {
		v = v.Get(p)
		if !v.Truthy() {
			return js.Undefined()
		}
	}
	return v
}

func (t Tracker) CheckEntryPoints() error {
	var missing []string
	for _, ep := range t.EntryPoints {
		if global(ep).Type() != js.TypeFunction {
			missing = append(missing, ep)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("tracking library entry points not available: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (t Tracker) NewSource(opts arview.SourceOptions) (arview.Source, error) {
	ctor := global("THREEx.ArToolkitSource")
	if ctor.Type() != js.TypeFunction {
		return nil, errors.New("THREEx.ArToolkitSource is not available")
	}
	v := ctor.New(map[string]any{
		"sourceType":   opts.Type,
		"sourceWidth":  opts.Size.X,
		"sourceHeight": opts.Size.Y,
	})
	return &Source{Value: v}, nil
}

func (t Tracker) NewContext(opts arview.ContextOptions) (arview.TrackingContext, error) {
	ctor := global("THREEx.ArToolkitContext")
	if ctor.Type() != js.TypeFunction {
		return nil, errors.New("THREEx.ArToolkitContext is not available")
	}
	v := ctor.New(map[string]any{
		"cameraParametersUrl": opts.CameraParametersURL,
		"detectionMode":       opts.DetectionMode,
	})
	return &Context{Value: v}, nil
}

func (t Tracker) NewMarkerControls(tc arview.TrackingContext, anchor *scene.Group, opts arview.MarkerOptions) (arview.MarkerControls, error) {
	ctx, ok := tc.(*Context)
	if !ok {
		return nil, fmt.Errorf("web: tracking context %T is not a browser context", tc)
	}
	ctor := global("THREEx.ArMarkerControls")
	if ctor.Type() != js.TypeFunction {
		return nil, errors.New("THREEx.ArMarkerControls is not available")
	}
	// the library writes the marker pose into this group, which is
	// then copied into the anchor by the view on every frame.
	root := global("THREE.Group").New()
	v := ctor.New(ctx.Value, root, map[string]any{
		"type":       opts.Type,
		"patternUrl": opts.PatternURL,
	})
	mc := &MarkerControls{Value: v, root: root, ctx: ctx}
	ctx.controls = append(ctx.controls, mc)
	return mc, nil
}

// Source is a THREEx.ArToolkitSource.
type Source struct {
	js.Value

	// stopped is set by Stop. A camera request can not be aborted,
	// so a stream that arrives after it is stopped on arrival.
	stopped bool
}

func (s *Source) Init(onReady func(), onError func(err error)) {
	fns := oneOf(func(args []js.Value) {
		if s.stopped {
			s.stopTracks()
			return
		}
		onReady()
	}, func(args []js.Value) {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		onError(jsError(ev, "camera"))
	})
	s.Call("init", fns[0], fns[1])
}

func (s *Source) Ready() bool {
	return s.Get("ready").Truthy()
}

// Resize fits the video element to the window. The library measures
// the window itself, so the given size is not used.
func (s *Source) Resize(window image.Point) {
	s.Call("onResizeElement")
}

func (s *Source) Size() image.Point {
	return styleSize(s.Get("domElement"))
}

// Stop stops every track of the camera stream and removes the video element.
func (s *Source) Stop() {
	s.stopped = true
	s.stopTracks()
}

func (s *Source) stopTracks() {
	el := s.Get("domElement")
	if !el.Truthy() {
		return
	}
	if stream := el.Get("srcObject"); stream.Truthy() {
		tracks := stream.Call("getTracks")
		for i := 0; i < tracks.Length(); i++ {
			tracks.Index(i).Call("stop")
		}
		el.Set("srcObject", js.Null())
	}
	el.Call("remove")
}

// Context is a THREEx.ArToolkitContext.
type Context struct {
	js.Value
	controls []*MarkerControls
}

func (c *Context) Init(onComplete func()) {
	fns := oneOf(func(args []js.Value) {
		onComplete()
	})
	c.Call("init", fns[0])
}

// Update processes the current video frame and returns whether
// any of the marker controls of the context found its marker.
func (c *Context) Update(src arview.Source) bool {
	s, ok := src.(*Source)
	if !ok || !c.Get("arController").Truthy() {
		return false
	}
	c.Call("update", s.Get("domElement"))
	for _, mc := range c.controls {
		if mc.root.Get("visible").Bool() {
			return true
		}
	}
	return false
}

func (c *Context) ProjectionMatrix() math32.Matrix4 {
	return matrixFrom(c.Call("getProjectionMatrix"))
}

func (c *Context) canvas() js.Value {
	ac := c.Get("arController")
	if !ac.Truthy() {
		return js.Undefined()
	}
	return ac.Get("canvas")
}

func (c *Context) SetCanvasSize(size image.Point) {
	cv := c.canvas()
	if !cv.Truthy() {
		return
	}
	st := cv.Get("style")
	st.Set("width", px(size.X))
	st.Set("height", px(size.Y))
}

func (c *Context) CanvasSize() image.Point {
	return styleSize(c.canvas())
}

func (c *Context) Dispose() {
	c.controls = nil
	if c.Get("dispose").Type() == js.TypeFunction {
		c.Call("dispose")
	}
}

// MarkerControls is a THREEx.ArMarkerControls.
type MarkerControls struct {
	js.Value
	root js.Value
	ctx  *Context
}

func (mc *MarkerControls) Pose() (math32.Matrix4, bool) {
	return matrixFrom(mc.root.Get("matrix")), mc.root.Get("visible").Bool()
}

func (mc *MarkerControls) Dispose() {
	for i, o := range mc.ctx.controls {
		if o == mc {
			mc.ctx.controls = append(mc.ctx.controls[:i], mc.ctx.controls[i+1:]...)
			break
		}
	}
	if mc.Get("dispose").Type() == js.TypeFunction {
		mc.Call("dispose")
	}
}
