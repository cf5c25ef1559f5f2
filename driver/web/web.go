// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build js

// Package web implements the [arview.Platform] capabilities in the
// browser on top of the THREEx marker tracking library and the THREE
// rendering library, both of which must be loaded as page scripts.
package web

import (
	"fmt"
	"image"
	"strconv"
	"strings"
	"syscall/js"

	"cogentcore.org/arview/arview"
	"cogentcore.org/arview/config"
	"cogentcore.org/arview/diag"
	"cogentcore.org/arview/math32"
)

// Canvas is a canvas element that a view is mounted on.
type Canvas struct {
	js.Value
	id string
}

// CanvasByID returns the canvas element with the given id.
func CanvasByID(id string) (*Canvas, error) {
	el := js.Global().Get("document").Call("getElementById", id)
	if !el.Truthy() {
		return nil, fmt.Errorf("web: no canvas element with id %q", id)
	}
	return &Canvas{Value: el, id: id}, nil
}

func (c *Canvas) SurfaceID() string {
	return c.id
}

// NewPlatform returns a platform with every capability bound to the
// browser, checking for the entry points named in the given client
// configuration and reporting to the given reporter.
func NewPlatform(cl *config.Client, rep diag.Reporter) *arview.Platform {
	w := NewWindow()
	return &arview.Platform{
		Scripts:   Scripts{},
		Tracker:   Tracker{EntryPoints: cl.EntryPoints},
		Renderers: Renderers{},
		Models:    Models{},
		Window:    w,
		Frames:    w,
		Timers:    w,
		Reporter:  rep,
	}
}

// oneOf returns js functions for the given callbacks, of which only
// the first one called runs. All of them are released once it has.
func oneOf(fs ...func(args []js.Value)) []js.Func {
	fns := make([]js.Func, len(fs))
	done := false
	for i, f := range fs {
		fns[i] = js.FuncOf(func(this js.Value, args []js.Value) any {
			if done {
				return nil
			}
			done = true
			f(args)
			for _, fn := range fns {
				fn.Release()
			}
			return nil
		})
	}
	return fns
}

// jsError converts a JavaScript error value to a Go error.
func jsError(v js.Value, what string) error {
	if !v.Truthy() {
		return fmt.Errorf("%s failed", what)
	}
	if msg := v.Get("message"); msg.Type() == js.TypeString {
		return fmt.Errorf("%s: %s", what, msg.String())
	}
	if v.Type() == js.TypeString {
		return fmt.Errorf("%s: %s", what, v.String())
	}
	return fmt.Errorf("%s failed", what)
}

// matrixFrom reads the elements of a THREE.Matrix4.
func matrixFrom(m js.Value) math32.Matrix4 {
	var res math32.Matrix4
	el := m.Get("elements")
	for i := range res {
		res[i] = float32(el.Index(i).Float())
	}
	return res
}

// setMatrix copies m into the elements of a THREE.Matrix4.
func setMatrix(dst js.Value, m math32.Matrix4) {
	a := make([]any, len(m))
	for i, v := range m {
		a[i] = v
	}
	dst.Call("fromArray", a)
}

// styleSize returns the css pixel size of the given element.
func styleSize(el js.Value) image.Point {
	if !el.Truthy() {
		return image.Point{}
	}
	st := el.Get("style")
	return image.Pt(pixels(st.Get("width")), pixels(st.Get("height")))
}

func pixels(v js.Value) int {
	if v.Type() != js.TypeString {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v.String(), "px"), 64)
	if err != nil {
		return 0
	}
	return int(f)
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}
