// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build js

package web

import (
	"image"
	"sync"
	"syscall/js"
	"time"

	"cogentcore.org/arview/arview"
)

// Window is the browser window. It provides the window size, resize
// events, animation frames and timers.
type Window struct {
	mu sync.Mutex

	// frames are the callbacks of pending animation frames.
	frames map[arview.FrameID]js.Func
}

// NewWindow returns the browser [Window].
func NewWindow() *Window {
	return &Window{frames: map[arview.FrameID]js.Func{}}
}

func (w *Window) Size() image.Point {
	g := js.Global()
	return image.Pt(g.Get("innerWidth").Int(), g.Get("innerHeight").Int())
}

func (w *Window) OnResize(f func()) func() {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		f()
		return nil
	})
	g := js.Global()
	g.Call("addEventListener", "resize", fn)
	var once sync.Once
	return func() {
		once.Do(func() {
			g.Call("removeEventListener", "resize", fn)
			fn.Release()
		})
	}
}

func (w *Window) RequestFrame(f func()) arview.FrameID {
	var id arview.FrameID
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		w.mu.Lock()
		fn, ok := w.frames[id]
		delete(w.frames, id)
		w.mu.Unlock()
		if !ok {
			return nil
		}
		fn.Release()
		f()
		return nil
	})
	w.mu.Lock()
	defer w.mu.Unlock()
	id = arview.FrameID(js.Global().Call("requestAnimationFrame", fn).Int())
	w.frames[id] = fn
	return id
}

func (w *Window) CancelFrame(id arview.FrameID) {
	w.mu.Lock()
	fn, ok := w.frames[id]
	delete(w.frames, id)
	w.mu.Unlock()
	if !ok {
		return
	}
	js.Global().Call("cancelAnimationFrame", int(id))
	fn.Release()
}

func (w *Window) AfterFunc(d time.Duration, f func()) func() {
	var mu sync.Mutex
	done := false
	var fn js.Func
	fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		mu.Lock()
		if done {
			mu.Unlock()
			return nil
		}
		done = true
		mu.Unlock()
		fn.Release()
		f()
		return nil
	})
	g := js.Global()
	id := g.Call("setTimeout", fn, d.Milliseconds())
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return
		}
		done = true
		g.Call("clearTimeout", id)
		fn.Release()
	}
}
