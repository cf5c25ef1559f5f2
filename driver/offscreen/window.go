// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package offscreen

import (
	"image"
	"sync"
)

// Window is a simulated [arview.Window] whose resize events
// are delivered on a [Loop].
type Window struct {
	Loop *Loop

	mu       sync.Mutex
	size     image.Point
	handlers map[int]func()
	next     int
}

// NewWindow returns a new window of the given size, 800x600 if it is zero.
func NewWindow(l *Loop, size image.Point) *Window {
	if size.X == 0 {
		size.X = 800
	}
	if size.Y == 0 {
		size.Y = 600
	}
	return &Window{Loop: l, size: size, handlers: map[int]func(){}}
}

func (w *Window) Size() image.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

func (w *Window) OnResize(f func()) (remove func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.next++
	id := w.next
	w.handlers[id] = f
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.handlers, id)
	}
}

// Resize changes the size of the window and posts a resize
// event to every handler.
func (w *Window) Resize(size image.Point) {
	w.mu.Lock()
	w.size = size
	hs := make([]func(), 0, len(w.handlers))
	for id := 1; id <= w.next; id++ {
		if h, ok := w.handlers[id]; ok {
			hs = append(hs, h)
		}
	}
	w.mu.Unlock()
	for _, h := range hs {
		w.Loop.Post(h)
	}
}

// Handlers returns the number of registered resize handlers.
func (w *Window) Handlers() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.handlers)
}
