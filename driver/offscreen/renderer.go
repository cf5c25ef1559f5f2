// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package offscreen

import (
	"errors"
	"image"
	"sync"

	"cogentcore.org/arview/arview"
	"cogentcore.org/arview/math32"
	"cogentcore.org/arview/scene"
)

// ErrDisposed is the error of rendering with a disposed [Renderer].
var ErrDisposed = errors.New("offscreen: renderer used after dispose")

// Renderers is an [arview.RendererFactory] of recording renderers.
type Renderers struct {

	// Error, if set, is returned by NewRenderer.
	Error error

	mu        sync.Mutex
	renderers []*Renderer
}

func (rs *Renderers) NewRenderer(sf arview.Surface, opts arview.RendererOptions) (arview.Renderer, error) {
	if rs.Error != nil {
		return nil, rs.Error
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	r := &Renderer{Surface: sf, Options: opts}
	rs.renderers = append(rs.renderers, r)
	return r, nil
}

// All returns all renderers made so far.
func (rs *Renderers) All() []*Renderer {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]*Renderer(nil), rs.renderers...)
}

// Last returns the most recently made renderer, or nil.
func (rs *Renderers) Last() *Renderer {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if len(rs.renderers) == 0 {
		return nil
	}
	return rs.renderers[len(rs.renderers)-1]
}

// DrawnModel is a model drawn in a [Frame].
type DrawnModel struct {
	URL string

	// World is the world transform the model was drawn with.
	World math32.Matrix4
}

// Frame is the record of one render call.
type Frame struct {
	Size       image.Point
	Visible    bool
	Projection math32.Matrix4
	Models     []DrawnModel
	Lights     int

	// Err is set for render calls made after dispose.
	Err error
}

// Renderer is an [arview.Renderer] that records what it would draw.
type Renderer struct {
	Surface arview.Surface
	Options arview.RendererOptions

	mu       sync.Mutex
	size     image.Point
	frames   []Frame
	disposed bool
}

func (r *Renderer) SetSize(size image.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.size = size
}

func (r *Renderer) Size() image.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Render records a frame. Models are only drawn when the scene is
// visible, and then only those visible in the tree.
func (r *Renderer) Render(sc *scene.Scene) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fr := Frame{Size: r.size, Visible: sc.Visible, Projection: sc.Camera.Projection, Lights: len(sc.Lights)}
	if r.disposed {
		fr.Err = ErrDisposed
	}
	if sc.Visible && !r.disposed {
		for _, md := range sc.Models() {
			if !scene.IsVisibleInTree(md) {
				continue
			}
			fr.Models = append(fr.Models, DrawnModel{URL: md.URL, World: scene.WorldMatrix(md)})
		}
	}
	r.frames = append(r.frames, fr)
}

func (r *Renderer) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disposed = true
}

// Disposed returns whether the renderer has been disposed.
func (r *Renderer) Disposed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disposed
}

// Frames returns the recorded frames.
func (r *Renderer) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

// LastFrame returns the most recent frame and whether there is one.
func (r *Renderer) LastFrame() (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}
