// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package offscreen

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"cogentcore.org/arview/arview"
	"cogentcore.org/arview/math32"
	"cogentcore.org/arview/scene"
)

// EntryPoints are the tracking library globals that a [Tracker] provides.
var EntryPoints = []string{"THREEx.ArToolkitSource", "THREEx.ArToolkitContext", "THREEx.ArMarkerControls"}

// Tracker is a scripted [arview.TrackerProvider]. The marker it
// "detects" is set with [Tracker.SetMarker].
type Tracker struct {
	Loop *Loop

	// Missing are entry points reported as missing by CheckEntryPoints.
	Missing []string

	// VideoSize is the native size of the simulated camera stream.
	VideoSize image.Point

	// CameraError, if set, is the error that sources fail with.
	CameraError error

	mu       sync.Mutex
	marker   math32.Matrix4
	visible  bool
	sources  []*Source
	contexts []*Context
	controls []*MarkerControls
}

// NewTracker returns a new tracker for a 640x480 camera.
func NewTracker(l *Loop) *Tracker {
	return &Tracker{Loop: l, VideoSize: image.Pt(640, 480)}
}

// SetMarker sets the pose of the marker in front of the camera,
// and whether it is in view.
func (tr *Tracker) SetMarker(pose math32.Matrix4, visible bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.marker, tr.visible = pose, visible
}

// HideMarker takes the marker out of view.
func (tr *Tracker) HideMarker() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.visible = false
}

func (tr *Tracker) CheckEntryPoints() error {
	if len(tr.Missing) == 0 {
		return nil
	}
	return fmt.Errorf("tracking library entry points not defined: %s", strings.Join(tr.Missing, ", "))
}

func (tr *Tracker) NewSource(opts arview.SourceOptions) (arview.Source, error) {
	if opts.Type != "webcam" {
		return nil, fmt.Errorf("offscreen: unsupported source type %q", opts.Type)
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	src := &Source{tracker: tr, size: opts.Size}
	tr.sources = append(tr.sources, src)
	return src, nil
}

func (tr *Tracker) NewContext(opts arview.ContextOptions) (arview.TrackingContext, error) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tc := &Context{tracker: tr, Options: opts}
	tr.contexts = append(tr.contexts, tc)
	return tc, nil
}

func (tr *Tracker) NewMarkerControls(tc arview.TrackingContext, anchor *scene.Group, opts arview.MarkerOptions) (arview.MarkerControls, error) {
	ctx, ok := tc.(*Context)
	if !ok {
		return nil, fmt.Errorf("offscreen: tracking context of type %T is not an offscreen context", tc)
	}
	if opts.PatternURL == "" {
		return nil, fmt.Errorf("offscreen: marker controls need a pattern URL")
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	mc := &MarkerControls{context: ctx, Anchor: anchor, Options: opts}
	ctx.controls = append(ctx.controls, mc)
	tr.controls = append(tr.controls, mc)
	return mc, nil
}

// Sources returns all sources made by the tracker.
func (tr *Tracker) Sources() []*Source {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]*Source(nil), tr.sources...)
}

// Contexts returns all tracking contexts made by the tracker.
func (tr *Tracker) Contexts() []*Context {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]*Context(nil), tr.contexts...)
}

// Controls returns all marker controls made by the tracker.
func (tr *Tracker) Controls() []*MarkerControls {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]*MarkerControls(nil), tr.controls...)
}

// LiveTracks returns the number of camera streams whose
// tracks are running.
func (tr *Tracker) LiveTracks() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	n := 0
	for _, src := range tr.sources {
		if src.live {
			n++
		}
	}
	return n
}

// Source is a simulated camera [arview.Source]. Like a browser
// camera request, the stream is acquired once Init has been called
// even if Stop is called before it arrives; Stop only ends the tracks
// that are running at the time.
type Source struct {
	tracker *Tracker
	size    image.Point
	ready   bool
	live    bool
	stopped bool
}

func (src *Source) Init(onReady func(), onError func(err error)) {
	tr := src.tracker
	tr.Loop.Post(func() {
		tr.mu.Lock()
		err := tr.CameraError
		if err == nil {
			src.ready = true
			src.live = true
		}
		tr.mu.Unlock()
		if err != nil {
			onError(err)
			return
		}
		onReady()
	})
}

func (src *Source) Ready() bool {
	src.tracker.mu.Lock()
	defer src.tracker.mu.Unlock()
	return src.ready && src.live
}

// Resize fits the video to cover the window while
// keeping the aspect ratio of the camera.
func (src *Source) Resize(window image.Point) {
	tr := src.tracker
	tr.mu.Lock()
	defer tr.mu.Unlock()
	src.size = coverSize(tr.VideoSize, window)
}

func (src *Source) Size() image.Point {
	src.tracker.mu.Lock()
	defer src.tracker.mu.Unlock()
	return src.size
}

func (src *Source) Stop() {
	src.tracker.mu.Lock()
	defer src.tracker.mu.Unlock()
	src.stopped = true
	src.live = false
}

// Stopped returns whether Stop has been called.
func (src *Source) Stopped() bool {
	src.tracker.mu.Lock()
	defer src.tracker.mu.Unlock()
	return src.stopped
}

// coverSize returns the size of a video of the given size scaled
// to cover the window.
func coverSize(video, window image.Point) image.Point {
	if video.X <= 0 || video.Y <= 0 || window.X <= 0 || window.Y <= 0 {
		return window
	}
	if window.X*video.Y < window.Y*video.X {
		return image.Pt(window.Y*video.X/video.Y, window.Y)
	}
	return image.Pt(window.X, window.X*video.Y/video.X)
}

// Context is a simulated [arview.TrackingContext].
type Context struct {
	tracker *Tracker
	Options arview.ContextOptions

	initialized bool
	disposed    bool
	canvas      image.Point
	updates     int
	controls    []*MarkerControls
}

// Projection is the projection matrix reported by every [Context].
var Projection = func() math32.Matrix4 {
	var m math32.Matrix4
	m.SetPerspective(45, 4.0/3.0, 0.01, 100)
	return m
}()

func (tc *Context) Init(onComplete func()) {
	tr := tc.tracker
	tr.Loop.Post(func() {
		tr.mu.Lock()
		disposed := tc.disposed
		tc.initialized = !disposed
		tr.mu.Unlock()
		if !disposed {
			onComplete()
		}
	})
}

// Update copies the current marker state into the marker controls
// of the context. Nothing is detected before initialization or
// when the source is not ready.
func (tc *Context) Update(src arview.Source) bool {
	tr := tc.tracker
	ready := src != nil && src.Ready()
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if !tc.initialized || tc.disposed || !ready {
		return false
	}
	tc.updates++
	for _, mc := range tc.controls {
		if mc.disposed {
			continue
		}
		mc.pose, mc.found = tr.marker, tr.visible
	}
	return tr.visible
}

func (tc *Context) ProjectionMatrix() math32.Matrix4 {
	return Projection
}

func (tc *Context) SetCanvasSize(size image.Point) {
	tc.tracker.mu.Lock()
	defer tc.tracker.mu.Unlock()
	tc.canvas = size
}

func (tc *Context) CanvasSize() image.Point {
	tc.tracker.mu.Lock()
	defer tc.tracker.mu.Unlock()
	return tc.canvas
}

func (tc *Context) Dispose() {
	tc.tracker.mu.Lock()
	defer tc.tracker.mu.Unlock()
	tc.disposed = true
}

// Disposed returns whether the context has been disposed.
func (tc *Context) Disposed() bool {
	tc.tracker.mu.Lock()
	defer tc.tracker.mu.Unlock()
	return tc.disposed
}

// Updates returns the number of frames the context has processed.
func (tc *Context) Updates() int {
	tc.tracker.mu.Lock()
	defer tc.tracker.mu.Unlock()
	return tc.updates
}

// MarkerControls is a simulated [arview.MarkerControls].
type MarkerControls struct {
	context *Context
	Anchor  *scene.Group
	Options arview.MarkerOptions

	pose     math32.Matrix4
	found    bool
	disposed bool
}

func (mc *MarkerControls) Pose() (math32.Matrix4, bool) {
	mc.context.tracker.mu.Lock()
	defer mc.context.tracker.mu.Unlock()
	return mc.pose, mc.found && !mc.disposed
}

func (mc *MarkerControls) Dispose() {
	mc.context.tracker.mu.Lock()
	defer mc.context.tracker.mu.Unlock()
	mc.disposed = true
}

// Disposed returns whether the controls have been disposed.
func (mc *MarkerControls) Disposed() bool {
	mc.context.tracker.mu.Lock()
	defer mc.context.tracker.mu.Unlock()
	return mc.disposed
}
