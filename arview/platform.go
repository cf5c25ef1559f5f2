// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arview

import (
	"context"
	"fmt"
	"image"
	"time"

	"cogentcore.org/arview/diag"
	"cogentcore.org/arview/math32"
	"cogentcore.org/arview/scene"
)

// Surface is a display surface (a canvas) that a view is mounted on.
// It is a passive resource: all state about it is kept by the [Controller].
type Surface interface {

	// SurfaceID returns a stable identifier of the surface,
	// such as the id of the canvas element.
	SurfaceID() string
}

// ScriptLoader loads runtime scripts into the host environment.
type ScriptLoader interface {

	// LoadScript loads and executes the script at the given URL,
	// returning once it has run or failed.
	LoadScript(ctx context.Context, url string) error
}

// SourceOptions are the options for a new tracking [Source].
type SourceOptions struct {

	// Type is the source type, "webcam" for a live camera feed.
	Type string

	// Size is the requested size in pixels.
	Size image.Point
}

// ContextOptions are the options for a new [TrackingContext].
type ContextOptions struct {

	// CameraParametersURL is the relative URL of the camera calibration data.
	CameraParametersURL string

	// DetectionMode is the marker detection mode, such as "mono".
	DetectionMode string
}

// MarkerOptions are the options for new [MarkerControls].
type MarkerOptions struct {

	// Type is the marker type, "pattern" for a pattern file.
	Type string

	// PatternURL is the relative URL of the marker pattern definition.
	PatternURL string
}

// TrackerProvider is the marker tracking library. It replaces the
// global objects that the library defines once its scripts have run.
type TrackerProvider interface {

	// CheckEntryPoints returns an error naming every required library
	// entry point that is not available.
	CheckEntryPoints() error

	// NewSource returns a new video source.
	NewSource(opts SourceOptions) (Source, error)

	// NewContext returns a new tracking context.
	NewContext(opts ContextOptions) (TrackingContext, error)

	// NewMarkerControls binds the given anchor group to the pose of
	// the marker detected by the given tracking context.
	NewMarkerControls(tc TrackingContext, anchor *scene.Group, opts MarkerOptions) (MarkerControls, error)
}

// Source is a video source of the tracking library.
type Source interface {

	// Init acquires the camera stream. Exactly one of onReady or onError
	// is called later on the event loop.
	Init(onReady func(), onError func(err error))

	// Ready returns whether the video stream is ready.
	Ready() bool

	// Resize fits the video element to the given window size.
	Resize(window image.Point)

	// Size returns the current size of the video element.
	Size() image.Point

	// Stop stops every media track of the camera stream.
	Stop()
}

// TrackingContext performs marker detection and pose estimation.
type TrackingContext interface {

	// Init loads the calibration data. onComplete is called
	// later on the event loop once it is loaded.
	Init(onComplete func())

	// Update processes the current video frame of the given source.
	// It returns whether a marker was detected.
	Update(src Source) bool

	// ProjectionMatrix returns the camera projection matrix
	// derived from the calibration data.
	ProjectionMatrix() math32.Matrix4

	// SetCanvasSize sets the size of the detection canvas.
	SetCanvasSize(size image.Point)

	// CanvasSize returns the size of the detection canvas.
	CanvasSize() image.Point

	// Dispose releases the context.
	Dispose()
}

// MarkerControls is the binding between a tracking context
// and the anchor group.
type MarkerControls interface {

	// Pose returns the pose of the marker from the last update,
	// and whether the marker was detected in it.
	Pose() (math32.Matrix4, bool)

	// Dispose removes the binding.
	Dispose()
}

// RendererOptions are the options for a new [Renderer].
type RendererOptions struct {

	// Alpha is whether the renderer clears to a transparent
	// background so that the video underneath shows through.
	Alpha bool

	// Antialias is whether to antialias edges.
	Antialias bool
}

// RendererFactory makes renderers bound to display surfaces.
type RendererFactory interface {
	NewRenderer(sf Surface, opts RendererOptions) (Renderer, error)
}

// Renderer draws a scene onto its surface.
type Renderer interface {
	SetSize(size image.Point)
	Size() image.Point

	// Render draws the scene once. Nothing is drawn when
	// the scene is not visible.
	Render(sc *scene.Scene)

	// Dispose releases the graphics resources.
	Dispose()
}

// ModelLoader loads 3D model files.
type ModelLoader interface {

	// LoadModel fetches and parses the model at the given URL.
	// The returned asset is placed in [scene.Model.Asset]. If it has a
	// Dispose method, it is called when the asset is no longer needed.
	LoadModel(ctx context.Context, url string) (any, error)
}

// Window is the host window.
type Window interface {

	// Size returns the inner size of the window in pixels.
	Size() image.Point

	// OnResize adds a handler called on the event loop
	// whenever the window is resized. It returns a function
	// that removes the handler.
	OnResize(f func()) (remove func())
}

// FrameID identifies a requested animation frame.
type FrameID int

// FrameScheduler schedules animation frames.
type FrameScheduler interface {

	// RequestFrame calls f once before the next repaint.
	RequestFrame(f func()) FrameID

	// CancelFrame cancels a requested frame that has not run yet.
	CancelFrame(id FrameID)
}

// Timers schedules deferred calls.
type Timers interface {

	// AfterFunc calls f on the event loop after d. It returns
	// a function that cancels the call if it has not run yet.
	AfterFunc(d time.Duration, f func()) (stop func())
}

// Platform contains all of the host capabilities that a view uses.
type Platform struct {
	Scripts   ScriptLoader
	Tracker   TrackerProvider
	Renderers RendererFactory
	Models    ModelLoader
	Window    Window
	Frames    FrameScheduler
	Timers    Timers

	// Reporter receives diagnostics about failures. If it is nil,
	// they are logged with [diag.LogReporter].
	Reporter diag.Reporter
}

// Validate returns an error if a required capability is missing.
func (p *Platform) Validate() error {
	caps := []struct {
		name string
		ok   bool
	}{
		{"Scripts", p.Scripts != nil},
		{"Tracker", p.Tracker != nil},
		{"Renderers", p.Renderers != nil},
		{"Models", p.Models != nil},
		{"Window", p.Window != nil},
		{"Frames", p.Frames != nil},
		{"Timers", p.Timers != nil},
	}
	for _, c := range caps {
		if !c.ok {
			return fmt.Errorf("arview.Platform: missing %s capability", c.name)
		}
	}
	return nil
}

// Disposer is implemented by loaded assets that hold resources.
type Disposer interface {
	Dispose()
}

func dispose(asset any) {
	if d, ok := asset.(Disposer); ok {
		d.Dispose()
	}
}
