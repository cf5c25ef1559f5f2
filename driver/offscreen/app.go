// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package offscreen provides an in-process implementation of the
// [arview.Platform] capabilities, for testing views and simulating
// them without a browser. Marker detections are scripted and the
// renderer records what it would draw.
package offscreen

import (
	"image"

	"cogentcore.org/arview/arview"
	"cogentcore.org/arview/diag"
)

// Surface is an [arview.Surface] identified by its ID.
type Surface struct {
	ID string
}

func (sf *Surface) SurfaceID() string {
	return sf.ID
}

// App bundles the simulated capabilities around one [Loop].
type App struct {
	Loop      *Loop
	Window    *Window
	Scripts   *Scripts
	Tracker   *Tracker
	Renderers *Renderers
	Models    *Models

	// Reporter receives the diagnostics of the platform, if set.
	Reporter diag.Reporter
}

// NewApp returns a new app with a window of the given size
// (800x600 if it is zero) and a 640x480 camera.
func NewApp(size image.Point) *App {
	l := NewLoop()
	return &App{
		Loop:      l,
		Window:    NewWindow(l, size),
		Scripts:   &Scripts{},
		Tracker:   NewTracker(l),
		Renderers: &Renderers{},
		Models:    &Models{},
	}
}

// Platform returns the [arview.Platform] of the app.
func (a *App) Platform() *arview.Platform {
	return &arview.Platform{
		Scripts:   a.Scripts,
		Tracker:   a.Tracker,
		Renderers: a.Renderers,
		Models:    a.Models,
		Window:    a.Window,
		Frames:    a.Loop,
		Timers:    a.Loop,
		Reporter:  a.Reporter,
	}
}
