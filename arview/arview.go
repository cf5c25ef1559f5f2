// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arview binds a camera feed and the output of a marker tracking
// library to a real-time 3D render of a model anchored on the marker.
//
// A [Controller] mounts views on display surfaces. Each mount starts a
// [Session] that loads the tracking library, builds the scene, runs the
// render loop, and releases everything it acquired when it is unmounted.
// All host interaction goes through the capabilities of a [Platform],
// so the same code runs in the browser (driver/web) and headless
// (driver/offscreen).
package arview

import (
	"fmt"
	"log/slog"

	"cogentcore.org/arview/base/errors"
	"cogentcore.org/arview/diag"
)

// ErrNoSurface is returned by [Controller.Mount] when there is no display surface.
var ErrNoSurface = errors.New("arview: no display surface to mount on")

// Controller mounts AR views on display surfaces. It allows at most one
// initializing or active [Session] per surface.
type Controller struct {

	// Platform contains the host capabilities.
	Platform Platform

	// Options are the view options copied into every new session.
	Options Options

	registry registry
}

// NewController returns a new controller using the given platform and options.
// If opts is nil, [DefaultOptions] are used.
func NewController(p *Platform, opts *Options) *Controller {
	if opts == nil {
		opts = DefaultOptions()
	}
	c := &Controller{Platform: *p, Options: *opts.Clone()}
	if c.Platform.Reporter == nil {
		c.Platform.Reporter = diag.LogReporter{}
	}
	return c
}

// Mount mounts a view on the given surface and returns its session.
// Initialization continues asynchronously; see [Session.Wait].
// If a session is already initializing or active on the surface,
// Mount returns it without doing anything else.
func (c *Controller) Mount(sf Surface) (*Session, error) {
	if sf == nil || sf.SurfaceID() == "" {
		return nil, ErrNoSurface
	}
	if err := c.Platform.Validate(); err != nil {
		return nil, err
	}
	id := sf.SurfaceID()
	s, isNew := c.registry.claim(id, func() *Session {
		return newSession(c, sf)
	})
	if !isNew {
		slog.Debug("view already mounted", "surface", id, "session", s.id)
		return s, nil
	}
	slog.Info("mounting view", "surface", id, "session", s.id)
	s.wg.Add(1)
	go s.initialize()
	return s, nil
}

// Unmount unmounts the session on the given surface, if any,
// and returns whether there was one.
func (c *Controller) Unmount(sf Surface) bool {
	if sf == nil {
		return false
	}
	s := c.registry.get(sf.SurfaceID())
	if s == nil {
		return false
	}
	s.Unmount()
	return true
}

// Session returns the session initializing or active on the given surface, or nil.
func (c *Controller) Session(sf Surface) *Session {
	if sf == nil {
		return nil
	}
	return c.registry.get(sf.SurfaceID())
}

// Len returns the number of surfaces with an initializing or active session.
func (c *Controller) Len() int {
	return c.registry.len()
}

// String returns a short description of the controller.
func (c *Controller) String() string {
	return fmt.Sprintf("arview.Controller{sessions: %d}", c.Len())
}
