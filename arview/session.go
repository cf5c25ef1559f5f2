// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arview

import (
	"context"
	"log/slog"
	"sync"

	"cogentcore.org/arview/diag"
	"cogentcore.org/arview/scene"
	"github.com/google/uuid"
)

// State is the lifecycle state of a [Session].
type State int32

const (
	// Initializing is the state while the tracking library loads.
	Initializing State = iota

	// Active is the state once the view is set up.
	Active

	// Failed is the state after initialization was aborted.
	Failed

	// Unmounted is the state after [Session.Unmount].
	Unmounted
)

var stateNames = [...]string{"initializing", "active", "failed", "unmounted"}

func (st State) String() string {
	if st < 0 || int(st) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[st]
}

// Stats is a snapshot of the progress of a [Session].
type Stats struct {
	State State

	// Frames is the number of render calls.
	Frames int

	// VisibleFrames is the number of frames rendered with the scene visible.
	VisibleFrames int

	SourceReady   bool
	TrackingReady bool
	ModelLoaded   bool
}

// Session is one mounted view: the camera, tracking and rendering
// resources for one surface, and the scene drawn with them. Its
// fields are filled in asynchronously after [Controller.Mount], and
// every handle is released in reverse order by [Session.Unmount].
type Session struct {
	id        string
	ctrl      *Controller
	surface   Surface
	surfaceID string
	opts      *Options

	// ctx is canceled on unmount, aborting pending loads.
	ctx    context.Context
	cancel context.CancelFunc

	// wg counts the initialization and model load goroutines.
	wg sync.WaitGroup

	mu      sync.Mutex
	mounted bool
	state   State
	err     error

	scene           *scene.Scene
	anchor          *scene.Group
	renderer        Renderer
	source          Source
	tracking        TrackingContext
	removeResize    func()
	stopResizeTimer func()
	controls        MarkerControls

	frame        FrameID
	framePending bool

	sourceReady   bool
	trackingReady bool
	modelLoaded   bool
	frames        int
	visibleFrames int
}

func newSession(c *Controller, sf Surface) *Session {
	s := &Session{
		id:        uuid.NewString(),
		ctrl:      c,
		surface:   sf,
		surfaceID: sf.SurfaceID(),
		opts:      c.Options.Clone(),
		mounted:   true,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// ID returns the unique id of the session.
func (s *Session) ID() string {
	return s.id
}

// Surface returns the surface the session is mounted on.
func (s *Session) Surface() Surface {
	return s.surface
}

// Options returns the options of the session.
func (s *Session) Options() *Options {
	return s.opts
}

// Wait blocks until initialization and the model load have finished,
// successfully or not.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Err returns the error that aborted initialization, or the
// camera error that left the view blank, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Mounted returns whether the session has not been unmounted or failed.
func (s *Session) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

// Stats returns a snapshot of the progress of the session.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		State:         s.state,
		Frames:        s.frames,
		VisibleFrames: s.visibleFrames,
		SourceReady:   s.sourceReady,
		TrackingReady: s.trackingReady,
		ModelLoaded:   s.modelLoaded,
	}
}

// Scene calls f with the scene of the session while it can not change.
// The scene is nil until it has been built.
func (s *Session) Scene(f func(sc *scene.Scene)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.scene)
}

// Unmount tears the session down: it stops the render loop, aborts
// pending loads and releases every acquired handle in reverse order of
// acquisition. It is safe to call at any point and more than once.
func (s *Session) Unmount() {
	if s.teardown(Unmounted) {
		slog.Info("view unmounted", "surface", s.surfaceID, "session", s.id)
	}
}

// teardown releases everything and leaves the session in the given state.
// It returns false if the session was already torn down.
func (s *Session) teardown(state State) bool {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return false
	}
	s.mounted = false
	s.state = state
	frame, framePending := s.frame, s.framePending
	controls, stopTimer, removeResize := s.controls, s.stopResizeTimer, s.removeResize
	tracking, source, renderer := s.tracking, s.source, s.renderer
	s.framePending = false
	s.controls, s.stopResizeTimer, s.removeResize = nil, nil, nil
	s.tracking, s.source, s.renderer = nil, nil, nil
	s.mu.Unlock()

	s.cancel()
	fr := s.ctrl.Platform.Frames
	if framePending {
		fr.CancelFrame(frame)
	}
	if controls != nil {
		controls.Dispose()
	}
	if stopTimer != nil {
		stopTimer()
	}
	if removeResize != nil {
		removeResize()
	}
	if tracking != nil {
		tracking.Dispose()
	}
	if source != nil {
		source.Stop()
	}
	if renderer != nil {
		renderer.Dispose()
	}
	s.ctrl.registry.release(s.surfaceID, s)
	return true
}

// keep stores a newly acquired handle with set if the session is still
// mounted. Otherwise it releases the handle and returns false.
func (s *Session) keep(set func(), release func()) bool {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		if release != nil {
			release()
		}
		return false
	}
	set()
	s.mu.Unlock()
	return true
}

// report sends a diagnostic about a failure of the session.
func (s *Session) report(kind diag.Kind, resource string, err error) {
	s.ctrl.Platform.Reporter.Report(diag.New(kind, s.id, resource, err))
}

// fail aborts initialization with the given error, releasing
// the handles acquired so far and the surface registration.
func (s *Session) fail(kind diag.Kind, resource string, err error) {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	s.err = err
	s.mu.Unlock()
	s.report(kind, resource, err)
	s.teardown(Failed)
}
