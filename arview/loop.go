// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arview

import (
	"log/slog"

	"cogentcore.org/arview/diag"
	"cogentcore.org/arview/math32"
)

// onSourceReady is called on the event loop once the camera stream
// of src is ready. It synchronizes sizes now and again after the resize
// delay (the stream size is not stable right away), and starts the
// render loop. A stream that arrives after the session is gone is
// stopped right away.
func (s *Session) onSourceReady(src Source) {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		slog.Debug("stopping camera acquired after unmount", "session", s.id)
		src.Stop()
		return
	}
	if s.sourceReady {
		s.mu.Unlock()
		return
	}
	s.sourceReady = true
	delay := s.opts.ResizeDelay
	s.mu.Unlock()
	slog.Debug("camera ready", "session", s.id)

	s.resize()
	stop := s.ctrl.Platform.Timers.AfterFunc(delay, s.resize)
	if !s.keep(func() { s.stopResizeTimer = stop }, stop) {
		return
	}
	s.requestFrame()
}

// onSourceError is called on the event loop when the camera
// stream can not be acquired. The view stays blank.
func (s *Session) onSourceError(err error) {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	s.err = err
	s.mu.Unlock()
	s.report(diag.Camera, "webcam", err)
}

// onTrackingReady is called on the event loop once the tracking
// context has loaded its calibration data.
func (s *Session) onTrackingReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted || s.tracking == nil {
		return
	}
	s.trackingReady = true
	s.scene.Camera.SetProjection(s.tracking.ProjectionMatrix())
}

// resize makes the source fit the window, and the renderer
// and the tracking canvas match the source.
func (s *Session) resize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted || s.source == nil {
		return
	}
	s.source.Resize(s.ctrl.Platform.Window.Size())
	sz := s.source.Size()
	s.renderer.SetSize(sz)
	if s.tracking != nil {
		s.tracking.SetCanvasSize(sz)
	}
}

// requestFrame schedules the next tick of the render loop.
func (s *Session) requestFrame() {
	if !s.Mounted() {
		return
	}
	fr := s.ctrl.Platform.Frames
	id := fr.RequestFrame(s.tick)
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		fr.CancelFrame(id)
		return
	}
	s.frame, s.framePending = id, true
	s.mu.Unlock()
}

// tick is one iteration of the render loop. It stops the loop
// if the session is gone or the source is not ready.
func (s *Session) tick() {
	s.mu.Lock()
	s.framePending = false
	if !s.mounted || s.source == nil || !s.source.Ready() {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.requestFrame()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return
	}
	s.renderFrame()
}

// renderFrame updates tracking and draws the scene once.
// It must be called with the lock held.
func (s *Session) renderFrame() {
	sc := s.scene
	if s.tracking != nil {
		s.tracking.Update(s.source)
	}
	found := false
	if s.controls != nil {
		var pose math32.Matrix4
		pose, found = s.controls.Pose()
		if found {
			s.anchor.SetMatrix(pose)
		}
	}
	sc.Camera.Visible = found
	if s.trackingReady {
		sc.Camera.SetProjection(s.tracking.ProjectionMatrix())
	}
	sc.Visible = sc.Camera.Visible
	s.renderer.Render(sc)
	s.frames++
	if sc.Visible {
		s.visibleFrames++
	}
}
