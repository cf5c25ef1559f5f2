// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arview

import (
	"log/slog"

	"cogentcore.org/arview/base/errors"
	"cogentcore.org/arview/diag"
	"cogentcore.org/arview/scene"
)

// Names of the nodes and lights in the scene of a session.
const (
	AnchorName       = "anchor"
	ModelName        = "model"
	AmbientLightName = "ambient"
	DirLightName     = "directional"
)

// initialize runs the initialization sequence of the session.
// It is run in its own goroutine by [Controller.Mount].
func (s *Session) initialize() {
	defer s.wg.Done()
	p := &s.ctrl.Platform
	err := RunSteps(s.ctx, ScriptSteps(p.Scripts, s.opts.Scripts...)...)
	if err != nil {
		if s.ctx.Err() != nil {
			return // unmounted
		}
		resource := ""
		var se *StepError
		if errors.As(err, &se) {
			resource = se.Step
		}
		s.fail(diag.ScriptLoad, resource, err)
		return
	}
	if err := p.Tracker.CheckEntryPoints(); err != nil {
		s.fail(diag.EntryPoint, "", err)
		return
	}
	if !s.build() {
		return
	}
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	s.state = Active
	s.mu.Unlock()
	slog.Info("view active", "surface", s.surfaceID, "session", s.id)
}

// build constructs the scene and the view resources in order, once
// the tracking library is loaded. It returns false if the session was
// unmounted or failed meanwhile.
func (s *Session) build() bool {
	p := &s.ctrl.Platform
	o := s.opts

	sc := scene.NewScene("arview")
	sc.Visible = false
	sc.Camera.Visible = false
	anchor := scene.NewGroup(AnchorName)
	errors.Log(sc.Add(anchor))
	if !s.keep(func() { s.scene, s.anchor = sc, anchor }, nil) {
		return false
	}

	r, err := p.Renderers.NewRenderer(s.surface, RendererOptions{Alpha: true, Antialias: true})
	if err != nil {
		s.fail(diag.Setup, "renderer", err)
		return false
	}
	r.SetSize(p.Window.Size())
	if !s.keep(func() { s.renderer = r }, r.Dispose) {
		return false
	}

	src, err := p.Tracker.NewSource(SourceOptions{Type: "webcam", Size: p.Window.Size()})
	if err != nil {
		s.fail(diag.Setup, "webcam", err)
		return false
	}
	if !s.keep(func() { s.source = src }, src.Stop) {
		return false
	}

	tc, err := p.Tracker.NewContext(ContextOptions{CameraParametersURL: o.CameraParametersURL, DetectionMode: o.DetectionMode})
	if err != nil {
		s.fail(diag.Setup, o.CameraParametersURL, err)
		return false
	}
	if !s.keep(func() { s.tracking = tc }, tc.Dispose) {
		return false
	}

	remove := p.Window.OnResize(s.resize)
	if !s.keep(func() { s.removeResize = remove }, remove) {
		return false
	}
	src.Init(func() { s.onSourceReady(src) }, s.onSourceError)

	tc.Init(s.onTrackingReady)

	mc, err := p.Tracker.NewMarkerControls(tc, anchor, MarkerOptions{Type: "pattern", PatternURL: o.PatternURL})
	if err != nil {
		s.fail(diag.Setup, o.PatternURL, err)
		return false
	}
	if !s.keep(func() { s.controls = mc }, mc.Dispose) {
		return false
	}

	s.loadModel()

	return s.keep(func() {
		scene.NewAmbientLight(s.scene, AmbientLightName, o.AmbientLumens, o.LightColor)
		scene.NewDirLight(s.scene, DirLightName, o.DirLumens, o.LightColor)
	}, nil)
}

// loadModel loads the model in the background and adds it
// under the anchor group, unless the session is gone by then.
func (s *Session) loadModel() {
	url := s.opts.ModelURL
	if url == "" {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		asset, err := s.ctrl.Platform.Models.LoadModel(s.ctx, url)
		if err != nil {
			if s.ctx.Err() == nil {
				s.report(diag.ModelLoad, url, err)
			}
			return
		}
		s.mu.Lock()
		if !s.mounted {
			s.mu.Unlock()
			slog.Debug("discarding model loaded after unmount", "session", s.id, "url", url)
			dispose(asset)
			return
		}
		md := scene.NewModel(ModelName, url, asset)
		sc := s.opts.ModelScale
		md.SetScale(sc, sc, sc)
		md.Pose.Pos = s.opts.ModelPosition
		err = s.anchor.Add(md)
		if err == nil {
			s.modelLoaded = true
		}
		s.mu.Unlock()
		if errors.Log(err) == nil {
			slog.Debug("model loaded", "session", s.id, "url", url)
		}
	}()
}
