// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"image"
	"sync"
	"time"

	"cogentcore.org/arview/arview"
	"cogentcore.org/arview/base/errors"
	"cogentcore.org/arview/base/logx"
	"cogentcore.org/arview/config"
	"cogentcore.org/arview/diag"
	"cogentcore.org/arview/driver/offscreen"
	"cogentcore.org/arview/math32"
)

// SimulateOptions are the options of [Simulate].
type SimulateOptions struct {

	// Frames is the number of frames to run.
	Frames int

	// MarkerFrom and MarkerTo are the first frame the marker is
	// in view and the frame after the last one.
	MarkerFrom, MarkerTo int

	// Window is the size of the simulated window.
	Window image.Point

	// FailModel makes the model fail to load.
	FailModel bool
}

// SimulateResult is the outcome of [Simulate].
type SimulateResult struct {
	Stats arview.Stats

	// ModelFrames is the number of frames in which the model was drawn.
	ModelFrames int

	// LiveTracks is the number of camera tracks left after unmounting.
	LiveTracks int

	Diagnostics []diag.Diagnostic
}

// Simulate mounts a view on the offscreen platform, runs it for the
// given number of frames with the marker in view for the given range,
// and unmounts it.
func Simulate(c *config.Config, so *SimulateOptions) (*SimulateResult, error) {
	cl, err := c.Client()
	if err != nil {
		return nil, err
	}
	app := offscreen.NewApp(so.Window)
	if so.FailModel {
		app.Models.Errors = map[string]error{cl.Model: errors.New("simulated model load failure")}
	}
	res := &SimulateResult{}
	var mu sync.Mutex
	app.Reporter = diag.Multi(diag.LogReporter{}, diag.ReporterFunc(func(d diag.Diagnostic) {
		mu.Lock()
		res.Diagnostics = append(res.Diagnostics, d)
		mu.Unlock()
	}))

	ctrl := arview.NewController(app.Platform(), arview.OptionsFromClient(cl))
	s, err := ctrl.Mount(&offscreen.Surface{ID: cl.CanvasID})
	if err != nil {
		return nil, err
	}
	s.Wait()
	app.Loop.Advance(cl.ResizeDelay())

	pose := math32.Identity4()
	pose.SetTranslation(math32.Vec3(0, 0, -5))
	for i := range so.Frames {
		app.Tracker.SetMarker(pose, i >= so.MarkerFrom && i < so.MarkerTo)
		app.Loop.Frame()
	}
	res.Stats = s.Stats()
	if r := app.Renderers.Last(); r != nil {
		for _, fr := range r.Frames() {
			if len(fr.Models) > 0 {
				res.ModelFrames++
			}
		}
	}
	s.Unmount()
	res.LiveTracks = app.Tracker.LiveTracks()
	if err := s.Err(); err != nil {
		return res, fmt.Errorf("simulate: %w", err)
	}
	return res, nil
}

// PrintSimulation prints the result of [Simulate].
func PrintSimulation(res *SimulateResult) {
	st := res.Stats
	logx.PrintfInfo("state:          %s\n", st.State)
	logx.PrintfInfo("frames:         %d\n", st.Frames)
	logx.PrintfInfo("visible frames: %d\n", st.VisibleFrames)
	logx.PrintfInfo("model frames:   %d\n", res.ModelFrames)
	logx.PrintfInfo("model loaded:   %v\n", st.ModelLoaded)
	logx.PrintfInfo("live tracks:    %d\n", res.LiveTracks)
	for _, d := range res.Diagnostics {
		logx.PrintlnWarn("diagnostic:", d.Kind, d.Resource, d.Message)
		logx.PrintlnDebug("  id:", d.ID, "session:", d.Session, "time:", d.Time.Format(time.RFC3339))
	}
}
