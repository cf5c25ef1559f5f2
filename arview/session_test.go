// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arview_test

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"cogentcore.org/arview/arview"
	"cogentcore.org/arview/diag"
	"cogentcore.org/arview/driver/offscreen"
	"cogentcore.org/arview/math32"
	"cogentcore.org/arview/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu sync.Mutex
	ds []diag.Diagnostic
}

func (r *recorder) Report(d diag.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ds = append(r.ds, d)
}

func (r *recorder) all() []diag.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]diag.Diagnostic(nil), r.ds...)
}

func newTestController(t *testing.T) (*offscreen.App, *arview.Controller, *recorder) {
	t.Helper()
	app := offscreen.NewApp(image.Pt(800, 600))
	rec := &recorder{}
	app.Reporter = rec
	return app, arview.NewController(app.Platform(), nil), rec
}

// mountReady mounts a view and runs the event loop until
// the camera and the tracking context are ready.
func mountReady(t *testing.T, app *offscreen.App, c *arview.Controller, sf arview.Surface) *arview.Session {
	t.Helper()
	s, err := c.Mount(sf)
	require.NoError(t, err)
	s.Wait()
	app.Loop.Flush()
	st := s.Stats()
	require.Equal(t, arview.Active, st.State)
	require.True(t, st.SourceReady)
	require.True(t, st.TrackingReady)
	return s
}

func markerAt(x, y, z float32) math32.Matrix4 {
	m := math32.Identity4()
	m.SetTranslation(math32.Vec3(x, y, z))
	return m
}

func TestMountNoSurface(t *testing.T) {
	app, c, _ := newTestController(t)
	s, err := c.Mount(nil)
	assert.ErrorIs(t, err, arview.ErrNoSurface)
	assert.Nil(t, s)

	_, err = c.Mount(&offscreen.Surface{})
	assert.ErrorIs(t, err, arview.ErrNoSurface)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, app.Scripts.Loaded())
}

func TestMountMissingCapability(t *testing.T) {
	app := offscreen.NewApp(image.Point{})
	p := app.Platform()
	p.Timers = nil
	c := arview.NewController(p, nil)
	_, err := c.Mount(&offscreen.Surface{ID: "arview"})
	assert.ErrorContains(t, err, "Timers")
}

func TestMountIdempotent(t *testing.T) {
	app, c, _ := newTestController(t)
	gate := offscreen.NewGate()
	app.Scripts.Gate = gate
	sf := &offscreen.Surface{ID: "arview"}

	s1, err := c.Mount(sf)
	require.NoError(t, err)
	s2, err := c.Mount(sf)
	require.NoError(t, err)
	assert.Same(t, s1, s2, "mount while initializing")

	gate.Open()
	s1.Wait()
	app.Loop.Flush()
	s3, err := c.Mount(sf)
	require.NoError(t, err)
	assert.Same(t, s1, s3, "mount while active")
	s3.Wait()

	assert.Equal(t, s1.Options().Scripts, app.Scripts.Loaded())
	assert.Len(t, app.Tracker.Sources(), 1)
	assert.Len(t, app.Tracker.Contexts(), 1)
	assert.Len(t, app.Renderers.All(), 1)
	assert.Len(t, app.Models.Assets(), 1)
	assert.Equal(t, 1, c.Len())
	assert.Same(t, s1, c.Session(sf))
}

func TestSurfacesAreIndependent(t *testing.T) {
	app, c, _ := newTestController(t)
	a := mountReady(t, app, c, &offscreen.Surface{ID: "a"})
	b := mountReady(t, app, c, &offscreen.Surface{ID: "b"})
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, c.Len())

	assert.True(t, c.Unmount(&offscreen.Surface{ID: "a"}))
	assert.Equal(t, 1, c.Len())
	assert.True(t, b.Mounted())
	assert.Equal(t, 1, app.Tracker.LiveTracks())
}

func TestUnmountBeforeScriptsLoad(t *testing.T) {
	app, c, rec := newTestController(t)
	gate := offscreen.NewGate()
	app.Scripts.Gate = gate
	sf := &offscreen.Surface{ID: "arview"}

	s, err := c.Mount(sf)
	require.NoError(t, err)
	assert.NotPanics(t, s.Unmount)
	gate.Open()
	s.Wait()
	app.Loop.Flush()

	assert.Equal(t, arview.Unmounted, s.Stats().State)
	assert.Empty(t, app.Tracker.Sources())
	assert.Empty(t, app.Renderers.All())
	assert.Equal(t, 0, app.Loop.PendingFrames())
	assert.Equal(t, 0, app.Loop.PendingTimers())
	assert.Equal(t, 0, app.Window.Handlers())
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, rec.all(), "cancellation is not a failure")

	// the surface can be mounted again
	s2 := mountReady(t, app, c, sf)
	assert.NotEqual(t, s.ID(), s2.ID())
	assert.False(t, s.Mounted())
}

func TestUnmountBeforeCameraReady(t *testing.T) {
	app, c, rec := newTestController(t)
	sf := &offscreen.Surface{ID: "arview"}

	s, err := c.Mount(sf)
	require.NoError(t, err)
	s.Wait()
	require.Len(t, app.Tracker.Sources(), 1)
	assert.Equal(t, 0, app.Tracker.LiveTracks(), "the stream has not arrived yet")

	s.Unmount()
	app.Loop.Flush() // the camera stream arrives after the unmount

	assert.Equal(t, 0, app.Tracker.LiveTracks(), "late camera stream is stopped")
	assert.True(t, app.Tracker.Sources()[0].Stopped())
	assert.False(t, s.Stats().SourceReady)
	assert.Equal(t, 0, app.Loop.PendingFrames())
	assert.Equal(t, 0, app.Loop.PendingTimers())
	assert.Empty(t, app.Renderers.Last().Frames())
	assert.Empty(t, rec.all())
}

func TestUnmountBeforeModelLoads(t *testing.T) {
	app, c, rec := newTestController(t)
	gate := offscreen.NewGate()
	app.Models.Gate = gate
	app.Models.IgnoreCancel = true
	sf := &offscreen.Surface{ID: "arview"}

	s, err := c.Mount(sf)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return s.Stats().State == arview.Active
	}, 5*time.Second, time.Millisecond)
	app.Loop.Flush()
	app.Tracker.SetMarker(markerAt(0, 0, -5), true)
	assert.Equal(t, 3, app.Loop.Frames(3))

	r := app.Renderers.Last()
	for _, fr := range r.Frames() {
		assert.True(t, fr.Visible)
		assert.Empty(t, fr.Models, "the loop runs before the model arrives")
	}

	s.Unmount()
	gate.Open()
	s.Wait()

	assets := app.Models.Assets()
	require.Len(t, assets, 1)
	assert.True(t, assets[0].Disposed(), "late model is disposed")
	s.Scene(func(sc *scene.Scene) {
		assert.Empty(t, sc.Models())
	})
	assert.Equal(t, 0, app.Tracker.LiveTracks())
	assert.True(t, app.Tracker.Sources()[0].Stopped())
	assert.True(t, app.Tracker.Contexts()[0].Disposed())
	assert.True(t, app.Tracker.Controls()[0].Disposed())
	assert.True(t, r.Disposed())
	assert.Equal(t, 0, app.Loop.PendingFrames())
	assert.Equal(t, 0, app.Loop.PendingTimers())
	assert.Equal(t, 0, app.Window.Handlers())
	assert.Equal(t, 0, app.Loop.Frame())
	assert.Len(t, r.Frames(), 3)
	assert.Empty(t, rec.all())
}

func TestModelLoadFailure(t *testing.T) {
	app, c, rec := newTestController(t)
	opts := c.Options
	app.Models.Errors = map[string]error{opts.ModelURL: errors.New("404 Not Found")}

	s := mountReady(t, app, c, &offscreen.Surface{ID: "arview"})
	app.Tracker.SetMarker(markerAt(0, 0, -5), true)
	assert.Equal(t, 3, app.Loop.Frames(3))

	st := s.Stats()
	assert.Equal(t, arview.Active, st.State)
	assert.False(t, st.ModelLoaded)
	assert.Equal(t, 3, st.Frames)
	assert.NoError(t, s.Err())

	fr, ok := app.Renderers.Last().LastFrame()
	require.True(t, ok)
	assert.True(t, fr.Visible)
	assert.Empty(t, fr.Models)

	ds := rec.all()
	require.Len(t, ds, 1)
	assert.Equal(t, diag.ModelLoad, ds[0].Kind)
	assert.Equal(t, opts.ModelURL, ds[0].Resource)
	assert.Equal(t, s.ID(), ds[0].Session)
	assert.Contains(t, ds[0].Message, "404")
}

func TestVisibilityMirrorsDetection(t *testing.T) {
	app, c, _ := newTestController(t)
	s := mountReady(t, app, c, &offscreen.Surface{ID: "arview"})
	r := app.Renderers.Last()

	for i, visible := range []bool{false, true, true, false, true, false} {
		if visible {
			app.Tracker.SetMarker(markerAt(0.1*float32(i), 0, -4), true)
		} else {
			app.Tracker.HideMarker()
		}
		require.Equal(t, 1, app.Loop.Frame())
		fr, ok := r.LastFrame()
		require.True(t, ok)
		assert.Equal(t, visible, fr.Visible, "frame %d", i)
		s.Scene(func(sc *scene.Scene) {
			assert.Equal(t, visible, sc.Camera.Visible, "frame %d", i)
			assert.Equal(t, sc.Camera.Visible, sc.Visible, "frame %d", i)
		})
		if !visible {
			assert.Empty(t, fr.Models, "frame %d", i)
		}
	}
	assert.Equal(t, 3, s.Stats().VisibleFrames)
}

func TestResizeConsistency(t *testing.T) {
	app, c, _ := newTestController(t)
	s := mountReady(t, app, c, &offscreen.Surface{ID: "arview"})
	src := app.Tracker.Sources()[0]
	tc := app.Tracker.Contexts()[0]
	r := app.Renderers.Last()

	check := func(win image.Point) {
		t.Helper()
		sz := src.Size()
		assert.Equal(t, sz, r.Size())
		assert.Equal(t, sz, tc.CanvasSize())
		assert.GreaterOrEqual(t, sz.X, win.X)
		assert.GreaterOrEqual(t, sz.Y, win.Y)
	}
	check(app.Window.Size())

	for _, win := range []image.Point{{1024, 768}, {375, 812}, {1920, 1080}, {640, 640}} {
		app.Window.Resize(win)
		app.Loop.Flush()
		check(win)
		app.Loop.Frame()
		fr, _ := r.LastFrame()
		assert.Equal(t, src.Size(), fr.Size)
	}

	// the deferred resize after the camera is ready
	assert.Equal(t, 1, app.Loop.PendingTimers())
	app.Loop.Advance(s.Options().ResizeDelay)
	assert.Equal(t, 0, app.Loop.PendingTimers())
	check(app.Window.Size())
}

func TestEndToEnd(t *testing.T) {
	app, c, rec := newTestController(t)
	sf := &offscreen.Surface{ID: "arview"}
	s, err := c.Mount(sf)
	require.NoError(t, err)
	s.Wait()
	assert.Equal(t, c.Options.Scripts, app.Scripts.Loaded())

	// nothing renders before the camera is ready
	assert.Equal(t, 0, app.Loop.PendingFrames())
	app.Loop.Flush()
	require.True(t, s.Stats().SourceReady)
	r := app.Renderers.Last()
	assert.True(t, r.Options.Alpha)

	// marker absent
	assert.Equal(t, 3, app.Loop.Frames(3))
	for _, fr := range r.Frames() {
		assert.False(t, fr.Visible)
		assert.Empty(t, fr.Models)
	}

	// marker enters the view
	app.Tracker.SetMarker(markerAt(0, 0, -5), true)
	assert.Equal(t, 1, app.Loop.Frame())
	fr, ok := r.LastFrame()
	require.True(t, ok)
	assert.True(t, fr.Visible)
	assert.Equal(t, offscreen.Projection, fr.Projection)
	assert.Equal(t, 2, fr.Lights)
	require.Len(t, fr.Models, 1)
	md := fr.Models[0]
	assert.Equal(t, c.Options.ModelURL, md.URL)
	pos := md.World.Pos()
	assert.True(t, pos.IsEqualTol(math32.Vec3(0, 0.25, -5), 1e-5), "model at %v", pos)
	assert.InDelta(t, c.Options.ModelScale, md.World[0], 1e-6)
	s.Scene(func(sc *scene.Scene) {
		for _, lt := range sc.Lights {
			assert.Equal(t, scene.LightColorMap[c.Options.LightColor], lt.AsLightBase().Color)
		}
	})

	// unmount
	frames := len(r.Frames())
	assert.True(t, c.Unmount(sf))
	assert.Equal(t, 0, app.Tracker.LiveTracks())
	assert.True(t, r.Disposed())
	assert.Equal(t, 0, app.Loop.Frames(5))
	assert.Len(t, r.Frames(), frames)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, rec.all())
}

func TestUnmountIdempotent(t *testing.T) {
	app, c, _ := newTestController(t)
	sf := &offscreen.Surface{ID: "arview"}
	s := mountReady(t, app, c, sf)
	app.Loop.Frame()

	s.Unmount()
	assert.NotPanics(t, s.Unmount)
	assert.False(t, c.Unmount(sf))
	assert.Equal(t, arview.Unmounted, s.Stats().State)
	assert.Nil(t, c.Session(sf))
}

func TestScriptLoadFailure(t *testing.T) {
	app, c, rec := newTestController(t)
	scripts := c.Options.Scripts
	netErr := errors.New("net::ERR_NAME_NOT_RESOLVED")
	app.Scripts.Errors = map[string]error{scripts[0]: netErr}
	sf := &offscreen.Surface{ID: "arview"}

	s, err := c.Mount(sf)
	require.NoError(t, err)
	s.Wait()
	app.Loop.Flush()

	assert.ErrorIs(t, s.Err(), netErr)
	assert.Equal(t, arview.Failed, s.Stats().State)
	assert.Empty(t, app.Scripts.Loaded(), "later scripts do not load after a failure")
	assert.Empty(t, app.Tracker.Sources())
	assert.Empty(t, app.Renderers.All())
	assert.Equal(t, 0, c.Len())

	ds := rec.all()
	require.Len(t, ds, 1)
	assert.Equal(t, diag.ScriptLoad, ds[0].Kind)
	assert.Equal(t, scripts[0], ds[0].Resource)
	assert.NotPanics(t, s.Unmount)
}

func TestMissingEntryPoints(t *testing.T) {
	app, c, rec := newTestController(t)
	app.Tracker.Missing = []string{"THREEx.ArMarkerControls"}

	s, err := c.Mount(&offscreen.Surface{ID: "arview"})
	require.NoError(t, err)
	s.Wait()

	assert.Equal(t, arview.Failed, s.Stats().State)
	ds := rec.all()
	require.Len(t, ds, 1)
	assert.Equal(t, diag.EntryPoint, ds[0].Kind)
	assert.Contains(t, ds[0].Message, "THREEx.ArMarkerControls")
	assert.Empty(t, app.Renderers.All())
}

func TestRendererFailure(t *testing.T) {
	app, c, rec := newTestController(t)
	app.Renderers.Error = errors.New("webgl unavailable")

	s, err := c.Mount(&offscreen.Surface{ID: "arview"})
	require.NoError(t, err)
	s.Wait()

	assert.Equal(t, arview.Failed, s.Stats().State)
	assert.Empty(t, app.Tracker.Sources())
	assert.Equal(t, 0, c.Len())
	ds := rec.all()
	require.Len(t, ds, 1)
	assert.Equal(t, diag.Setup, ds[0].Kind)
}

func TestCameraFailure(t *testing.T) {
	app, c, rec := newTestController(t)
	app.Tracker.CameraError = errors.New("NotAllowedError: permission denied")
	sf := &offscreen.Surface{ID: "arview"}

	s, err := c.Mount(sf)
	require.NoError(t, err)
	s.Wait()
	app.Loop.Flush()

	assert.False(t, s.Stats().SourceReady)
	assert.ErrorContains(t, s.Err(), "permission denied")
	assert.Equal(t, 0, app.Loop.Frame(), "no render loop without a camera")
	assert.Equal(t, 0, app.Loop.PendingTimers())

	ds := rec.all()
	require.Len(t, ds, 1)
	assert.Equal(t, diag.Camera, ds[0].Kind)

	assert.True(t, c.Unmount(sf))
	assert.True(t, app.Renderers.Last().Disposed())
}

func TestOptionsAreCopiedPerSession(t *testing.T) {
	app, c, _ := newTestController(t)
	s := mountReady(t, app, c, &offscreen.Surface{ID: "arview"})
	c.Options.Scripts[0] = "changed.js"
	c.Options.ModelScale = 2
	assert.NotEqual(t, "changed.js", s.Options().Scripts[0])
	assert.NotEqual(t, float32(2), s.Options().ModelScale)
}
