// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package offscreen

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"cogentcore.org/arview/arview"
	"cogentcore.org/arview/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopFrames(t *testing.T) {
	l := NewLoop()
	var got []int
	var again func()
	again = func() {
		got = append(got, 0)
		l.RequestFrame(again)
	}
	l.RequestFrame(again)
	id := l.RequestFrame(func() { got = append(got, 1) })
	l.CancelFrame(id)
	assert.Equal(t, 1, l.Frame())
	assert.Equal(t, 1, l.PendingFrames(), "frames requested in a frame run in the next one")
	assert.Equal(t, 2, l.Frames(2))
	assert.Equal(t, []int{0, 0, 0}, got)
}

func TestLoopTimers(t *testing.T) {
	l := NewLoop()
	var got []string
	l.AfterFunc(2*time.Second, func() { got = append(got, "b") })
	l.AfterFunc(time.Second, func() {
		got = append(got, "a")
		l.Post(func() { got = append(got, "a-task") })
	})
	stop := l.AfterFunc(1500*time.Millisecond, func() { got = append(got, "stopped") })
	stop()
	assert.Equal(t, 2, l.PendingTimers())

	l.Advance(time.Second)
	assert.Equal(t, []string{"a", "a-task"}, got)
	l.Advance(time.Second)
	assert.Equal(t, []string{"a", "a-task", "b"}, got)
	assert.Equal(t, 2*time.Second, l.Now())
	assert.Equal(t, 0, l.PendingTimers())
}

func TestCoverSize(t *testing.T) {
	video := image.Pt(640, 480)
	assert.Equal(t, image.Pt(800, 600), coverSize(video, image.Pt(800, 600)))
	assert.Equal(t, image.Pt(1920, 1440), coverSize(video, image.Pt(1920, 1080)))
	assert.Equal(t, image.Pt(853, 640), coverSize(video, image.Pt(640, 640)))
	assert.Equal(t, image.Pt(10, 10), coverSize(image.Point{}, image.Pt(10, 10)))
}

func TestTracker(t *testing.T) {
	app := NewApp(image.Point{})
	tr := app.Tracker
	assert.NoError(t, tr.CheckEntryPoints())
	tr.Missing = []string{"THREEx.ArToolkitSource"}
	assert.ErrorContains(t, tr.CheckEntryPoints(), "THREEx.ArToolkitSource")

	src, err := tr.NewSource(arview.SourceOptions{Type: "webcam", Size: app.Window.Size()})
	require.NoError(t, err)
	_, err = tr.NewSource(arview.SourceOptions{Type: "image"})
	assert.Error(t, err)

	tc, err := tr.NewContext(arview.ContextOptions{CameraParametersURL: "data/camera_para.dat", DetectionMode: "mono"})
	require.NoError(t, err)
	mc, err := tr.NewMarkerControls(tc, scene.NewGroup("anchor"), arview.MarkerOptions{Type: "pattern", PatternURL: "data/patt.hiro"})
	require.NoError(t, err)

	ready, inited := false, false
	src.Init(func() { ready = true }, func(err error) { t.Error(err) })
	tc.Init(func() { inited = true })
	tr.SetMarker(Projection, true)
	assert.False(t, tc.Update(src), "nothing before init")
	app.Loop.Flush()
	assert.True(t, ready)
	assert.True(t, inited)
	assert.Equal(t, 1, tr.LiveTracks())

	assert.True(t, tc.Update(src))
	pose, found := mc.Pose()
	assert.True(t, found)
	assert.Equal(t, Projection, pose)

	tr.HideMarker()
	assert.False(t, tc.Update(src))
	_, found = mc.Pose()
	assert.False(t, found)

	src.Stop()
	assert.False(t, src.Ready())
	assert.Equal(t, 0, tr.LiveTracks())
}

func TestLateCameraStream(t *testing.T) {
	app := NewApp(image.Point{})
	tr := app.Tracker
	src, err := tr.NewSource(arview.SourceOptions{Type: "webcam"})
	require.NoError(t, err)

	ready := false
	src.Init(func() { ready = true }, func(err error) { t.Error(err) })
	src.Stop()
	app.Loop.Flush()
	assert.True(t, ready, "the stream still arrives")
	assert.Equal(t, 1, tr.LiveTracks())
	assert.True(t, src.Ready())

	src.Stop()
	assert.Equal(t, 0, tr.LiveTracks())
	assert.False(t, src.Ready())
}

func TestCameraError(t *testing.T) {
	app := NewApp(image.Point{})
	app.Tracker.CameraError = errors.New("denied")
	src, err := app.Tracker.NewSource(arview.SourceOptions{Type: "webcam"})
	require.NoError(t, err)
	var got error
	src.Init(func() { t.Error("ready") }, func(err error) { got = err })
	app.Loop.Flush()
	assert.EqualError(t, got, "denied")
	assert.False(t, src.Ready())
}

func TestLoaders(t *testing.T) {
	sl := &Scripts{Errors: map[string]error{"bad.js": errors.New("404")}}
	ctx := context.Background()
	require.NoError(t, sl.LoadScript(ctx, "a.js"))
	assert.Error(t, sl.LoadScript(ctx, "bad.js"))
	assert.Equal(t, []string{"a.js"}, sl.Loaded())

	ml := &Models{Gate: NewGate()}
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err := ml.LoadModel(cctx, "m.glb")
	assert.ErrorIs(t, err, context.Canceled)
	ml.Gate.Open()
	a, err := ml.LoadModel(ctx, "m.glb")
	require.NoError(t, err)
	assert.Equal(t, "m.glb", a.(*Asset).URL)
}

func TestRendererRecords(t *testing.T) {
	rs := &Renderers{}
	r, err := rs.NewRenderer(&Surface{ID: "c"}, arview.RendererOptions{Alpha: true})
	require.NoError(t, err)
	sc := scene.NewScene("s")
	anchor := scene.NewGroup("anchor")
	require.NoError(t, sc.Add(anchor))
	require.NoError(t, anchor.Add(scene.NewModel("model", "m.glb", nil)))

	sc.Visible = false
	r.Render(sc)
	sc.Visible = true
	r.Render(sc)
	r.Dispose()
	r.Render(sc)

	frs := rs.Last().Frames()
	require.Len(t, frs, 3)
	assert.Empty(t, frs[0].Models)
	require.Len(t, frs[1].Models, 1)
	assert.Equal(t, "m.glb", frs[1].Models[0].URL)
	assert.ErrorIs(t, frs[2].Err, ErrDisposed)
}

func TestWindowResize(t *testing.T) {
	app := NewApp(image.Pt(100, 100))
	n := 0
	remove := app.Window.OnResize(func() { n++ })
	app.Window.Resize(image.Pt(200, 100))
	assert.Equal(t, 0, n, "delivered on the loop")
	app.Loop.Flush()
	assert.Equal(t, 1, n)
	remove()
	app.Window.Resize(image.Pt(300, 100))
	app.Loop.Flush()
	assert.Equal(t, 1, n)
	assert.Equal(t, image.Pt(300, 100), app.Window.Size())
}
