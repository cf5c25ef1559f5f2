// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arview

import (
	"context"
	"errors"
	"testing"

	"cogentcore.org/arview/config"
	"cogentcore.org/arview/math32"
	"cogentcore.org/arview/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptLog struct {
	loaded []string
	fail   string
}

func (sl *scriptLog) LoadScript(ctx context.Context, url string) error {
	if url == sl.fail {
		return errors.New("boom")
	}
	sl.loaded = append(sl.loaded, url)
	return nil
}

func TestRunSteps(t *testing.T) {
	sl := &scriptLog{}
	err := RunSteps(context.Background(), ScriptSteps(sl, "a.js", "b.js", "c.js")...)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.js", "b.js", "c.js"}, sl.loaded)

	sl = &scriptLog{fail: "b.js"}
	err = RunSteps(context.Background(), ScriptSteps(sl, "a.js", "b.js", "c.js")...)
	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "b.js", se.Step)
	assert.Equal(t, []string{"a.js"}, sl.loaded)
	assert.Contains(t, err.Error(), "b.js")
}

func TestRunStepsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ran := 0
	steps := []Step{
		{Name: "first", Run: func(ctx context.Context) error { ran++; cancel(); return nil }},
		{Name: "second", Run: func(ctx context.Context) error { ran++; return nil }},
	}
	err := RunSteps(ctx, steps...)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, ran)
}

func TestOptionsFromClient(t *testing.T) {
	cfg := config.New()
	cfg.View.ModelScale = 0.75
	cfg.View.LightColor = "fluor-warm"
	cl, err := cfg.Client()
	require.NoError(t, err)
	o := OptionsFromClient(cl)
	assert.Equal(t, cl.Scripts, o.Scripts)
	assert.Equal(t, "data/camera_para.dat", o.CameraParametersURL)
	assert.Equal(t, "data/patt.hiro", o.PatternURL)
	assert.Equal(t, "models/model.glb", o.ModelURL)
	assert.Equal(t, "mono", o.DetectionMode)
	assert.Equal(t, float32(0.75), o.ModelScale)
	assert.Equal(t, math32.Vec3(0, 0.25, 0), o.ModelPosition)
	assert.Equal(t, cl.ResizeDelay(), o.ResizeDelay)
	assert.Equal(t, scene.FluorWarm, o.LightColor)

	cl.LightColor = "neon"
	assert.Equal(t, scene.DirectSun, OptionsFromClient(cl).LightColor)
}

func TestOptionsClone(t *testing.T) {
	o := DefaultOptions()
	c := o.Clone()
	assert.Equal(t, o, c)
	c.Scripts[0] = "other.js"
	assert.NotEqual(t, "other.js", o.Scripts[0])
}

func TestRegistry(t *testing.T) {
	var rg registry
	a, b := &Session{id: "a"}, &Session{id: "b"}
	s, ok := rg.claim("canvas", func() *Session { return a })
	assert.True(t, ok)
	assert.Same(t, a, s)
	s, ok = rg.claim("canvas", func() *Session { return b })
	assert.False(t, ok)
	assert.Same(t, a, s)
	assert.False(t, rg.release("canvas", b), "only the owner releases")
	assert.Equal(t, 1, rg.len())
	assert.True(t, rg.release("canvas", a))
	assert.Nil(t, rg.get("canvas"))
}

func TestState(t *testing.T) {
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "unknown", State(9).String())
}
