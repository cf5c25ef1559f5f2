// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arview

import (
	"time"

	"cogentcore.org/arview/base/errors"
	"cogentcore.org/arview/config"
	"cogentcore.org/arview/math32"
	"cogentcore.org/arview/scene"
	"github.com/jinzhu/copier"
)

// Options are the parameters of a view. Each [Session]
// works on its own copy of the [Controller] options.
type Options struct {

	// Scripts are the tracking library script URLs, loaded in order.
	Scripts []string

	// CameraParametersURL is the relative URL of the camera calibration data.
	CameraParametersURL string

	// PatternURL is the relative URL of the marker pattern definition.
	PatternURL string

	// ModelURL is the relative URL of the model file.
	ModelURL string

	// DetectionMode is the marker detection mode.
	DetectionMode string

	// ModelScale is the uniform scale of the model.
	ModelScale float32

	// ModelPosition is the position of the model relative to the marker.
	ModelPosition math32.Vector3

	// ResizeDelay is how long after the source is ready
	// to synchronize sizes again.
	ResizeDelay time.Duration

	// AmbientLumens is the ambient light intensity.
	AmbientLumens float32

	// DirLumens is the directional light intensity.
	DirLumens float32

	// LightColor is the color of the lights.
	LightColor scene.LightColors
}

// DefaultOptions returns the options of the default configuration.
func DefaultOptions() *Options {
	cl, err := config.New().Client()
	if err != nil {
		panic(err)
	}
	return OptionsFromClient(cl)
}

// OptionsFromClient returns the options for the given page configuration.
// An unknown light color is logged and replaced by [scene.DirectSun].
func OptionsFromClient(cl *config.Client) *Options {
	lc := scene.DirectSun
	if cl.LightColor != "" {
		lc = errors.Log1(scene.ParseLightColor(cl.LightColor))
	}
	return &Options{
		Scripts:             append([]string(nil), cl.Scripts...),
		CameraParametersURL: cl.CameraParameters,
		PatternURL:          cl.Pattern,
		ModelURL:            cl.Model,
		DetectionMode:       cl.DetectionMode,
		ModelScale:          cl.ModelScale,
		ModelPosition:       math32.Vec3(cl.ModelPosition[0], cl.ModelPosition[1], cl.ModelPosition[2]),
		ResizeDelay:         cl.ResizeDelay(),
		AmbientLumens:       cl.AmbientLumens,
		DirLumens:           cl.DirLumens,
		LightColor:          lc,
	}
}

// Clone returns a deep copy of the options.
func (o *Options) Clone() *Options {
	c := &Options{}
	if err := copier.CopyWithOption(c, o, copier.Option{DeepCopy: true}); err != nil {
		panic(err)
	}
	return c
}
