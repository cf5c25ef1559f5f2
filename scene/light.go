// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"image/color"
	"strings"

	"cogentcore.org/arview/math32"
)

// Light represents a light that illuminates a scene.
// These are stored on the [Scene] object and not within the tree.
type Light interface {

	// AsLightBase returns the [LightBase] for this Light,
	// which provides the core functionality of a light.
	AsLightBase() *LightBase
}

// LightBase provides the core implementation of the [Light] interface.
type LightBase struct {

	// Name is the name of the light, which matters since lights are accessed by name.
	Name string

	// On is whether the light is turned on.
	On bool

	// Lumens is the brightness/intensity/strength of the light in normalized 0-1 units.
	// It is just multiplied by the color, and is convenient for easily modulating overall brightness.
	Lumens float32

	// Color is the color of the light at full intensity.
	Color color.RGBA
}

func (lb *LightBase) AsLightBase() *LightBase {
	return lb
}

// AmbientLight provides diffuse uniform lighting; typically only one of these in a [Scene].
type AmbientLight struct {
	LightBase
}

// NewAmbientLight adds Ambient to given scene, with given name, standard color, and lumens (0-1 normalized)
func NewAmbientLight(sc *Scene, name string, lumens float32, color LightColors) *AmbientLight {
	lt := &AmbientLight{}
	lt.Name = name
	lt.On = true
	lt.Color = LightColorMap[color]
	lt.Lumens = lumens
	sc.AddLight(lt)
	return lt
}

// DirLight is directional light, which is assumed to project light toward
// the origin based on its position, with no attenuation, like the Sun.
type DirLight struct {
	LightBase

	// position of direct light -- assumed to point at the origin so this determines direction
	Pos math32.Vector3
}

// NewDirLight adds direct light to given scene, with given name, standard color, and lumens (0-1 normalized)
// By default it is located overhead and toward the default camera (0, 1, 1) -- change Pos otherwise
func NewDirLight(sc *Scene, name string, lumens float32, color LightColors) *DirLight {
	lt := &DirLight{}
	lt.Name = name
	lt.On = true
	lt.Color = LightColorMap[color]
	lt.Lumens = lumens
	lt.Pos.Set(0, 1, 1)
	sc.AddLight(lt)
	return lt
}

// LightColors are standard light colors for different light sources
type LightColors int32

const (
	DirectSun LightColors = iota
	Halogen
	Tungsten100W
	Overcast
	FluorWarm
	FluorCool
)

// LightColorMap provides a map of named light colors
var LightColorMap = map[LightColors]color.RGBA{
	DirectSun:    {255, 255, 255, 255},
	Halogen:      {255, 241, 224, 255},
	Tungsten100W: {255, 214, 170, 255},
	Overcast:     {201, 226, 255, 255},
	FluorWarm:    {255, 244, 229, 255},
	FluorCool:    {212, 235, 255, 255},
}

var lightColorNames = [...]string{"direct-sun", "halogen", "tungsten-100w", "overcast", "fluor-warm", "fluor-cool"}

func (lc LightColors) String() string {
	if lc < 0 || int(lc) >= len(lightColorNames) {
		return fmt.Sprintf("LightColors(%d)", int32(lc))
	}
	return lightColorNames[lc]
}

// ParseLightColor returns the light color with the given name,
// such as "direct-sun" or "overcast".
func ParseLightColor(name string) (LightColors, error) {
	for i, n := range lightColorNames {
		if n == name {
			return LightColors(i), nil
		}
	}
	return DirectSun, fmt.Errorf("unknown light color %q (one of %s)", name, strings.Join(lightColorNames[:], ", "))
}
