// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"testing"

	"cogentcore.org/arview/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneGraph(t *testing.T) {
	sc := NewScene("ar")
	assert.True(t, sc.Visible)
	assert.True(t, sc.Camera.Visible)
	assert.Zero(t, sc.Background.A)

	anchor := NewGroup("anchor")
	require.NoError(t, sc.Add(anchor))
	md := NewModel("model", "models/model.glb", "asset")
	md.SetScale(0.5, 0.5, 0.5).SetPos(0, 0.25, 0)
	require.NoError(t, anchor.Add(md))

	assert.Equal(t, anchor, sc.FindNode("anchor"))
	assert.Equal(t, md, sc.FindNode("model"))
	assert.Nil(t, sc.FindNode("missing"))
	assert.Equal(t, []*Model{md}, sc.Models())
	assert.Equal(t, []*Model{md}, anchor.Models())
	assert.Equal(t, Node(anchor), md.Parent())

	assert.Error(t, sc.Add(md), "already parented")
	assert.Error(t, md.Parent().(*Group).Add(sc.Root), "cycle")

	assert.True(t, anchor.Remove(md))
	assert.False(t, anchor.Remove(md))
	assert.Nil(t, md.Parent())
}

func TestWorldMatrix(t *testing.T) {
	sc := NewScene("ar")
	anchor := NewGroup("anchor")
	require.NoError(t, sc.Add(anchor))
	md := NewModel("model", "m.glb", nil)
	md.SetScale(0.5, 0.5, 0.5).SetPos(0, 0.25, 0)
	require.NoError(t, anchor.Add(md))

	var pose math32.Matrix4
	pose.SetTranslation(math32.Vec3(1, 2, -5))
	anchor.SetMatrix(pose)
	sc.UpdateMatrices()
	assert.False(t, anchor.Pose.Auto)
	assert.Equal(t, pose, anchor.Pose.Matrix)

	wm := WorldMatrix(md)
	origin := math32.Vec3(0, 0, 0).MulMatrix4AsPoint(&wm)
	assert.True(t, origin.IsEqualTol(math32.Vec3(1, 2.25, -5), 1e-5), origin.String())
}

func TestVisibility(t *testing.T) {
	sc := NewScene("ar")
	anchor := NewGroup("anchor")
	md := NewModel("model", "m.glb", nil)
	require.NoError(t, sc.Add(anchor))
	require.NoError(t, anchor.Add(md))
	assert.True(t, IsVisibleInTree(md))
	anchor.Visible = false
	assert.False(t, IsVisibleInTree(md))
}

func TestLights(t *testing.T) {
	sc := NewScene("ar")
	NewAmbientLight(sc, "ambient", 0.6, DirectSun)
	dl := NewDirLight(sc, "dir", 0.8, DirectSun)
	dl.Pos.Set(0, 1, 0)
	assert.Len(t, sc.Lights, 2)
	assert.Equal(t, dl, sc.Light("dir"))

	NewAmbientLight(sc, "ambient", 0.3, Overcast)
	assert.Len(t, sc.Lights, 2)
	assert.Equal(t, float32(0.3), sc.Light("ambient").AsLightBase().Lumens)
	assert.Nil(t, sc.Light("spot"))
	assert.Equal(t, LightColorMap[Overcast], sc.Light("ambient").AsLightBase().Color)
}

func TestParseLightColor(t *testing.T) {
	for lc := DirectSun; lc <= FluorCool; lc++ {
		got, err := ParseLightColor(lc.String())
		assert.NoError(t, err)
		assert.Equal(t, lc, got)
		assert.Contains(t, LightColorMap, lc)
	}
	_, err := ParseLightColor("neon")
	assert.ErrorContains(t, err, "direct-sun")
	assert.Equal(t, "LightColors(9)", LightColors(9).String())
}
