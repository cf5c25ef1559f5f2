// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, ":3000", c.Server.Addr)
	assert.Equal(t, "certs/localhost.pem", c.TLS.Cert)
	assert.Equal(t, "certs/localhost-key.pem", c.TLS.Key)
	assert.Equal(t, "data/camera_para.dat", c.Assets.CameraParameters)
	assert.Equal(t, "data/patt.hiro", c.Assets.Pattern)
	assert.Equal(t, "models/model.glb", c.Assets.Model)
	assert.Equal(t, "mono", c.Tracking.DetectionMode)
	assert.Len(t, c.Tracking.Scripts, 2)
	assert.Equal(t, Duration(2*time.Second), c.View.ResizeDelay)
	assert.Equal(t, []float32{0, 0.25, 0}, c.View.ModelPosition)
	assert.True(t, c.Diagnostics.Enabled)
	assert.NoError(t, c.Validate())
}

func TestTrackingScripts(t *testing.T) {
	c := New()
	c.Tracking.Version = "3.4.5"
	urls, err := c.TrackingScripts()
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Equal(t, "https://cdn.jsdelivr.net/gh/jeromeetienne/AR.js@3.4.5/three.js/vendor/jsartoolkit5/build/artoolkit.min.js", urls[0])
	assert.Contains(t, urls[1], "@3.4.5/three.js/build/ar.min.js")

	c.Tracking.Scripts = []string{"https://cdn/{{.Nope}}.js"}
	_, err = c.TrackingScripts()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := New()
	c.Tracking.Version = "latest"
	c.View.ModelScale = 0
	c.View.ModelPosition = []float32{1}
	c.Server.Addr = "3000"
	c.View.LightColor = "neon"
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracking.version")
	assert.Contains(t, err.Error(), "model-scale")
	assert.Contains(t, err.Error(), "model-position")
	assert.Contains(t, err.Error(), "server.addr")
	assert.Contains(t, err.Error(), "view.light-color")
}

func TestOpenTOML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "arview.toml")
	require.NoError(t, os.WriteFile(fn, []byte(`
name = "Marker Demo"

[server]
addr = ":8443"

[view]
resize-delay = "500ms"
model-scale = 0.25

[tracking]
version = "2.2.1"
`), 0644))
	c, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, "Marker Demo", c.Name)
	assert.Equal(t, ":8443", c.Server.Addr)
	assert.Equal(t, Duration(500*time.Millisecond), c.View.ResizeDelay)
	assert.Equal(t, float32(0.25), c.View.ModelScale)
	assert.Equal(t, "2.2.1", c.Tracking.Version)
	// untouched defaults survive
	assert.Equal(t, "data/patt.hiro", c.Assets.Pattern)
}

func TestOpenYAML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "arview.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(`
assets:
  model: models/duck.glb
diagnostics:
  enabled: false
`), 0644))
	c, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, "models/duck.glb", c.Assets.Model)
	assert.False(t, c.Diagnostics.Enabled)

	cl, err := c.Client()
	require.NoError(t, err)
	assert.Empty(t, cl.Diagnostics)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	fn := filepath.Join(dir, "arview.json")
	require.NoError(t, os.WriteFile(fn, []byte(`{}`), 0644))
	_, err = Open(fn)
	assert.Error(t, err)

	fn = filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(fn, []byte("[tracking]\nversion = \"x.y\"\n"), 0644))
	_, err = Open(fn)
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	c := New()
	c.Name = "Saved"
	fn := filepath.Join(t.TempDir(), "out.toml")
	require.NoError(t, c.Save(fn))
	back, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, "Saved", back.Name)
	assert.Equal(t, c.View.ResizeDelay, back.View.ResizeDelay)
}

func TestClient(t *testing.T) {
	c := New()
	cl, err := c.Client()
	require.NoError(t, err)
	assert.Equal(t, "AR Viewer", cl.Title)
	assert.Equal(t, "arview", cl.CanvasID)
	assert.Equal(t, [3]float32{0, 0.25, 0}, cl.ModelPosition)
	assert.Equal(t, int64(2000), cl.ResizeDelayMS)
	assert.Equal(t, 2*time.Second, cl.ResizeDelay())
	assert.Equal(t, DiagnosticsPath, cl.Diagnostics)
	assert.Contains(t, cl.Scripts[0], "@2.2.2/")
	assert.Equal(t, "direct-sun", cl.LightColor)
}
