// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/arview/base/logx"
	"cogentcore.org/arview/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateCommand(t *testing.T) {
	out := &bytes.Buffer{}
	logx.Stdout = out
	defer func() { logx.Stdout = os.Stdout }()

	root := newRootCmd()
	root.SetArgs([]string{"simulate", "--frames", "6", "--marker-from", "2", "--marker-to", "4"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "frames:         6")
	assert.Contains(t, out.String(), "visible frames: 2")

	root = newRootCmd()
	root.SetArgs([]string{"simulate", "--marker-from", "5", "--marker-to", "1"})
	assert.Error(t, root.Execute())
}

func TestLoadConfig(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("name: Custom\nserver:\n  addr: \":4443\"\n"), 0644))
	c := config.New()
	require.NoError(t, loadConfig(c, fn))
	assert.Equal(t, "Custom", c.Name)
	assert.Equal(t, ":4443", c.Server.Addr)

	assert.Error(t, loadConfig(config.New(), filepath.Join(t.TempDir(), "missing.toml")))
}
