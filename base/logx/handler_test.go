// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withLevel(t *testing.T, level slog.Level) {
	prev := UserLevel
	UserLevel = level
	t.Cleanup(func() { UserLevel = prev })
}

func TestHandler(t *testing.T) {
	withLevel(t, slog.LevelInfo)
	b := &bytes.Buffer{}
	l := slog.New(NewHandler(b))

	l.Debug("this is debug")
	l.Info("camera ready", "width", 640)
	l.With("session", "s1").WithGroup("model").Warn("load failed", "url", "models/model.glb")

	out := b.String()
	assert.NotContains(t, out, "this is debug")
	assert.Contains(t, out, "INFO camera ready")
	assert.Contains(t, out, "width=640")
	assert.Contains(t, out, "WARN load failed")
	assert.Contains(t, out, " session=s1")
	assert.NotContains(t, out, "model.session")
	assert.Contains(t, out, "model.url=models/model.glb")
}

func TestPrintln(t *testing.T) {
	withLevel(t, slog.LevelWarn)
	b := &bytes.Buffer{}
	prev := Stdout
	Stdout = b
	defer func() { Stdout = prev }()

	PrintlnInfo("hidden")
	PrintlnWarn("Serving at", "https://localhost:3000")
	assert.Equal(t, "Serving at https://localhost:3000\n", b.String())
}
