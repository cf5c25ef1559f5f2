// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"bytes"
	_ "embed"
	"html/template"

	"cogentcore.org/arview/config"
)

//go:embed shell.html
var shellHTML string

// ShellTmpl is the template used in [MakeShell] to build the page shell.
var ShellTmpl = template.Must(template.New("shell.html").Parse(shellHTML))

// ShellData is the data passed to [ShellTmpl].
type ShellData struct {
	Title           string
	CanvasID        string
	RendererScripts []string

	// Client is embedded as JSON for the web client.
	Client *config.Client

	Wasm     string
	WasmExec string
}

// MakeShell executes [ShellTmpl] based on the given configuration.
// The page only loads the rendering library; the tracking library is
// loaded by the web client when it mounts the view.
func MakeShell(c *config.Config) ([]byte, error) {
	cl, err := c.Client()
	if err != nil {
		return nil, err
	}
	d := ShellData{
		Title:           c.Name,
		CanvasID:        c.View.CanvasID,
		RendererScripts: c.View.RendererScripts,
		Client:          cl,
		Wasm:            "app.wasm",
		WasmExec:        "wasm_exec.js",
	}
	b := &bytes.Buffer{}
	if err := ShellTmpl.Execute(b, d); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
