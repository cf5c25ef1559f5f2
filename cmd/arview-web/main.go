// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build js

// Command arview-web is the WebAssembly client of the AR viewer.
// It is built with GOOS=js GOARCH=wasm into the app.wasm file
// served next to the page shell.
package main

import (
	"cogentcore.org/arview/base/errors"
	"cogentcore.org/arview/base/logx"
	"cogentcore.org/arview/webapp"
)

func main() {
	logx.SetDefaultLogger()
	errors.Log(webapp.Run())
}
