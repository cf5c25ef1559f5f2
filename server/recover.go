// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"cogentcore.org/arview/diag"
)

// Recover returns a handler that calls next and turns any panic in
// it into a generic 500 response, reporting it to rep.
func Recover(next http.Handler, rep diag.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			slog.Debug("handler panic", "path", r.URL.Path, "stack", string(debug.Stack()))
			rep.Report(diag.New(diag.Server, "", r.Method+" "+r.URL.Path, fmt.Errorf("panic: %v", v)))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}
