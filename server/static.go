// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// serveWasm serves app.wasm from the web root with the content type
// that streaming instantiation requires. With gzip enabled, app.wasm.gz
// is served instead to clients that accept it.
func (s *Server) serveWasm(w http.ResponseWriter, r *http.Request) {
	root := s.Config.Server.Root
	name := filepath.Join(root, "app.wasm")
	w.Header().Set("Content-Type", "application/wasm")
	w.Header().Add("Vary", "Accept-Encoding")
	if s.Config.Server.Gzip && strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		if _, err := os.Stat(name + ".gz"); err == nil {
			w.Header().Set("Content-Encoding", "gzip")
			name += ".gz"
		}
	}
	f, err := os.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, "app.wasm", st.ModTime(), f)
}

// serveShell serves the page shell.
func (s *Server) serveShell(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(s.shell)
}

// serveHealth reports that the server is up.
func serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

// noDirListing wraps a file server so that directories are not listed.
func noDirListing(root string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		if st, err := os.Stat(filepath.Join(root, filepath.FromSlash(r.URL.Path))); err == nil && st.IsDir() {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
