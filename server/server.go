// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server serves the AR viewer page over HTTPS: the page shell,
// the web client, the static assets it fetches, and the diagnostics
// endpoints that pages report failures to.
package server

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"cogentcore.org/arview/base/errors"
	"cogentcore.org/arview/config"
	"cogentcore.org/arview/diag"
	"golang.org/x/crypto/acme/autocert"
	"golang.org/x/net/http2"
	"golang.org/x/sync/errgroup"
)

// Server is the HTTPS server of the AR viewer.
type Server struct {

	// Config is the configuration of the server.
	Config *config.Config

	// Hub collects diagnostics. It is nil when diagnostics are disabled.
	Hub *diag.Hub

	// Reporter receives server diagnostics: the Hub if there is one,
	// and the log otherwise.
	Reporter diag.Reporter

	shell []byte
	certs *CertReloader
	acme  *autocert.Manager
}

// New returns a new server for the given configuration,
// with the page shell built.
func New(c *config.Config) (*Server, error) {
	s := &Server{Config: c, Reporter: diag.LogReporter{}}
	shell, err := MakeShell(c)
	if err != nil {
		return nil, err
	}
	s.shell = shell
	if c.Diagnostics.Enabled {
		s.Hub = diag.NewHub(c.Diagnostics.Capacity)
		s.Reporter = s.Hub
	}
	return s, nil
}

// Handler returns the handler of all of the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.serveShell)
	mux.HandleFunc("GET /health", serveHealth)
	mux.HandleFunc("GET /app.wasm", s.serveWasm)
	if s.Hub != nil {
		mux.HandleFunc("GET /api/diagnostics", s.Hub.ServeList)
		mux.HandleFunc("GET "+config.DiagnosticsPath, s.Hub.ServeWebSocket)
	}
	root := s.Config.Server.Root
	mux.Handle("GET /", noDirListing(root, http.FileServer(http.Dir(root))))
	return Recover(mux, s.Reporter)
}

// TLSConfig returns the TLS configuration of the server: certificates
// from ACME for the configured hosts, or else the locally issued
// certificate files.
func (s *Server) TLSConfig() (*tls.Config, error) {
	t := &s.Config.TLS
	if len(t.ACMEHosts) > 0 {
		if s.acme == nil {
			s.acme = &autocert.Manager{
				Prompt:     autocert.AcceptTOS,
				HostPolicy: autocert.HostWhitelist(t.ACMEHosts...),
				Cache:      autocert.DirCache(t.ACMECache),
			}
		}
		tc := s.acme.TLSConfig()
		tc.MinVersion = tls.VersionTLS12
		return tc, nil
	}
	if s.certs == nil {
		cr, err := NewCertReloader(t.Cert, t.Key)
		if err != nil {
			return nil, err
		}
		s.certs = cr
	}
	return &tls.Config{
		MinVersion:     tls.VersionTLS12,
		GetCertificate: s.certs.GetCertificate,
	}, nil
}

// Run listens on the configured address and serves until the
// context is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Config.Server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves HTTPS on the given listener until the context is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	tc, err := s.TLSConfig()
	if err != nil {
		ln.Close()
		return err
	}
	s.warnMissing()
	srv := &http.Server{
		Handler:           s.Handler(),
		TLSConfig:         tc,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelDebug),
	}
	if err := http2.ConfigureServer(srv, &http2.Server{}); err != nil {
		ln.Close()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("serving", "url", "https://"+displayAddr(ln.Addr()))
		err := srv.ServeTLS(ln, "", "")
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	if s.certs != nil && s.Config.TLS.Watch {
		g.Go(func() error {
			return s.certs.Watch(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.Config.Server.ShutdownTimeout))
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

// warnMissing logs the files the page needs that are not in the web root.
func (s *Server) warnMissing() {
	root := s.Config.Server.Root
	for _, f := range []string{"app.wasm", "wasm_exec.js"} {
		if _, err := os.Stat(filepath.Join(root, f)); err != nil {
			slog.Warn("web client file missing; build it with arview-web", "file", filepath.Join(root, f))
		}
	}
	if _, err := CheckAssets(root, &s.Config.Assets); err != nil {
		slog.Warn("assets", "err", err)
	}
}

// displayAddr returns the address with unspecified hosts shown as localhost.
func displayAddr(a net.Addr) string {
	host, port, err := net.SplitHostPort(a.String())
	if err != nil {
		return a.String()
	}
	if ip := net.ParseIP(host); ip == nil || ip.IsUnspecified() {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
