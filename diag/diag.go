// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag defines the diagnostics that view sessions emit when a
// feature fails softly (a script, the camera, or the model), and the
// reporters that deliver them: the log, a websocket client in the page,
// and a [Hub] on the server that collects them.
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Kind is the category of a [Diagnostic].
type Kind int32

const (
	// ScriptLoad is a tracking library script that could not be fetched or executed.
	ScriptLoad Kind = iota

	// EntryPoint is a required library global that is missing after its scripts loaded.
	EntryPoint

	// ModelLoad is a model file that could not be fetched or parsed.
	ModelLoad

	// Camera is a camera stream that could not be acquired.
	Camera

	// Server is an error while handling a request.
	Server

	// Setup is a renderer, tracking context or marker binding that
	// could not be constructed.
	Setup
)

var kindNames = [...]string{"script-load", "entry-point", "model-load", "camera", "server", "setup"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
	return kindNames[k]
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kind) UnmarshalText(text []byte) error {
	for i, n := range kindNames {
		if n == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("diag: unknown kind %q", text)
}

// Fatal returns whether diagnostics of this kind abort AR initialization.
// Model and camera failures degrade the view but do not abort it.
func (k Kind) Fatal() bool {
	return k == ScriptLoad || k == EntryPoint || k == Setup
}

// Diagnostic is one reported failure.
type Diagnostic struct {

	// ID uniquely identifies the diagnostic.
	ID string `json:"id"`

	// Kind is the failure category.
	Kind Kind `json:"kind"`

	// Session is the ID of the view session that failed, if any.
	Session string `json:"session,omitempty"`

	// Resource is the URL or path of the resource involved, if any.
	Resource string `json:"resource,omitempty"`

	// Message is the error text.
	Message string `json:"message"`

	// Time is when the failure happened.
	Time time.Time `json:"time"`
}

// New returns a new [Diagnostic] of the given kind for the given error.
func New(kind Kind, session, resource string, err error) Diagnostic {
	d := Diagnostic{
		ID:       uuid.NewString(),
		Kind:     kind,
		Session:  session,
		Resource: resource,
		Time:     time.Now(),
	}
	if err != nil {
		d.Message = err.Error()
	}
	return d
}

// LogValue implements [slog.LogValuer].
func (d Diagnostic) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("kind", d.Kind.String())}
	if d.Session != "" {
		attrs = append(attrs, slog.String("session", d.Session))
	}
	if d.Resource != "" {
		attrs = append(attrs, slog.String("resource", d.Resource))
	}
	attrs = append(attrs, slog.String("message", d.Message))
	return slog.GroupValue(attrs...)
}

// Reporter delivers diagnostics somewhere. Report must not block.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc is a function that implements [Reporter].
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) {
	f(d)
}

// LogReporter is a [Reporter] that logs every diagnostic with [slog],
// at error level for kinds that abort initialization and at warning
// level for the others.
type LogReporter struct{}

func (LogReporter) Report(d Diagnostic) {
	level := slog.LevelWarn
	if d.Kind.Fatal() {
		level = slog.LevelError
	}
	slog.Log(context.Background(), level, "view diagnostic", "diagnostic", d)
}

// Multi returns a [Reporter] that reports to all of the given non-nil reporters.
func Multi(rs ...Reporter) Reporter {
	var all []Reporter
	for _, r := range rs {
		if r != nil {
			all = append(all, r)
		}
	}
	return ReporterFunc(func(d Diagnostic) {
		for _, r := range all {
			r.Report(d)
		}
	})
}
