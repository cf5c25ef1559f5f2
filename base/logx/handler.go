// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// Handler is a [slog.Handler] that writes one colorized line per record,
// honoring [UserLevel] at the time each record is handled.
type Handler struct {
	mu     *sync.Mutex
	out    io.Writer
	output *termenv.Output
	attrs  []slog.Attr
	group  string
}

// NewHandler returns a new [Handler] writing to the given writer.
// Colors are only used when the writer is a terminal that supports them.
func NewHandler(w io.Writer) *Handler {
	return &Handler{
		mu:     &sync.Mutex{},
		out:    w,
		output: termenv.NewOutput(w),
	}
}

// SetDefaultLogger sets the default [slog] logger to one
// that writes to [os.Stderr] through a [Handler].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= UserLevel
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	b := &strings.Builder{}
	if !r.Time.IsZero() {
		b.WriteString(r.Time.Format(time.TimeOnly))
		b.WriteByte(' ')
	}
	b.WriteString(h.colorize(r.Level, levelLabel(r.Level)))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		h.writeAttr(b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	if h.group != "" {
		for i := len(h.attrs); i < len(nh.attrs); i++ {
			nh.attrs[i].Key = h.group + "." + nh.attrs[i].Key
		}
	}
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	if nh.group != "" {
		nh.group += "." + name
	} else {
		nh.group = name
	}
	return &nh
}

func (h *Handler) writeAttr(b *strings.Builder, group string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	fmt.Fprintf(b, " %s=%v", h.output.String(key).Faint(), a.Value.Resolve())
}

func (h *Handler) colorize(level slog.Level, s string) string {
	st := h.output.String(s)
	switch {
	case level >= slog.LevelError:
		st = st.Foreground(h.output.Color("1")).Bold()
	case level >= slog.LevelWarn:
		st = st.Foreground(h.output.Color("3"))
	case level >= slog.LevelInfo:
		st = st.Foreground(h.output.Color("4"))
	default:
		st = st.Faint()
	}
	return st.String()
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
