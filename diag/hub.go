// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"cogentcore.org/arview/base/errors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	strip "github.com/grokify/html-strip-tags-go"
)

// Hub collects diagnostics on the server. It keeps the most recent
// ones in memory, forwards every one to a [Reporter] (the log by default),
// and accepts diagnostics from pages over a websocket.
type Hub struct {

	// Next receives every diagnostic the hub collects.
	Next Reporter

	mu       sync.Mutex
	capacity int
	recent   []Diagnostic
	upgrader websocket.Upgrader
}

// NewHub returns a new [Hub] that keeps up to capacity recent diagnostics.
func NewHub(capacity int) *Hub {
	if capacity <= 0 {
		capacity = 1
	}
	return &Hub{Next: LogReporter{}, capacity: capacity}
}

// Report implements [Reporter]. It fills in a missing ID or Time.
func (h *Hub) Report(d Diagnostic) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Time.IsZero() {
		d.Time = time.Now()
	}
	h.mu.Lock()
	h.recent = append(h.recent, d)
	if over := len(h.recent) - h.capacity; over > 0 {
		h.recent = slices.Delete(h.recent, 0, over)
	}
	next := h.Next
	h.mu.Unlock()
	if next != nil {
		next.Report(d)
	}
}

// Recent returns a copy of the recent diagnostics, oldest first.
func (h *Hub) Recent() []Diagnostic {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.recent)
}

// ServeList writes the recent diagnostics as a JSON array.
func (h *Hub) ServeList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	ds := h.Recent()
	if ds == nil {
		ds = []Diagnostic{}
	}
	w.Header().Set("Content-Type", "application/json")
	errors.Log(json.NewEncoder(w).Encode(ds))
}

// maxTextLen is the maximum length of the text fields of a page diagnostic.
const maxTextLen = 1024

// MaxMessageSize is the maximum size in bytes of a diagnostic message
// received from a page. Larger messages close the connection.
const MaxMessageSize = 8 << 10

// Sanitize returns the diagnostic with markup removed from its text fields
// and overlong text truncated, as pages can send anything.
func Sanitize(d Diagnostic) Diagnostic {
	clean := func(s string) string {
		s = strings.TrimSpace(strip.StripTags(s))
		if len(s) > maxTextLen {
			s = strings.ToValidUTF8(s[:maxTextLen], "")
		}
		return s
	}
	d.Message = clean(d.Message)
	d.Resource = clean(d.Resource)
	d.Session = clean(d.Session)
	return d
}

// ServeWebSocket upgrades the request to a websocket and reports every
// JSON [Diagnostic] received on it until the page closes the connection.
// The ID and Time of received diagnostics are assigned by the hub.
func (h *Hub) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if errors.LogAttrs(err, "remote", r.RemoteAddr) != nil {
		return
	}
	defer conn.Close()
	conn.SetReadLimit(MaxMessageSize)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("diagnostics connection closed", "remote", r.RemoteAddr, "err", err)
			}
			return
		}
		var d Diagnostic
		if err := json.Unmarshal(msg, &d); err != nil {
			slog.Warn("invalid diagnostic", "remote", r.RemoteAddr, "err", err)
			continue
		}
		d = Sanitize(d)
		d.ID = uuid.NewString()
		d.Time = time.Now()
		h.Report(d)
	}
}
