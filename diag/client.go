// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"encoding/json"
	"log/slog"
	"sync/atomic"

	"cogentcore.org/arview/base/errors"
	"cogentcore.org/arview/base/websocket"
)

// ClientReporter is a [Reporter] that sends diagnostics to a [Hub]
// over a websocket. It is used by the page to surface failures that
// would otherwise only appear in the browser console.
type ClientReporter struct {
	client *websocket.Client

	// closed is set once the connection is closed by either side.
	closed atomic.Bool
}

// Dial connects to the [Hub.ServeWebSocket] endpoint at the given URL.
func Dial(url string) (*ClientReporter, error) {
	c, err := websocket.Connect(url)
	if err != nil {
		return nil, err
	}
	cr := &ClientReporter{client: c}
	// the hub does not send anything; reading detects the close
	c.OnMessage(func(typ websocket.MessageTypes, msg []byte) {
		slog.Debug("unexpected message from diagnostics hub", "len", len(msg))
	})
	c.OnClose(func() {
		cr.closed.Store(true)
		slog.Debug("diagnostics connection closed", "url", url)
	})
	return cr, nil
}

// Closed returns whether the connection to the hub is closed.
// Diagnostics reported after that are dropped.
func (c *ClientReporter) Closed() bool {
	return c.closed.Load()
}

// Report implements [Reporter]. Send errors are logged, not returned.
func (c *ClientReporter) Report(d Diagnostic) {
	if c.closed.Load() {
		return
	}
	b, err := json.Marshal(d)
	if errors.Log(err) != nil {
		return
	}
	errors.Log(c.client.Send(websocket.TextMessage, b))
}

// Close closes the connection to the hub.
func (c *ClientReporter) Close() error {
	return c.client.Close()
}
