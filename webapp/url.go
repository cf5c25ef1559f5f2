// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package webapp is the browser side of the viewer: it reads the
// configuration embedded in the page shell, mounts the view on the
// page canvas, and follows the page lifecycle.
package webapp

import (
	"fmt"
	"net/url"
)

// DiagnosticsURL returns the websocket URL of the diagnostics endpoint
// at the given path on the server that served the page at href.
func DiagnosticsURL(href, path string) (string, error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("webapp: unsupported page scheme %q", u.Scheme)
	}
	u.Path = path
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil
	return u.String(), nil
}
