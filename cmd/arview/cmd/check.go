// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"

	"cogentcore.org/arview/base/errors"
	"cogentcore.org/arview/base/logx"
	"cogentcore.org/arview/config"
	"cogentcore.org/arview/server"
)

// Check verifies that the configuration is valid and that everything
// the server and the page need is in place.
func Check(c *config.Config) error {
	var errs []error
	if err := c.Validate(); err != nil {
		errs = append(errs, err)
	}
	assets, err := server.CheckAssets(c.Server.Root, &c.Assets)
	for _, a := range assets {
		logx.PrintfInfo("%-18s %s (%d bytes) %s\n", a.Name, a.Path, a.Size, a.Type)
	}
	if err != nil {
		errs = append(errs, err)
	}
	if len(c.TLS.ACMEHosts) == 0 {
		if _, err := tls.LoadX509KeyPair(c.TLS.Cert, c.TLS.Key); err != nil {
			errs = append(errs, fmt.Errorf("tls: %w (run arview gencert)", err))
		}
	}
	for _, f := range []string{"app.wasm", "wasm_exec.js"} {
		p := filepath.Join(c.Server.Root, f)
		if _, err := os.Stat(p); err != nil {
			logx.PrintlnWarn("missing web client file", p)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	logx.PrintlnInfo("Everything is in place.")
	return nil
}
