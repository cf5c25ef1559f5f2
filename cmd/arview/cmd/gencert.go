// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"
	"time"

	"cogentcore.org/arview/base/logx"
	"cogentcore.org/arview/config"
	"cogentcore.org/arview/server"
)

// GenCert generates a self-signed certificate for the configured
// hosts at the configured paths. Existing files are only replaced
// if force is set.
func GenCert(c *config.Config, validFor time.Duration, force bool) error {
	if !force {
		for _, f := range []string{c.TLS.Cert, c.TLS.Key} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("gencert: %s already exists; use --force to replace it", f)
			}
		}
	}
	if err := server.GenerateCertificate(c.TLS.Cert, c.TLS.Key, c.TLS.Hosts, validFor); err != nil {
		return fmt.Errorf("gencert: %w", err)
	}
	logx.PrintfInfo("Wrote certificate %s and key %s for %v\n", c.TLS.Cert, c.TLS.Key, c.TLS.Hosts)
	logx.PrintlnWarn("The certificate is self-signed: browsers will ask you to accept it once.")
	return nil
}
