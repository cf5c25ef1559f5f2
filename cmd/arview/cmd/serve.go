// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the commands of the arview tool.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cogentcore.org/arview/config"
	"cogentcore.org/arview/server"
)

// Serve serves the AR viewer over HTTPS until interrupted.
func Serve(c *config.Config) error {
	s, err := server.New(c)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}
