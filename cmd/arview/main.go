// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command arview serves a browser AR viewer that shows a 3D model
// on a printed marker, and provides tools for setting it up.
package main

import (
	"fmt"
	"image"
	"os"
	"time"

	"cogentcore.org/arview/base/errors"
	"cogentcore.org/arview/base/logx"
	"cogentcore.org/arview/cmd/arview/cmd"
	"cogentcore.org/arview/config"
	"github.com/spf13/cobra"
)

// DefaultConfigFile is the config file used when --config is not given, if it exists.
const DefaultConfigFile = "arview.toml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := config.New()
	var configFile string
	var verbose, veryVerbose, quiet bool

	root := &cobra.Command{
		Use:           "arview",
		Short:         "Serve a browser AR viewer anchored on a printed marker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cc *cobra.Command, args []string) error {
			logx.UserLevel = logx.LevelFromFlags(veryVerbose, verbose, quiet)
			logx.SetDefaultLogger()
			return loadConfig(c, configFile)
		},
		RunE: func(cc *cobra.Command, args []string) error {
			return report(cmd.Serve(c))
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "config file (TOML or YAML; default "+DefaultConfigFile+" if present)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "print verbose information")
	pf.BoolVar(&veryVerbose, "vv", false, "print very verbose (debug) information")
	pf.BoolVarP(&quiet, "quiet", "q", false, "only print warnings and errors")

	root.AddCommand(newServeCmd(c), newGenCertCmd(c), newCheckCmd(c), newSimulateCmd(c))
	return root
}

// loadConfig replaces the defaults in c with the given config file,
// or the default config file if there is one.
func loadConfig(c *config.Config, file string) error {
	if file == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return c.ExpandPaths()
		}
		file = DefaultConfigFile
	}
	oc, err := config.Open(file)
	if err != nil {
		return err
	}
	*c = *oc
	return nil
}

// report logs a command error so that it is shown consistently.
func report(err error) error {
	if err != nil {
		logx.PrintlnWarn("error:", err)
	}
	return err
}

func newServeCmd(c *config.Config) *cobra.Command {
	var addr, root string
	cc := &cobra.Command{
		Use:   "serve",
		Short: "Serve the viewer over HTTPS (the default command)",
		RunE: func(cc *cobra.Command, args []string) error {
			if cc.Flags().Changed("addr") {
				c.Server.Addr = addr
			}
			if cc.Flags().Changed("root") {
				c.Server.Root = root
			}
			if err := c.Validate(); err != nil {
				return report(err)
			}
			return report(cmd.Serve(c))
		},
	}
	cc.Flags().StringVar(&addr, "addr", c.Server.Addr, "network address to listen on")
	cc.Flags().StringVar(&root, "root", c.Server.Root, "web root directory")
	return cc
}

func newGenCertCmd(c *config.Config) *cobra.Command {
	var days int
	var hosts []string
	var force bool
	cc := &cobra.Command{
		Use:   "gencert",
		Short: "Generate a self-signed certificate for local HTTPS",
		RunE: func(cc *cobra.Command, args []string) error {
			if cc.Flags().Changed("host") {
				c.TLS.Hosts = append(c.TLS.Hosts, hosts...)
			}
			if days <= 0 {
				return report(fmt.Errorf("gencert: --days must be positive"))
			}
			return report(cmd.GenCert(c, time.Duration(days)*24*time.Hour, force))
		},
	}
	cc.Flags().IntVar(&days, "days", 365, "validity of the certificate in days")
	cc.Flags().StringSliceVar(&hosts, "host", nil, "additional host names or IP addresses")
	cc.Flags().BoolVarP(&force, "force", "f", false, "replace existing files")
	return cc
}

func newCheckCmd(c *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the configuration, certificate, and assets",
		RunE: func(cc *cobra.Command, args []string) error {
			return report(cmd.Check(c))
		},
	}
}

func newSimulateCmd(c *config.Config) *cobra.Command {
	so := &cmd.SimulateOptions{}
	var width, height int
	cc := &cobra.Command{
		Use:   "simulate",
		Short: "Run a view headless with a scripted marker and print statistics",
		RunE: func(cc *cobra.Command, args []string) error {
			so.Window = image.Pt(width, height)
			if so.MarkerTo < so.MarkerFrom {
				return report(errors.New("simulate: --marker-to is before --marker-from"))
			}
			res, err := cmd.Simulate(c, so)
			if res != nil {
				cmd.PrintSimulation(res)
			}
			return report(err)
		},
	}
	f := cc.Flags()
	f.IntVar(&so.Frames, "frames", 120, "number of frames to run")
	f.IntVar(&so.MarkerFrom, "marker-from", 30, "first frame with the marker in view")
	f.IntVar(&so.MarkerTo, "marker-to", 90, "frame after the last one with the marker in view")
	f.IntVar(&width, "width", 800, "window width")
	f.IntVar(&height, "height", 600, "window height")
	f.BoolVar(&so.FailModel, "fail-model", false, "make the model fail to load")
	return cc
}
