// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration structs
// for the arview server and the page it serves.
package config

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"cogentcore.org/arview/base/errors"
	"cogentcore.org/arview/base/reflectx"
	"cogentcore.org/arview/scene"
	"github.com/Masterminds/semver/v3"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the main config struct that contains all of the
// configuration options for the server and the AR view.
type Config struct {

	// Name is the title of the page.
	Name string `default:"AR Viewer" toml:"name" yaml:"name"`

	// Server contains the options for the HTTPS server.
	Server Server `toml:"server" yaml:"server"`

	// TLS contains the locally-issued certificate options.
	TLS TLS `toml:"tls" yaml:"tls"`

	// Assets contains the static resource paths, relative to the web root.
	Assets Assets `toml:"assets" yaml:"assets"`

	// Tracking contains the marker tracking library options.
	Tracking Tracking `toml:"tracking" yaml:"tracking"`

	// View contains the AR view options.
	View View `toml:"view" yaml:"view"`

	// Diagnostics contains the options for collecting page diagnostics.
	Diagnostics Diagnostics `toml:"diagnostics" yaml:"diagnostics"`
}

// Server contains the options for the HTTPS server.
type Server struct {

	// Addr is the network address to listen on, on all interfaces by default.
	Addr string `default:":3000" toml:"addr" yaml:"addr"`

	// Root is the web root directory holding app.wasm, wasm_exec.js and the assets.
	Root string `default:"web" toml:"root" yaml:"root"`

	// Gzip is whether app.wasm in the web root is gzip compressed.
	Gzip bool `toml:"gzip" yaml:"gzip"`

	// ShutdownTimeout is how long to wait for open requests on shutdown.
	ShutdownTimeout Duration `default:"5s" toml:"shutdown-timeout" yaml:"shutdown-timeout"`
}

// TLS contains the locally-issued certificate options.
type TLS struct {

	// Cert is the path of the PEM encoded certificate.
	Cert string `default:"certs/localhost.pem" toml:"cert" yaml:"cert"`

	// Key is the path of the PEM encoded private key.
	Key string `default:"certs/localhost-key.pem" toml:"key" yaml:"key"`

	// Hosts are the host names and IP addresses that gencert issues the certificate for.
	Hosts []string `default:"localhost,127.0.0.1,::1" toml:"hosts" yaml:"hosts"`

	// Watch is whether to reload the certificate when its files change.
	Watch bool `default:"true" toml:"watch" yaml:"watch"`

	// ACMEHosts, if set, are public host names to obtain certificates
	// for with ACME (Let's Encrypt) instead of using Cert and Key.
	ACMEHosts []string `toml:"acme-hosts" yaml:"acme-hosts"`

	// ACMECache is the directory where ACME certificates are cached.
	ACMECache string `default:"certs/acme" toml:"acme-cache" yaml:"acme-cache"`
}

// Assets contains the static resource paths, relative to the web root.
// They are fetched by the page with relative URLs.
type Assets struct {

	// CameraParameters is the camera calibration data file.
	CameraParameters string `default:"data/camera_para.dat" toml:"camera-parameters" yaml:"camera-parameters"`

	// Pattern is the marker pattern definition file.
	Pattern string `default:"data/patt.hiro" toml:"pattern" yaml:"pattern"`

	// Model is the 3D model file (glTF).
	Model string `default:"models/model.glb" toml:"model" yaml:"model"`
}

// Tracking contains the marker tracking library options.
type Tracking struct {

	// Version is the tracking library version substituted into Scripts.
	Version string `default:"2.2.2" toml:"version" yaml:"version"`

	// Scripts are the URL templates of the tracking library scripts, loaded
	// in order. {{.Version}} is replaced by Version.
	Scripts []string `default:"https://cdn.jsdelivr.net/gh/jeromeetienne/AR.js@{{.Version}}/three.js/vendor/jsartoolkit5/build/artoolkit.min.js,https://cdn.jsdelivr.net/gh/jeromeetienne/AR.js@{{.Version}}/three.js/build/ar.min.js" toml:"scripts" yaml:"scripts"`

	// EntryPoints are the globals that must exist once the scripts have loaded.
	EntryPoints []string `default:"THREEx.ArToolkitSource,THREEx.ArToolkitContext,THREEx.ArMarkerControls" toml:"entry-points" yaml:"entry-points"`

	// DetectionMode is the tracking context detection mode.
	DetectionMode string `default:"mono" toml:"detection-mode" yaml:"detection-mode"`
}

// View contains the AR view options.
type View struct {

	// CanvasID is the id of the canvas element the view is mounted on.
	CanvasID string `default:"arview" toml:"canvas-id" yaml:"canvas-id"`

	// RendererScripts are the rendering library scripts included by the page.
	RendererScripts []string `default:"https://cdn.jsdelivr.net/npm/three@0.124.0/build/three.min.js,https://cdn.jsdelivr.net/npm/three@0.124.0/examples/js/loaders/GLTFLoader.js" toml:"renderer-scripts" yaml:"renderer-scripts"`

	// ModelScale is the uniform scale applied to the loaded model.
	ModelScale float32 `default:"0.5" toml:"model-scale" yaml:"model-scale"`

	// ModelPosition is the position of the model relative to the marker.
	ModelPosition []float32 `default:"0,0.25,0" toml:"model-position" yaml:"model-position"`

	// ResizeDelay is how long to wait after the camera is ready
	// before synchronizing sizes, to let the stream stabilize.
	ResizeDelay Duration `default:"2s" toml:"resize-delay" yaml:"resize-delay"`

	// AmbientLumens is the ambient light intensity (0-1).
	AmbientLumens float32 `default:"0.6" toml:"ambient-lumens" yaml:"ambient-lumens"`

	// DirLumens is the directional light intensity (0-1).
	DirLumens float32 `default:"0.8" toml:"dir-lumens" yaml:"dir-lumens"`

	// LightColor is the color of both lights: direct-sun, halogen,
	// tungsten-100w, overcast, fluor-warm or fluor-cool.
	LightColor string `default:"direct-sun" toml:"light-color" yaml:"light-color"`
}

// Diagnostics contains the options for collecting page diagnostics.
type Diagnostics struct {

	// Enabled is whether pages report failures back to the server.
	Enabled bool `default:"true" toml:"enabled" yaml:"enabled"`

	// Capacity is how many recent diagnostics the server keeps.
	Capacity int `default:"100" toml:"capacity" yaml:"capacity"`
}

// Duration is a [time.Duration] that is read from and written
// as a string such as "2s" in config files.
type Duration time.Duration

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// New returns a new [Config] with all default values set.
func New() *Config {
	c := &Config{}
	SetFromDefaults(c)
	return c
}

// SetFromDefaults sets the values of the given config object
// from `default:` struct field tag values. Errors are automatically
// logged in addition to being returned.
func SetFromDefaults(cfg any) error {
	return errors.Log(reflectx.SetFromDefaultTags(cfg))
}

// Open returns the defaults overridden by the given TOML or YAML file
// (chosen by extension), with paths expanded, and validated.
func Open(filename string) (*Config, error) {
	c := New()
	fn, err := homedir.Expand(filename)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	switch ext := strings.ToLower(filepath.Ext(fn)); ext {
	case ".toml":
		err = toml.Unmarshal(b, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, c)
	default:
		return nil, fmt.Errorf("config.Open: unsupported config file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config.Open: %s: %w", filename, err)
	}
	if err := c.ExpandPaths(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the config to the given TOML or YAML file (chosen by extension).
func (c *Config) Save(filename string) error {
	var b []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		b, err = toml.Marshal(c)
	case ".yaml", ".yml":
		b, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("config.Save: unsupported config file extension %q", ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// ExpandPaths expands a leading ~ in the file system paths.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{&c.Server.Root, &c.TLS.Cert, &c.TLS.Key, &c.TLS.ACMECache} {
		e, err := homedir.Expand(*p)
		if err != nil {
			return err
		}
		*p = e
	}
	return nil
}

// Validate returns an error describing every invalid option, or nil.
func (c *Config) Validate() error {
	var errs []error
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		errs = append(errs, fmt.Errorf("server.addr: %w", err))
	}
	if len(c.TLS.ACMEHosts) == 0 && (c.TLS.Cert == "" || c.TLS.Key == "") {
		errs = append(errs, errors.New("tls: cert and key paths are required"))
	}
	if _, err := semver.NewVersion(c.Tracking.Version); err != nil {
		errs = append(errs, fmt.Errorf("tracking.version %q: %w", c.Tracking.Version, err))
	}
	if len(c.Tracking.Scripts) == 0 {
		errs = append(errs, errors.New("tracking.scripts: at least one script is required"))
	}
	if _, err := c.TrackingScripts(); err != nil {
		errs = append(errs, err)
	}
	if c.Assets.CameraParameters == "" || c.Assets.Pattern == "" || c.Assets.Model == "" {
		errs = append(errs, errors.New("assets: camera-parameters, pattern and model are required"))
	}
	if c.View.ModelScale <= 0 {
		errs = append(errs, fmt.Errorf("view.model-scale must be positive, not %g", c.View.ModelScale))
	}
	if n := len(c.View.ModelPosition); n != 0 && n != 3 {
		errs = append(errs, fmt.Errorf("view.model-position needs 3 values, not %d", n))
	}
	if c.View.ResizeDelay < 0 {
		errs = append(errs, errors.New("view.resize-delay must not be negative"))
	}
	if _, err := scene.ParseLightColor(c.View.LightColor); err != nil {
		errs = append(errs, fmt.Errorf("view.light-color: %w", err))
	}
	return errors.Join(errs...)
}

// TrackingScripts returns the tracking library script URLs with
// the version substituted.
func (c *Config) TrackingScripts() ([]string, error) {
	urls := make([]string, len(c.Tracking.Scripts))
	for i, s := range c.Tracking.Scripts {
		t, err := template.New("script").Option("missingkey=error").Parse(s)
		if err != nil {
			return nil, fmt.Errorf("tracking.scripts[%d]: %w", i, err)
		}
		b := &bytes.Buffer{}
		if err := t.Execute(b, c.Tracking); err != nil {
			return nil, fmt.Errorf("tracking.scripts[%d]: %w", i, err)
		}
		urls[i] = b.String()
	}
	return urls, nil
}
