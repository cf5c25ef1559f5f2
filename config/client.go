// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import "time"

// DiagnosticsPath is the server path of the diagnostics websocket.
const DiagnosticsPath = "/api/diagnostics/ws"

// Client is the part of the configuration the page needs. The server
// embeds it as JSON in the page shell and the web client reads it back.
type Client struct {
	Title            string     `json:"title"`
	CanvasID         string     `json:"canvasId"`
	Scripts          []string   `json:"scripts"`
	EntryPoints      []string   `json:"entryPoints"`
	DetectionMode    string     `json:"detectionMode"`
	CameraParameters string     `json:"cameraParameters"`
	Pattern          string     `json:"pattern"`
	Model            string     `json:"model"`
	ModelScale       float32    `json:"modelScale"`
	ModelPosition    [3]float32 `json:"modelPosition"`
	ResizeDelayMS    int64      `json:"resizeDelayMs"`
	AmbientLumens    float32    `json:"ambientLumens"`
	DirLumens        float32    `json:"dirLumens"`
	LightColor       string     `json:"lightColor"`

	// Diagnostics is the diagnostics websocket path, empty when disabled.
	Diagnostics string `json:"diagnostics,omitempty"`
}

// Client returns the page configuration.
func (c *Config) Client() (*Client, error) {
	scripts, err := c.TrackingScripts()
	if err != nil {
		return nil, err
	}
	cl := &Client{
		Title:            c.Name,
		CanvasID:         c.View.CanvasID,
		Scripts:          scripts,
		EntryPoints:      c.Tracking.EntryPoints,
		DetectionMode:    c.Tracking.DetectionMode,
		CameraParameters: c.Assets.CameraParameters,
		Pattern:          c.Assets.Pattern,
		Model:            c.Assets.Model,
		ModelScale:       c.View.ModelScale,
		ResizeDelayMS:    time.Duration(c.View.ResizeDelay).Milliseconds(),
		AmbientLumens:    c.View.AmbientLumens,
		DirLumens:        c.View.DirLumens,
		LightColor:       c.View.LightColor,
	}
	copy(cl.ModelPosition[:], c.View.ModelPosition)
	if c.Diagnostics.Enabled {
		cl.Diagnostics = DiagnosticsPath
	}
	return cl, nil
}

// ResizeDelay returns the resize delay as a [time.Duration].
func (cl *Client) ResizeDelay() time.Duration {
	return time.Duration(cl.ResizeDelayMS) * time.Millisecond
}
