// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build js

package webapp

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"syscall/js"

	"cogentcore.org/arview/arview"
	"cogentcore.org/arview/base/errors"
	"cogentcore.org/arview/config"
	"cogentcore.org/arview/diag"
	"cogentcore.org/arview/driver/web"
)

// ConfigElementID is the id of the script element holding the
// JSON [config.Client] in the page shell.
const ConfigElementID = "arview-config"

// App is the running web client.
type App struct {
	Client     *config.Client
	Controller *arview.Controller
	Canvas     *web.Canvas

	reporter *diag.ClientReporter
}

// ReadConfig reads the client configuration from the page.
func ReadConfig() (*config.Client, error) {
	el := js.Global().Get("document").Call("getElementById", ConfigElementID)
	if !el.Truthy() {
		return nil, fmt.Errorf("webapp: page has no #%s element", ConfigElementID)
	}
	cl := &config.Client{}
	if err := json.Unmarshal([]byte(el.Get("textContent").String()), cl); err != nil {
		return nil, fmt.Errorf("webapp: reading page configuration: %w", err)
	}
	return cl, nil
}

// New returns a new [App] for the given configuration. It must not be
// called from inside a JavaScript callback, since connecting to the
// diagnostics endpoint waits for the connection to open.
func New(cl *config.Client) (*App, error) {
	cv, err := web.CanvasByID(cl.CanvasID)
	if err != nil {
		return nil, err
	}
	a := &App{Client: cl, Canvas: cv}
	var rep diag.Reporter = diag.LogReporter{}
	if cl.Diagnostics != "" {
		href := js.Global().Get("location").Get("href").String()
		if u := errors.Log1(DiagnosticsURL(href, cl.Diagnostics)); u != "" {
			a.reporter, err = diag.Dial(u)
			if errors.Log(err) == nil {
				rep = diag.Multi(rep, a.reporter)
			}
		}
	}
	a.Controller = arview.NewController(web.NewPlatform(cl, rep), arview.OptionsFromClient(cl))
	return a, nil
}

// Mount mounts the view on the page canvas.
func (a *App) Mount() error {
	_, err := a.Controller.Mount(a.Canvas)
	return err
}

// Unmount unmounts the view from the page canvas.
func (a *App) Unmount() {
	a.Controller.Unmount(a.Canvas)
}

// AddEventListeners unmounts the view when the page is hidden and
// mounts it again when the page is restored from the back-forward cache.
func (a *App) AddEventListeners() {
	g := js.Global()
	g.Call("addEventListener", "pagehide", js.FuncOf(a.OnPageHide))
	g.Call("addEventListener", "pageshow", js.FuncOf(a.OnPageShow))
}

func (a *App) OnPageHide(this js.Value, args []js.Value) any {
	slog.Info("page hidden, unmounting view")
	a.Unmount()
	return nil
}

func (a *App) OnPageShow(this js.Value, args []js.Value) any {
	if len(args) == 0 || !args[0].Get("persisted").Truthy() {
		return nil
	}
	slog.Info("page restored, mounting view")
	errors.Log(a.Mount())
	return nil
}

// Close unmounts the view and closes the diagnostics connection.
func (a *App) Close() error {
	a.Unmount()
	if a.reporter != nil {
		return a.reporter.Close()
	}
	return nil
}

// Run runs the web client until the page goes away.
func Run() error {
	cl, err := ReadConfig()
	if err != nil {
		return err
	}
	a, err := New(cl)
	if err != nil {
		return err
	}
	a.AddEventListeners()
	if err := a.Mount(); err != nil {
		return err
	}
	select {}
}
