// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package offscreen

import (
	"context"
	"fmt"
	"sync"
)

// Gate holds loads back until it is opened.
type Gate chan struct{}

// NewGate returns a new closed gate.
func NewGate() Gate {
	return make(Gate)
}

// Open lets all waiting and future loads through.
func (g Gate) Open() {
	close(g)
}

// wait waits for the gate to open or the context to be done.
// A nil gate is always open.
func (g Gate) wait(ctx context.Context) error {
	if g == nil {
		return nil
	}
	select {
	case <-g:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Scripts is an [arview.ScriptLoader] that records the scripts it loads.
type Scripts struct {

	// Errors are the errors of the scripts that fail to load, by URL.
	Errors map[string]error

	// Gate, if set, holds loads back until it is opened.
	Gate Gate

	mu     sync.Mutex
	loaded []string
}

func (sl *Scripts) LoadScript(ctx context.Context, url string) error {
	if err := sl.Gate.wait(ctx); err != nil {
		return err
	}
	if err := sl.Errors[url]; err != nil {
		return fmt.Errorf("loading script %s: %w", url, err)
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.loaded = append(sl.loaded, url)
	return nil
}

// Loaded returns the URLs of the scripts loaded successfully, in order.
func (sl *Scripts) Loaded() []string {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return append([]string(nil), sl.loaded...)
}

// Asset is a loaded model.
type Asset struct {
	URL string

	mu       sync.Mutex
	disposed bool
}

func (a *Asset) Dispose() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.disposed = true
}

// Disposed returns whether the asset has been disposed.
func (a *Asset) Disposed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.disposed
}

// Models is an [arview.ModelLoader] of [Asset] values.
type Models struct {

	// Errors are the errors of the models that fail to load, by URL.
	Errors map[string]error

	// Gate, if set, holds loads back until it is opened.
	Gate Gate

	// IgnoreCancel makes gated loads wait for the gate even after their
	// context is canceled, as a fetch that can not be aborted does.
	IgnoreCancel bool

	mu     sync.Mutex
	assets []*Asset
}

func (ml *Models) LoadModel(ctx context.Context, url string) (any, error) {
	wctx := ctx
	if ml.IgnoreCancel {
		wctx = context.Background()
	}
	if err := ml.Gate.wait(wctx); err != nil {
		return nil, err
	}
	if err := ml.Errors[url]; err != nil {
		return nil, fmt.Errorf("loading model %s: %w", url, err)
	}
	ml.mu.Lock()
	defer ml.mu.Unlock()
	a := &Asset{URL: url}
	ml.assets = append(ml.assets, a)
	return a, nil
}

// Assets returns all assets loaded so far.
func (ml *Models) Assets() []*Asset {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return append([]*Asset(nil), ml.assets...)
}
