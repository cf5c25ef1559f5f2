// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build js

package web

import (
	"context"
	"fmt"
	"syscall/js"
)

// loadedAttr marks script elements that have finished loading,
// so that a remounted view does not run the same script twice.
const loadedAttr = "data-arview-loaded"

// Scripts loads scripts by adding script elements to the document head.
type Scripts struct{}

func (Scripts) LoadScript(ctx context.Context, url string) error {
	doc := js.Global().Get("document")
	if doc.Call("querySelector", fmt.Sprintf("script[src=%q][%s]", url, loadedAttr)).Truthy() {
		return nil
	}
	el := doc.Call("createElement", "script")
	el.Set("src", url)
	el.Set("async", false)
	res := make(chan error, 1)
	fns := oneOf(func(args []js.Value) {
		el.Call("setAttribute", loadedAttr, "")
		res <- nil
	}, func(args []js.Value) {
		res <- fmt.Errorf("loading script %s failed", url)
	})
	el.Set("onload", fns[0])
	el.Set("onerror", fns[1])
	doc.Get("head").Call("appendChild", el)
	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
