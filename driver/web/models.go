// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build js

package web

import (
	"context"
	"syscall/js"

	"cogentcore.org/arview/base/errors"
)

// Models loads glTF models with THREE.GLTFLoader.
type Models struct{}

// Model is a loaded glTF scene.
type Model struct {

	// Object is the root THREE.Object3D of the glTF scene.
	Object js.Value
}

// Dispose frees the geometries and materials of the model.
func (m *Model) Dispose() {
	var visit js.Func
	visit = js.FuncOf(func(this js.Value, args []js.Value) any {
		o := args[0]
		if g := o.Get("geometry"); g.Truthy() {
			g.Call("dispose")
		}
		mat := o.Get("material")
		switch {
		case mat.InstanceOf(js.Global().Get("Array")):
			for i := 0; i < mat.Length(); i++ {
				mat.Index(i).Call("dispose")
			}
		case mat.Truthy():
			mat.Call("dispose")
		}
		return nil
	})
	m.Object.Call("traverse", visit)
	visit.Release()
	if p := m.Object.Get("parent"); p.Truthy() {
		p.Call("remove", m.Object)
	}
}

type loadResult struct {
	model *Model
	err   error
}

func (Models) LoadModel(ctx context.Context, url string) (any, error) {
	ctor := global("THREE.GLTFLoader")
	if ctor.Type() != js.TypeFunction {
		return nil, errors.New("THREE.GLTFLoader is not available")
	}
	res := make(chan loadResult, 1)
	fns := oneOf(func(args []js.Value) {
		res <- loadResult{model: &Model{Object: args[0].Get("scene")}}
	}, func(args []js.Value) {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		res <- loadResult{err: jsError(ev, "loading model "+url)}
	})
	ctor.New().Call("load", url, fns[0], js.Undefined(), fns[1])
	select {
	case r := <-res:
		if r.err != nil {
			return nil, r.err
		}
		return r.model, nil
	case <-ctx.Done():
		// the request cannot be aborted, so free the model once it arrives
		go func() {
			if r := <-res; r.model != nil {
				r.model.Dispose()
			}
		}()
		return nil, ctx.Err()
	}
}
