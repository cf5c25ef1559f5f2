// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cogentcore.org/arview/base/errors"
	"cogentcore.org/arview/config"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
)

// GLB is the file type of binary glTF models.
var GLB = filetype.NewType("glb", "model/gltf-binary")

func init() {
	filetype.AddMatcher(GLB, func(buf []byte) bool {
		return len(buf) >= 12 && bytes.Equal(buf[:4], []byte("glTF"))
	})
}

// Asset is a static resource found by [CheckAssets].
type Asset struct {
	Name string
	Path string
	Size int64

	// Type is the detected MIME type, if known.
	Type string
}

// CheckAssets verifies that the static resources the page fetches exist
// under the web root and are not empty, and that the model is a glTF
// model, binary or JSON. It returns the assets found and an error
// describing every problem.
func CheckAssets(root string, a *config.Assets) ([]Asset, error) {
	var assets []Asset
	var errs []error
	for _, it := range []struct{ name, path string }{
		{"camera parameters", a.CameraParameters},
		{"marker pattern", a.Pattern},
		{"model", a.Model},
	} {
		as, err := checkAsset(root, it.name, it.path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if it.path == a.Model {
			as.Type, err = modelType(as.Path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
		}
		assets = append(assets, as)
	}
	return assets, errors.Join(errs...)
}

func checkAsset(root, name, rel string) (Asset, error) {
	p := filepath.Join(root, filepath.FromSlash(rel))
	st, err := os.Stat(p)
	if err != nil {
		return Asset{}, fmt.Errorf("%s: %w", name, err)
	}
	if st.IsDir() {
		return Asset{}, fmt.Errorf("%s: %s is a directory", name, p)
	}
	if st.Size() == 0 {
		return Asset{}, fmt.Errorf("%s: %s is empty", name, p)
	}
	return Asset{Name: name, Path: p, Size: st.Size()}, nil
}

// modelType returns the MIME type of the glTF model in the given file.
func modelType(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", err
	}
	kind, err := filetype.Match(head[:n])
	if err != nil {
		return "", err
	}
	if kind == GLB {
		return GLB.MIME.Value, nil
	}
	if kind != types.Unknown {
		return "", fmt.Errorf("model: %s is a %s file, not a glTF model", filename, kind.MIME.Value)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	var gltf struct {
		Asset struct {
			Version string `json:"version"`
		} `json:"asset"`
	}
	if err := json.NewDecoder(f).Decode(&gltf); err != nil || gltf.Asset.Version == "" {
		return "", fmt.Errorf("model: %s is not a glTF model", filename)
	}
	return "model/gltf+json", nil
}
