// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"path/filepath"
	"runtime"
	"strconv"
)

// CallerInfo returns string information about the caller
// of the function that called CallerInfo.
func CallerInfo() string {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	res := filepath.Base(file) + ":" + strconv.Itoa(line)
	if fn := runtime.FuncForPC(pc); fn != nil {
		res = fn.Name() + " " + res
	}
	return res
}
