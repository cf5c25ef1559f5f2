// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Stdout is where the Print functions write. It is a variable
// so that tests and embedding tools can redirect it.
var Stdout io.Writer = os.Stdout

// Println is equivalent to [fmt.Println], but it only prints if
// the given level is at or above [UserLevel].
func Println(level slog.Level, a ...any) (n int, err error) {
	if level < UserLevel {
		return 0, nil
	}
	return fmt.Fprintln(Stdout, a...)
}

// Printf is equivalent to [fmt.Printf], but it only prints if
// the given level is at or above [UserLevel].
func Printf(level slog.Level, format string, a ...any) (n int, err error) {
	if level < UserLevel {
		return 0, nil
	}
	return fmt.Fprintf(Stdout, format, a...)
}

// PrintlnDebug prints at [slog.LevelDebug].
func PrintlnDebug(a ...any) (n int, err error) {
	return Println(slog.LevelDebug, a...)
}

// PrintlnInfo prints at [slog.LevelInfo].
func PrintlnInfo(a ...any) (n int, err error) {
	return Println(slog.LevelInfo, a...)
}

// PrintlnWarn prints at [slog.LevelWarn].
func PrintlnWarn(a ...any) (n int, err error) {
	return Println(slog.LevelWarn, a...)
}

// PrintfInfo prints at [slog.LevelInfo].
func PrintfInfo(format string, a ...any) (n int, err error) {
	return Printf(slog.LevelInfo, format, a...)
}
