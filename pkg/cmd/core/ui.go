// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package core holds small pieces shared by every cmd/yamlet subcommand.
package core

import (
	"fmt"
	"io"
	"os"
)

// PlainUI is the CLI's diagnostics writer: ordinary output always goes to
// stdout via Printf, and --debug diagnostic lines go to stderr only
// when debug is enabled.
type PlainUI struct {
	debug bool
}

func NewPlainUI(debug bool) PlainUI { return PlainUI{debug} }

func (ui PlainUI) Printf(str string, args ...interface{}) {
	fmt.Printf(str, args...)
}

func (ui PlainUI) Debugf(str string, args ...interface{}) {
	if ui.debug {
		fmt.Fprintf(os.Stderr, str, args...)
	}
}

func (ui PlainUI) DebugWriter() io.Writer {
	if ui.debug {
		return os.Stderr
	}
	return noopWriter{}
}

type noopWriter struct{}

func (w noopWriter) Write(data []byte) (int, error) { return len(data), nil }
