// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package main

import (
	"fmt"
	"os"

	uierrs "github.com/cppforlife/go-cli-ui/errors"

	"github.com/JoshDreamland/Yamlet/pkg/cmd"
)

func main() {
	command := cmd.NewDefaultYamletCmd()

	err := command.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "yamlet: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(1)
	}
}
