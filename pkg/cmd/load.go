// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JoshDreamland/Yamlet/pkg/cmd/core"
	"github.com/JoshDreamland/Yamlet/pkg/format"
	"github.com/JoshDreamland/Yamlet/pkg/loader"
)

// LoadOptions backs `yamlet load`: evaluate a YAML document's top-level
// tuple and print each key's value.
type LoadOptions struct {
	File        string
	OptionsFile string
	Debug       bool
	ui          core.PlainUI
}

func NewLoadOptions() *LoadOptions { return &LoadOptions{} }

func NewLoadCmd(o *LoadOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a YAML document and print its top-level values",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVarP(&o.File, "file", "f", "", "path to the YAML document to load")
	cmd.Flags().StringVar(&o.OptionsFile, "options-file", "", "TOML sidecar providing globals/caching/max-depth")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "print a line to stderr as each top-level key is forced")
	return cmd
}

func (o *LoadOptions) Run() error {
	o.ui = core.NewPlainUI(o.Debug)
	if o.File == "" {
		return fmt.Errorf("missing required --file")
	}

	opts, err := loadOptionsFile(o.OptionsFile, loader.Options{StringifyStyle: format.Diagnostic})
	if err != nil {
		return err
	}

	l := loader.New(opts)
	root, err := l.LoadFile(o.File)
	if err != nil {
		return fmt.Errorf("loading %q: %w", o.File, err)
	}

	for _, key := range root.Keys() {
		o.ui.Debugf("forcing key %q\n", key)
		v, err := root.Get(key)
		if err != nil {
			return fmt.Errorf("evaluating key %q: %w", key, err)
		}
		rendered, err := format.Stringify(v, format.Diagnostic)
		if err != nil {
			return fmt.Errorf("rendering key %q: %w", key, err)
		}
		o.ui.Printf("%s: %s\n", key, rendered)
	}
	return nil
}
