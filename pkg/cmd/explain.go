// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JoshDreamland/Yamlet/pkg/loader"
)

// ExplainOptions backs `yamlet explain`: print the provenance trace for a
// single top-level key (explain_value).
type ExplainOptions struct {
	File        string
	OptionsFile string
}

func NewExplainOptions() *ExplainOptions { return &ExplainOptions{} }

func NewExplainCmd(o *ExplainOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain KEY",
		Short: "Explain where a top-level key's value came from",
		Args:  cobra.ExactArgs(1),
		RunE:  func(_ *cobra.Command, args []string) error { return o.Run(args[0]) },
	}
	cmd.Flags().StringVarP(&o.File, "file", "f", "", "path to the YAML document to load")
	cmd.Flags().StringVar(&o.OptionsFile, "options-file", "", "TOML sidecar providing globals/caching/max-depth")
	return cmd
}

func (o *ExplainOptions) Run(key string) error {
	if o.File == "" {
		return fmt.Errorf("missing required --file")
	}

	opts, err := loadOptionsFile(o.OptionsFile, loader.Options{})
	if err != nil {
		return err
	}

	l := loader.New(opts)
	root, err := l.LoadFile(o.File)
	if err != nil {
		return fmt.Errorf("loading %q: %w", o.File, err)
	}

	// Force the key first: ExplainValue only has a trace to report once
	// the cell has actually been evaluated at least once.
	if _, err := root.Get(key); err != nil {
		return fmt.Errorf("evaluating key %q: %w", key, err)
	}

	explanation, err := root.ExplainValue(key)
	if err != nil {
		return fmt.Errorf("explaining key %q: %w", key, err)
	}
	fmt.Println(explanation)
	return nil
}
