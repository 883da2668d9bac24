// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package cmd

import (
	"fmt"

	hcversion "github.com/hashicorp/go-version"
	"github.com/spf13/cobra"
)

// Version is stamped by `-ldflags "-X ...cmd.Version=..."` at release build
// time; "dev" otherwise.
var Version = "dev"

type VersionOptions struct {
	CheckMin string
}

func NewVersionOptions() *VersionOptions { return &VersionOptions{} }

func NewVersionCmd(o *VersionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.CheckMin, "check-min", "", "exit non-zero unless this binary's version is >= the given semver")
	return cmd
}

func (o *VersionOptions) Run() error {
	fmt.Printf("yamlet version %s\n", Version)

	if o.CheckMin == "" {
		return nil
	}

	have, err := hcversion.NewVersion(Version)
	if err != nil {
		return fmt.Errorf("parsing this binary's version %q: %w", Version, err)
	}
	want, err := hcversion.NewVersion(o.CheckMin)
	if err != nil {
		return fmt.Errorf("parsing --check-min %q: %w", o.CheckMin, err)
	}
	if have.LessThan(want) {
		return fmt.Errorf("yamlet %s does not satisfy minimum version %s", have, want)
	}
	return nil
}
