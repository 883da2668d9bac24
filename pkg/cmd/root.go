// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package cmd

import (
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

type YamletOptions struct{}

func NewDefaultYamletOptions() *YamletOptions { return &YamletOptions{} }

func NewDefaultYamletCmd() *cobra.Command {
	return NewYamletCmd(NewDefaultYamletOptions())
}

func NewYamletCmd(o *YamletOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "yamlet",
		Version: Version,
		Short:   "yamlet evaluates GCL-style YAML templates",
		Long: `yamlet evaluates GCL-style YAML templates: lazy tuple composition with
super/up scoping, !fmt string interpolation, and a provenance trace for
every value.`,
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewLoadCmd(NewLoadOptions()))
	cmd.AddCommand(NewExplainCmd(NewExplainOptions()))
	cmd.AddCommand(NewFmtCmd(NewFmtOptions()))
	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))

	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
