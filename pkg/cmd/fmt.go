// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JoshDreamland/Yamlet/pkg/eval"
	"github.com/JoshDreamland/Yamlet/pkg/filepos"
	"github.com/JoshDreamland/Yamlet/pkg/parser"
	"github.com/JoshDreamland/Yamlet/pkg/values"
)

// FmtOptions backs `yamlet fmt`: resolve a single `!fmt`-style
// interpolated string standalone, for trying out the string formatter
// without writing a whole document. It does not write YAML
// back out -- round-tripping YAML formatting is out of scope.
type FmtOptions struct{}

func NewFmtOptions() *FmtOptions { return &FmtOptions{} }

func NewFmtCmd(o *FmtOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt TEMPLATE",
		Short: "Resolve a `{...}`-interpolated string standalone",
		Args:  cobra.ExactArgs(1),
		RunE:  func(_ *cobra.Command, args []string) error { return o.Run(args[0]) },
	}
	return cmd
}

func (o *FmtOptions) Run(template string) error {
	span := filepos.NewSynthetic("yamlet fmt argument")

	node, err := parser.ParseFormatString(template, "<fmt>", span)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	ev := eval.New(nil, nil, eval.CacheValues, 0)
	scope := values.NewScope(nil, nil, span)
	values.NewTuple(scope, span)

	v, err := ev.Eval(node, scope)
	if err != nil {
		return fmt.Errorf("evaluating template: %w", err)
	}

	rendered, err := fmtAsString(v)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}

func fmtAsString(v values.Value) (string, error) {
	if s, ok := v.(values.Str); ok {
		return string(s), nil
	}
	return "", fmt.Errorf("template did not evaluate to a string")
}
