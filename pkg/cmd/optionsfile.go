// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/JoshDreamland/Yamlet/pkg/loader"
	"github.com/JoshDreamland/Yamlet/pkg/values"
)

// optionsFile is the TOML sidecar shape read by --options-file: since Go
// source can't hand a CLI flag a host function, this is the CLI-facing
// subset of loader.Options that's expressible as data (globals and
// caching/depth knobs), not the full struct.
type optionsFile struct {
	MaxDepth int               `toml:"max_depth"`
	Caching  string            `toml:"caching"`
	Globals  map[string]string `toml:"globals"`
}

// loadOptionsFile reads path and applies it on top of base, returning the
// merged loader.Options.
func loadOptionsFile(path string, base loader.Options) (loader.Options, error) {
	if path == "" {
		return base, nil
	}

	var parsed optionsFile
	if _, err := toml.DecodeFile(path, &parsed); err != nil {
		return base, fmt.Errorf("reading options file %q: %w", path, err)
	}

	if parsed.MaxDepth > 0 {
		base.MaxDepth = parsed.MaxDepth
	}
	switch parsed.Caching {
	case "", "values":
		base.Caching = loader.CacheValues
	case "nothing":
		base.Caching = loader.CacheNothing
	case "debug":
		base.Caching = loader.CacheDebug
	default:
		return base, fmt.Errorf("unknown caching mode %q in options file %q", parsed.Caching, path)
	}

	if len(parsed.Globals) > 0 {
		if base.Globals == nil {
			base.Globals = map[string]values.Value{}
		}
		for name, v := range parsed.Globals {
			base.Globals[name] = values.Str(v)
		}
	}
	return base, nil
}
