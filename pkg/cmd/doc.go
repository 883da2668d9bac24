// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package cmd is home to yamlet's cobra.Command tree (not to be confused
// with ./cmd, which holds the main package that executes it).
//
// For a list of commands run:
//
//	$ yamlet help
package cmd
