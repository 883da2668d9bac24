// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package cmd

import "testing"

func TestVersionCheckMinSucceedsWhenCurrentVersionIsNewer(t *testing.T) {
	old := Version
	Version = "2.0.0"
	defer func() { Version = old }()

	o := &VersionOptions{CheckMin: "1.0.0"}
	if err := o.Run(); err != nil {
		t.Fatalf("Run: %s", err)
	}
}

func TestVersionCheckMinFailsWhenCurrentVersionIsOlder(t *testing.T) {
	old := Version
	Version = "1.0.0"
	defer func() { Version = old }()

	o := &VersionOptions{CheckMin: "2.0.0"}
	if err := o.Run(); err == nil {
		t.Fatalf("expected Run to fail when the binary's version is below --check-min")
	}
}
