// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package cmd

import "testing"

func TestFmtAsStringRejectsNonStringResult(t *testing.T) {
	if _, err := fmtAsString(nil); err == nil {
		t.Fatalf("expected fmtAsString to reject a non-values.Str result")
	}
}
