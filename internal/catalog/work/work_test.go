// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/harmonia/internal/catalog/work"
)

/*
TestNormalizeISWC verifies separator handling and the check digit.
*/
func TestNormalizeISWC(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"T-034.524.680-1", "T0345246801", true},
		{"t0345246801", "T0345246801", true},
		{"T 034 524 680 1", "T0345246801", true},
		{"T-000.000.000-9", "T0000000009", true},
		{"T-034.524.680-2", "", false},
		{"T-034.524.680", "", false},
		{"X-034.524.680-1", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := work.NormalizeISWC(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestParseViewMode verifies that unknown modes fall back to details.
*/
func TestParseViewMode(t *testing.T) {
	tests := map[string]work.ViewMode{
		"":        work.ViewDetails,
		"details": work.ViewDetails,
		"edit":    work.ViewEdit,
		" Edit ":  work.ViewEdit,
		"create":  work.ViewCreate,
		"delete":  work.ViewDetails,
	}

	for input, want := range tests {
		assert.Equal(t, want, work.ParseViewMode(input), "input %q", input)
	}
}
