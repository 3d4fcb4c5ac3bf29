// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package terms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/harmonia/internal/contracts/terms"
	"github.com/taibuivan/harmonia/internal/platform/apperr"
)

func TestNew_EnablesEveryCategory(t *testing.T) {
	table := terms.New(3)

	assert.Equal(t, 3, table.DurationYears)
	assert.Len(t, table.Rates, 3)
	assert.Len(t, table.Enabled, terms.NumCategories)
	for _, category := range terms.Categories {
		assert.True(t, table.Enabled[category], category)
	}
}

/*
TestTerms_Resize covers growth (clone last year forward) and truncation.
*/
func TestTerms_Resize(t *testing.T) {
	table := terms.New(2)
	require.NoError(t, table.SetRate(1, terms.CategoryLive, 10))
	require.NoError(t, table.SetRate(2, terms.CategoryLive, 15))

	require.NoError(t, table.Resize(4))

	assert.Equal(t, 4, table.DurationYears)
	assert.Equal(t, 10.0, table.Rate(1, terms.CategoryLive))
	assert.Equal(t, 15.0, table.Rate(3, terms.CategoryLive))
	assert.Equal(t, 15.0, table.Rate(4, terms.CategoryLive))

	require.NoError(t, table.Resize(1))

	assert.Equal(t, 1, table.DurationYears)
	assert.Len(t, table.Rates, 1)
	assert.Equal(t, 10.0, table.Rate(1, terms.CategoryLive))
}

func TestTerms_Resize_ClonesAreIndependent(t *testing.T) {
	table := terms.New(1)
	require.NoError(t, table.Resize(3))
	require.NoError(t, table.SetRate(3, terms.CategorySync, 50))

	assert.Zero(t, table.Rate(2, terms.CategorySync))
}

func TestTerms_Resize_OutOfRange(t *testing.T) {
	table := terms.New(2)

	for _, n := range []int{0, -1, terms.MaxYears + 1} {
		err := table.Resize(n)
		assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"), n)
	}
	assert.Equal(t, 2, table.DurationYears)
}

func TestTerms_CopyFirstYear(t *testing.T) {
	table := terms.New(3)
	require.NoError(t, table.SetRate(1, terms.CategoryPublishing, 20))
	require.NoError(t, table.SetRate(3, terms.CategoryPublishing, 5))

	table.CopyFirstYear()

	for year := 1; year <= 3; year++ {
		assert.Equal(t, 20.0, table.Rate(year, terms.CategoryPublishing))
	}
}

func TestTerms_SetRate_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		category terms.Category
		rate     float64
	}{
		{"year zero", 0, terms.CategoryLive, 10},
		{"year past end", 3, terms.CategoryLive, 10},
		{"unknown category", 1, "streaming", 10},
		{"negative rate", 1, terms.CategoryLive, -1},
		{"rate over 100", 1, terms.CategoryLive, 100.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := terms.New(2)
			err := table.SetRate(tt.year, tt.category, tt.rate)
			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
		})
	}
}

func TestTerms_Validate(t *testing.T) {
	table := terms.New(2)
	table.Rates[1][0] = 140
	table.Enabled["streaming"] = true
	table.DurationYears = 3

	appErr := apperr.As(table.Validate())

	require.NotNil(t, appErr)
	fields := map[string]bool{}
	for _, detail := range appErr.Details {
		fields[detail.Field] = true
	}
	assert.True(t, fields[terms.FieldRates])
	assert.True(t, fields[terms.FieldEnabled])
	assert.True(t, fields["rates[2].recorded_music"])
}

func TestTerms_Normalize_FillsMissingToggles(t *testing.T) {
	table := &terms.Terms{DurationYears: 1, Enabled: map[terms.Category]bool{terms.CategorySync: true}}

	table.Normalize()

	assert.Len(t, table.Enabled, terms.NumCategories)
	assert.True(t, table.Enabled[terms.CategorySync])
	assert.False(t, table.Enabled[terms.CategoryLive])
	assert.NotNil(t, table.Rates)
}
