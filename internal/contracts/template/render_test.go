// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package template_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/harmonia/internal/contracts/template"
	"github.com/taibuivan/harmonia/internal/contracts/terms"
	"github.com/taibuivan/harmonia/internal/deals/distribution"
	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/pkg/date"
)

func sampleData(withTerms bool) template.RenderData {
	data := template.RenderData{
		Deal: &distribution.Deal{
			Title:     "Digital distribution",
			Territory: "Worldwide",
			StartDate: date.New(2026, time.April, 1),
			Platforms: []string{"Spotify", "Deezer"},
		},
		GeneratedOn: date.New(2026, time.March, 20),
	}
	if withTerms {
		table := terms.New(2)
		_ = table.SetRate(1, terms.CategoryLive, 12.5)
		data.Terms = &terms.Draft{Terms: *table, Version: 3}
	}
	return data
}

func TestRender_DealAndTerms(t *testing.T) {
	body := `{{upper .Deal.Title}} from {{date .Deal.StartDate}} on {{join .Deal.Platforms ", "}}.` +
		`{{with .Terms}} Live: {{pct (.Rate 1 "live")}}.{{end}}`

	content, err := template.Render("deal", body, sampleData(true))

	require.NoError(t, err)
	assert.Equal(t, "DIGITAL DISTRIBUTION from 2026-04-01 on Spotify, Deezer. Live: 12.5%.", content)
}

func TestRender_WithoutTerms(t *testing.T) {
	body := `{{.Deal.Territory}}{{with .Terms}} has terms{{else}} (terms pending){{end}}`

	content, err := template.Render("deal", body, sampleData(false))

	require.NoError(t, err)
	assert.Equal(t, "Worldwide (terms pending)", content)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := template.Parse("broken", "{{ .Deal.Title ")

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, template.FieldBody, appErr.Details[0].Field)
}

func TestRender_UnknownFieldIsUnprocessable(t *testing.T) {
	_, err := template.Render("deal", "{{.Deal.Budget}}", sampleData(false))

	assert.True(t, apperr.HasCode(err, "UNPROCESSABLE"))
}
