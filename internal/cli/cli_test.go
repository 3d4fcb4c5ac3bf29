// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/harmonia/internal/cli"
	"github.com/taibuivan/harmonia/internal/contracts/terms"
	"github.com/taibuivan/harmonia/internal/deals/deliverable"
	"github.com/taibuivan/harmonia/internal/platform/respond"
)

// execute runs harmonictl with args against server and returns stdout.
func execute(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	out := &bytes.Buffer{}
	cmd := cli.NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)

	if server != nil {
		args = append([]string{"--server", server.URL, "--token", "test-token"}, args...)
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestCommandPresence(t *testing.T) {
	root := cli.NewRootCommand()
	commands := [][]string{
		{"splits", "show"},
		{"packs", "apply"},
		{"terms", "resize"},
		{"terms", "copy-first-year"},
		{"deliverables", "import"},
	}

	for _, path := range commands {
		t.Run(strings.Join(path, "_"), func(t *testing.T) {
			sub, _, err := root.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], sub.Name())
		})
	}
}

// # Manifest

func TestParseManifest(t *testing.T) {
	manifest := `
deal_id: deal-1
start_date: 2026-03-01
deliverables:
  - name: Master WAV
    kind: Audio
    due_offset_days: 7
  - name: Cover art
    kind: artwork
    due_date: 2026-03-20
    notes: 3000x3000 JPG
  - name: Credits sheet
    kind: document
`
	parsed, inputs, err := cli.ParseManifest(strings.NewReader(manifest))
	require.NoError(t, err)
	assert.Equal(t, "deal-1", parsed.DealID)
	require.Len(t, inputs, 3)

	assert.Equal(t, deliverable.KindAudio, inputs[0].Kind)
	assert.Equal(t, "2026-03-08", inputs[0].DueDate.String())
	assert.Equal(t, "2026-03-20", inputs[1].DueDate.String())
	assert.Equal(t, "3000x3000 JPG", *inputs[1].Notes)
	assert.Nil(t, inputs[2].DueDate)
	assert.Nil(t, inputs[2].Notes)
}

func TestParseManifest_ReportsEveryProblem(t *testing.T) {
	manifest := `
deliverables:
  - name: ""
    kind: hologram
  - name: Stems
    kind: audio
    due_offset_days: 3
`
	_, _, err := cli.ParseManifest(strings.NewReader(manifest))
	require.Error(t, err)

	message := err.Error()
	assert.Contains(t, message, "deal_id is required")
	assert.Contains(t, message, "deliverables[0].name is required")
	assert.Contains(t, message, `deliverables[0].kind "hologram"`)
	assert.Contains(t, message, "deliverables[1].due_offset_days needs start_date")
}

func TestParseManifest_UnknownField(t *testing.T) {
	_, _, err := cli.ParseManifest(strings.NewReader("deal_id: d\ndeliverable: []\n"))
	assert.Error(t, err)
}

func TestDeliverablesImport_DryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("deal_id: deal-1\ndeliverables:\n  - name: Stems\n    kind: audio\n"), 0o600))

	out, err := execute(t, nil, "deliverables", "import", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Manifest OK: 1 deliverables for deal deal-1")
}

// # Splits

func TestSplitsShow_RejectsMismatchedBucket(t *testing.T) {
	_, err := execute(t, nil, "splits", "show", "work", "w-1", "master")
	require.Error(t, err)
	assert.Equal(t, cli.ExitCommandError, cli.ExitCode(err))
}

func TestSplitsShow_PrintsSummary(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/v1/splits/work/{id}/writer", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(writer, `{"data":[
			{"id":"s-1","entity_id":"e-1","share_percentage":60,"territory":"Worldwide"},
			{"id":"s-2","entity_id":"e-2","share_percentage":30,"territory":"Worldwide"}],
			"meta":{"total":90,"is_complete":false,"delta":-10,"status":"warning","count":2}}`)
	})
	server := httptest.NewServer(router)
	defer server.Close()

	out, err := execute(t, server, "splits", "show", "work", "w-1", "writer")
	require.NoError(t, err)
	assert.Contains(t, out, "e-1")
	assert.Contains(t, out, "60.00%")
	assert.Contains(t, out, "Total 90.00% (warning, delta -10.00, 2 shares)")
}

// # Terms

func TestTermsResize_StartsDraftWhenMissing(t *testing.T) {
	var saved terms.SaveInput
	router := chi.NewRouter()
	router.Get("/api/v1/contracts/{dealID}/terms/draft", func(writer http.ResponseWriter, request *http.Request) {
		respond.JSON(writer, http.StatusNotFound, respond.ErrorEnvelope{Error: "Terms draft not found", Code: "NOT_FOUND"})
	})
	router.Put("/api/v1/contracts/{dealID}/terms/draft", func(writer http.ResponseWriter, request *http.Request) {
		assert.NoError(t, json.NewDecoder(request.Body).Decode(&saved))
		respond.OK(writer, terms.Draft{DealID: chi.URLParam(request, "dealID"), Terms: saved.Terms, Version: 1})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	out, err := execute(t, server, "terms", "resize", "deal-1", "3")
	require.NoError(t, err)

	assert.Equal(t, 0, saved.Version)
	assert.Equal(t, 3, saved.DurationYears)
	assert.Len(t, saved.Rates, 3)
	assert.Contains(t, out, "3 years, version 1")
}

func TestTermsCopyFirstYear_StaleDraft(t *testing.T) {
	draft := terms.Draft{DealID: "deal-1", Terms: *terms.New(2), Version: 4}
	router := chi.NewRouter()
	router.Get("/api/v1/contracts/{dealID}/terms/draft", func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, draft)
	})
	router.Put("/api/v1/contracts/{dealID}/terms/draft", func(writer http.ResponseWriter, request *http.Request) {
		var input terms.SaveInput
		assert.NoError(t, json.NewDecoder(request.Body).Decode(&input))
		assert.Equal(t, 4, input.Version)
		respond.JSON(writer, http.StatusConflict, respond.ErrorEnvelope{Error: "stale", Detail: "stale", Code: "CONFLICT"})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	_, err := execute(t, server, "terms", "copy-first-year", "deal-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changed since it was read")
}

func TestTermsCopyFirstYear_RequiresDraft(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/v1/contracts/{dealID}/terms/draft", func(writer http.ResponseWriter, request *http.Request) {
		respond.JSON(writer, http.StatusNotFound, respond.ErrorEnvelope{Error: "Terms draft not found", Code: "NOT_FOUND"})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	_, err := execute(t, server, "terms", "copy-first-year", "deal-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no terms draft")
}

// # Packs

func TestPacksApply_PartialFailure(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/v1/deals/{id}", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(writer, `{"data":{"id":"deal-1","title":"EP","start_date":"2026-05-01"}}`)
	})
	router.Get("/api/v1/deliverables/packs/{id}", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(writer, `{"data":{"id":"p-1","name":"Single","items":[
			{"name":"Master WAV","kind":"audio","due_offset_days":10},
			{"name":"Lyrics","kind":"metadata"}]}}`)
	})
	router.Post("/api/v1/deliverables/", func(writer http.ResponseWriter, request *http.Request) {
		var input map[string]any
		assert.NoError(t, json.NewDecoder(request.Body).Decode(&input))
		if input["name"] == "Lyrics" {
			respond.JSON(writer, http.StatusUnprocessableEntity, respond.ErrorEnvelope{Error: "Deal is closed", Detail: "Deal is closed"})
			return
		}
		respond.Created(writer, input)
	})
	server := httptest.NewServer(router)
	defer server.Close()

	out, err := execute(t, server, "packs", "apply", "p-1", "--deal", "deal-1")
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))

	assert.Contains(t, out, "Master WAV")
	assert.Contains(t, out, "2026-05-11")
	assert.Contains(t, out, "failed: harmonia: 422 Deal is closed")
}
