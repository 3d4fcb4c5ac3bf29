// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/harmonia/internal/client"
	"github.com/taibuivan/harmonia/internal/contracts/terms"
	"github.com/taibuivan/harmonia/internal/deals/deliverable"
	"github.com/taibuivan/harmonia/internal/platform/constants"
	"github.com/taibuivan/harmonia/internal/platform/respond"
	"github.com/taibuivan/harmonia/pkg/date"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// # Fake API

// fakeAPI is a minimal server speaking the Harmonia envelope and CSRF protocol.
type fakeAPI struct {
	router     chi.Router
	csrfHits   atomic.Int32
	csrfDelay  time.Duration
	csrfToken  atomic.Value
	rejectOnce atomic.Bool
}

func newFakeAPI() *fakeAPI {
	api := &fakeAPI{router: chi.NewRouter()}
	api.csrfToken.Store("token-1")
	api.router.Get("/api/v1/csrf/", func(writer http.ResponseWriter, request *http.Request) {
		api.csrfHits.Add(1)
		time.Sleep(api.csrfDelay)
		token := api.csrfToken.Load().(string)
		http.SetCookie(writer, &http.Cookie{Name: constants.CSRFCookieName, Value: token, Path: "/"})
		respond.OK(writer, map[string]string{"csrf_token": token})
	})
	return api
}

// protect mirrors the server double-submit check.
func (api *fakeAPI) protect(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		cookie, err := request.Cookie(constants.CSRFCookieName)
		header := request.Header.Get(constants.HeaderXCSRFToken)
		if api.rejectOnce.CompareAndSwap(true, false) || err != nil || cookie.Value != header {
			respond.JSON(writer, http.StatusForbidden, respond.ErrorEnvelope{
				Error: "CSRF token missing or invalid", Detail: "CSRF token missing or invalid", Code: "CSRF_FAILED",
			})
			return
		}
		next(writer, request)
	}
}

func (api *fakeAPI) start(t *testing.T) *client.Client {
	t.Helper()

	server := httptest.NewServer(api.router)
	c, err := client.New(server.URL, client.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	t.Cleanup(func() {
		c.Close()
		server.Close()
	})
	return c
}

// # CSRF

func TestEnsureCSRFToken_ConcurrentCallersShareOneFetch(t *testing.T) {
	api := newFakeAPI()
	api.csrfDelay = 50 * time.Millisecond
	c := api.start(t)

	var wg sync.WaitGroup
	tokens := make([]string, 8)
	errs := make([]error, 8)
	for i := range tokens {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens[i], errs[i] = c.EnsureCSRFToken(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), api.csrfHits.Load())
	for i := range tokens {
		require.NoError(t, errs[i])
		assert.Equal(t, "token-1", tokens[i])
	}

	// The cookie is now in the jar; no further fetch.
	token, err := c.EnsureCSRFToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
	assert.Equal(t, int32(1), api.csrfHits.Load())
}

func TestEnsureCSRFToken_CancelledCallerDoesNotFailOthers(t *testing.T) {
	api := newFakeAPI()
	api.csrfDelay = 200 * time.Millisecond
	c := api.start(t)

	first, cancel := context.WithCancel(context.Background())
	defer cancel()

	firstErr := make(chan error, 1)
	go func() {
		_, err := c.EnsureCSRFToken(first)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return api.csrfHits.Load() == 1 }, time.Second, 5*time.Millisecond)

	type outcome struct {
		token string
		err   error
	}
	second := make(chan outcome, 1)
	go func() {
		token, err := c.EnsureCSRFToken(context.Background())
		second <- outcome{token, err}
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	result := <-second
	require.NoError(t, result.err)
	assert.Equal(t, "token-1", result.token)
	assert.Equal(t, int32(1), api.csrfHits.Load())
}

func TestCreateWork_TitleOnlyPayload(t *testing.T) {
	api := newFakeAPI()
	var body []byte
	api.router.Post("/api/v1/works/", api.protect(func(writer http.ResponseWriter, request *http.Request) {
		body, _ = io.ReadAll(request.Body)
		respond.Created(writer, map[string]string{"id": "w-1", "title": "Night Drive"})
	}))
	c := api.start(t)

	blank, empty := "   ", ""
	created, err := c.CreateWork(context.Background(), client.WorkInput{Title: "Night Drive", Genre: &blank, Notes: &empty})
	require.NoError(t, err)

	assert.JSONEq(t, `{"title":"Night Drive"}`, string(body))
	assert.Equal(t, "   ", blank)
	assert.Equal(t, "w-1", created.ID)
	assert.Equal(t, int32(1), api.csrfHits.Load())
}

func TestMutation_RetriesOnceAfterCSRFRejection(t *testing.T) {
	api := newFakeAPI()
	api.router.Post("/api/v1/works/", api.protect(func(writer http.ResponseWriter, request *http.Request) {
		respond.Created(writer, map[string]string{"id": "w-2", "title": "Retry"})
	}))
	c := api.start(t)

	_, err := c.EnsureCSRFToken(context.Background())
	require.NoError(t, err)

	api.csrfToken.Store("token-2")
	api.rejectOnce.Store(true)

	created, err := c.CreateWork(context.Background(), client.WorkInput{Title: "Retry"})
	require.NoError(t, err)
	assert.Equal(t, "w-2", created.ID)
	assert.Equal(t, int32(2), api.csrfHits.Load())
}

// # Read Cache

func TestDeliverables_CachedUntilMutation(t *testing.T) {
	api := newFakeAPI()
	var listHits atomic.Int32
	api.router.Get("/api/v1/deliverables/", func(writer http.ResponseWriter, request *http.Request) {
		listHits.Add(1)
		respond.OK(writer, []map[string]string{{"id": "d-1", "name": "Master WAV"}})
	})
	api.router.Post("/api/v1/deliverables/", api.protect(func(writer http.ResponseWriter, request *http.Request) {
		respond.Created(writer, map[string]string{"id": "d-2", "name": "Cover art"})
	}))
	c := api.start(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := c.Deliverables(ctx, "deal-1")
			assert.NoError(t, err)
			assert.Len(t, items, 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), listHits.Load())

	_, err := c.CreateDeliverable(ctx, client.DeliverableInput{DealID: "deal-1", Name: "Cover art", Kind: deliverable.KindArtwork})
	require.NoError(t, err)

	_, err = c.Deliverables(ctx, "deal-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), listHits.Load())
}

// # Errors

func TestAPIError_CarriesDetail(t *testing.T) {
	api := newFakeAPI()
	api.router.Get("/api/v1/deals/{id}", func(writer http.ResponseWriter, request *http.Request) {
		respond.JSON(writer, http.StatusUnprocessableEntity, map[string]string{"error": "Deal is archived"})
	})
	c := api.start(t)

	_, err := c.GetDeal(context.Background(), "deal-9")
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "Deal is archived", apiErr.Detail)
}

func TestDeleteCredit_MissingKeepsCache(t *testing.T) {
	api := newFakeAPI()
	var listHits atomic.Int32
	api.router.Get("/api/v1/credits/{subjectType}/{subjectID}", func(writer http.ResponseWriter, request *http.Request) {
		listHits.Add(1)
		respond.OK(writer, []map[string]string{{"id": "c-1", "role": "composer"}})
	})
	api.router.Delete("/api/v1/credits/{id}", api.protect(func(writer http.ResponseWriter, request *http.Request) {
		respond.JSON(writer, http.StatusNotFound, respond.ErrorEnvelope{Error: "Credit not found", Detail: "Credit not found", Code: "NOT_FOUND"})
	}))
	c := api.start(t)
	ctx := context.Background()

	credits, err := c.Credits(ctx, "work", "w-1")
	require.NoError(t, err)
	require.Len(t, credits, 1)

	err = c.DeleteCredit(ctx, "c-404")
	require.Error(t, err)
	assert.True(t, client.NotFound(err))

	credits, err = c.Credits(ctx, "work", "w-1")
	require.NoError(t, err)
	assert.Len(t, credits, 1)
	assert.Equal(t, int32(1), listHits.Load())
}

// # Terms Drafts

func TestGetTermsDraft(t *testing.T) {
	api := newFakeAPI()
	api.router.Get("/api/v1/contracts/{dealID}/terms/draft", func(writer http.ResponseWriter, request *http.Request) {
		if chi.URLParam(request, "dealID") == "missing" {
			respond.JSON(writer, http.StatusNotFound, respond.ErrorEnvelope{Error: "Terms draft not found", Code: "NOT_FOUND"})
			return
		}
		respond.OK(writer, terms.Draft{DealID: "deal-1", Terms: *terms.New(2), Version: 3})
	})
	c := api.start(t)

	draft, err := c.GetTermsDraft(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, draft)

	draft, err = c.GetTermsDraft(context.Background(), "deal-1")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, 3, draft.Version)
	assert.Equal(t, 2, draft.DurationYears)
}

// # Pack Fan-out

func TestApplyPack_ReportsEachItem(t *testing.T) {
	api := newFakeAPI()
	api.router.Get("/api/v1/deliverables/packs/{id}", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(writer, `{"data":{"id":"p-1","name":"Standard release","items":[
			{"id":"i-1","position":0,"name":"Master WAV","kind":"audio","due_offset_days":7},
			{"id":"i-2","position":1,"name":"Cover art","kind":"artwork","due_offset_days":14},
			{"id":"i-3","position":2,"name":"Liner notes","kind":"document"}]}}`)
	})

	var mu sync.Mutex
	received := map[string]client.DeliverableInput{}
	api.router.Post("/api/v1/deliverables/", api.protect(func(writer http.ResponseWriter, request *http.Request) {
		var input client.DeliverableInput
		assert.NoError(t, json.NewDecoder(request.Body).Decode(&input))

		mu.Lock()
		received[input.Name] = input
		mu.Unlock()

		if input.Name == "Cover art" {
			respond.JSON(writer, http.StatusUnprocessableEntity, respond.ErrorEnvelope{Error: "Kind not allowed", Detail: "Kind not allowed", Code: "UNPROCESSABLE"})
			return
		}
		respond.Created(writer, map[string]string{"id": "d-" + input.Name, "name": input.Name})
	}))
	c := api.start(t)

	results, err := c.ApplyPack(context.Background(), "p-1", "deal-1", date.New(2026, time.March, 1))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 1, client.Failed(results))
	assert.Equal(t, "Master WAV", results[0].Input.Name)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 3)
	assert.Equal(t, "2026-03-08", received["Master WAV"].DueDate.String())
	assert.Nil(t, received["Liner notes"].DueDate)
	assert.Equal(t, "From pack: Standard release", *received["Liner notes"].Notes)
	assert.Equal(t, int32(1), api.csrfHits.Load())
}
