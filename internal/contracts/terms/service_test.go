// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package terms_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/harmonia/internal/contracts/terms"
	"github.com/taibuivan/harmonia/internal/deals/distribution"
	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/ctxutil"
	"github.com/taibuivan/harmonia/internal/platform/sec"
)

const (
	dealID  = "01920000-0000-7000-8000-0000000000d1"
	staffID = "01920000-0000-7000-8000-000000000099"
)

type fakeDeals struct{}

func (fakeDeals) Get(_ context.Context, id string) (*distribution.Deal, error) {
	if id != dealID {
		return nil, apperr.NotFound("Deal")
	}
	return &distribution.Deal{ID: dealID}, nil
}

type fakeRepository struct {
	mu     sync.Mutex
	drafts map[string]terms.Draft
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{drafts: map[string]terms.Draft{}}
}

func (f *fakeRepository) Find(_ context.Context, id string) (*terms.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	draft, ok := f.drafts[id]
	if !ok {
		return nil, apperr.NotFound("Terms draft")
	}
	return &draft, nil
}

func (f *fakeRepository) Insert(_ context.Context, draft *terms.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.drafts[draft.DealID]; ok {
		return apperr.Conflict("A record with the same key already exists")
	}
	draft.Version = 1
	draft.UpdatedAt = time.Now()
	f.drafts[draft.DealID] = *draft
	return nil
}

func (f *fakeRepository) UpdateVersioned(_ context.Context, draft *terms.Draft, expected int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok := f.drafts[draft.DealID]
	if !ok || current.Version != expected {
		return false, nil
	}
	draft.Version = expected + 1
	draft.UpdatedAt = time.Now()
	f.drafts[draft.DealID] = *draft
	return true, nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.drafts[id]; !ok {
		return apperr.NotFound("Terms draft")
	}
	delete(f.drafts, id)
	return nil
}

func newService() *terms.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return terms.NewService(newFakeRepository(), fakeDeals{}, logger)
}

/*
TestService_Save_OptimisticVersion checks that the second writer holding a
stale version gets a conflict and the stored draft is untouched.
*/
func TestService_Save_OptimisticVersion(t *testing.T) {
	service := newService()
	ctx := context.Background()

	first, err := service.Save(ctx, dealID, terms.SaveInput{Terms: *terms.New(2)}, staffID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, staffID, *first.UpdatedBy)

	editA := terms.SaveInput{Terms: *terms.New(2), Version: 1}
	require.NoError(t, editA.SetRate(1, terms.CategoryLive, 12))
	editB := terms.SaveInput{Terms: *terms.New(2), Version: 1}
	require.NoError(t, editB.SetRate(1, terms.CategoryLive, 30))

	saved, err := service.Save(ctx, dealID, editA, staffID)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Version)

	_, err = service.Save(ctx, dealID, editB, staffID)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
	assert.Contains(t, appErr.Message, "current version 2")

	loaded, err := service.Load(ctx, dealID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, loaded.Rate(1, terms.CategoryLive))
}

func TestService_Save_SecondCreateConflicts(t *testing.T) {
	service := newService()
	ctx := context.Background()

	_, err := service.Save(ctx, dealID, terms.SaveInput{Terms: *terms.New(1)}, staffID)
	require.NoError(t, err)

	_, err = service.Save(ctx, dealID, terms.SaveInput{Terms: *terms.New(1)}, staffID)
	assert.True(t, apperr.HasCode(err, "CONFLICT"))
}

func TestService_Save_Validation(t *testing.T) {
	service := newService()
	input := terms.SaveInput{Terms: *terms.New(2)}
	input.Rates = input.Rates[:1]

	_, err := service.Save(context.Background(), dealID, input, staffID)

	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
}

func TestService_Load_Missing(t *testing.T) {
	service := newService()

	_, err := service.Load(context.Background(), dealID)

	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

func TestHandler_SaveDraft(t *testing.T) {
	handler := terms.NewHandler(newService())
	body := strings.NewReader(`{
		"duration_years": 2,
		"enabled": {"recorded_music": true},
		"rates": [[20,0,0,0,0,0,0],[25,0,0,0,0,0,0]],
		"version": 0
	}`)

	request := httptest.NewRequest(http.MethodPut, "/"+dealID+"/terms/draft", body)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{
		UserID: staffID,
		Role:   string(sec.RoleManager),
	}))
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"version":1`)
	assert.Contains(t, recorder.Body.String(), `"publishing":false`)
}
