// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/harmonia/internal/catalog/entity"
	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/ctxutil"
	"github.com/taibuivan/harmonia/internal/platform/sec"
	"github.com/taibuivan/harmonia/pkg/pointer"
)

type fakeRepository struct {
	mu       sync.Mutex
	entities map[string]*entity.Entity
	sealed   map[string][]byte
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{entities: map[string]*entity.Entity{}, sealed: map[string][]byte{}}
}

func (f *fakeRepository) List(_ context.Context, filter entity.Filter, limit, offset int) ([]*entity.Entity, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := []*entity.Entity{}
	for _, e := range f.entities {
		if filter.Kind == "" || e.Kind == filter.Kind {
			result = append(result, e)
		}
	}
	return result, len(result), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*entity.Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entities[id]
	if !ok {
		return nil, apperr.NotFound("Entity")
	}
	copied := *e
	copied.HasTaxID = f.sealed[id+"/tax_id"] != nil
	copied.HasBankAccount = f.sealed[id+"/bank_account"] != nil
	return &copied, nil
}

func (f *fakeRepository) Create(_ context.Context, e *entity.Entity) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *e
	f.entities[e.ID] = &copied
	return nil
}

func (f *fakeRepository) Update(_ context.Context, e *entity.Entity) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entities[e.ID]; !ok {
		return apperr.NotFound("Entity")
	}
	copied := *e
	f.entities[e.ID] = &copied
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entities[id]; !ok {
		return apperr.NotFound("Entity")
	}
	delete(f.entities, id)
	return nil
}

func (f *fakeRepository) SetSealed(_ context.Context, id string, field entity.SensitiveField, sealed []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entities[id]; !ok {
		return apperr.NotFound("Entity")
	}
	f.sealed[id+"/"+string(field)] = sealed
	return nil
}

func (f *fakeRepository) GetSealed(_ context.Context, id string, field entity.SensitiveField) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entities[id]; !ok {
		return nil, apperr.NotFound("Entity")
	}
	return f.sealed[id+"/"+string(field)], nil
}

func newSealer(t *testing.T, fill byte) *sec.Sealer {
	t.Helper()
	sealer, err := sec.NewSealer(base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{fill}, 32)))
	require.NoError(t, err)
	return sealer
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestService_Create covers normalisation of optional fields and validation.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()
	service := entity.NewService(newFakeRepository(), newSealer(t, 1), discardLogger())

	created := &entity.Entity{
		Kind:    entity.KindPublisher,
		Name:    "  Northern Songs ",
		Country: pointer.To("gb"),
		Notes:   pointer.To("   "),
	}
	require.NoError(t, service.Create(ctx, created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Northern Songs", created.Name)
	assert.Equal(t, "GB", *created.Country)
	assert.Nil(t, created.Notes)

	tests := []struct {
		name  string
		input *entity.Entity
	}{
		{"unknown kind", &entity.Entity{Kind: "band", Name: "X"}},
		{"blank name", &entity.Entity{Kind: entity.KindArtist, Name: " "}},
		{"bad country", &entity.Entity{Kind: entity.KindArtist, Name: "X", Country: pointer.To("GBR")}},
		{"bad ipi", &entity.Entity{Kind: entity.KindArtist, Name: "X", IPI: pointer.To("12ab")}},
		{"bad email", &entity.Entity{Kind: entity.KindLabel, Name: "X", Email: pointer.To("nope")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Create(ctx, tt.input)
			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"), "got %v", err)
		})
	}
}

/*
TestService_SensitiveRoundTrip verifies sealing, revealing and clearing.
*/
func TestService_SensitiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	service := entity.NewService(newFakeRepository(), newSealer(t, 1), discardLogger())

	created := &entity.Entity{Kind: entity.KindArtist, Name: "Ana Ortiz"}
	require.NoError(t, service.Create(ctx, created))

	require.NoError(t, service.SetSensitive(ctx, created.ID, entity.SensitiveInput{TaxID: pointer.To("ES-12345678Z")}))

	loaded, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, loaded.HasTaxID)
	assert.False(t, loaded.HasBankAccount)

	revealed, err := service.Reveal(ctx, created.ID, entity.FieldTaxID)
	require.NoError(t, err)
	assert.Equal(t, "ES-12345678Z", revealed.Value)

	_, err = service.Reveal(ctx, created.ID, entity.FieldBankAccount)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	require.NoError(t, service.SetSensitive(ctx, created.ID, entity.SensitiveInput{TaxID: pointer.To("")}))
	_, err = service.Reveal(ctx, created.ID, entity.FieldTaxID)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

/*
TestService_RevealNeedsReentry verifies that a value sealed under another key
asks for re-entry instead of failing with a 500.
*/
func TestService_RevealNeedsReentry(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()

	before := entity.NewService(repo, newSealer(t, 1), discardLogger())
	created := &entity.Entity{Kind: entity.KindLabel, Name: "Blue Room"}
	require.NoError(t, before.Create(ctx, created))
	require.NoError(t, before.SetSensitive(ctx, created.ID, entity.SensitiveInput{BankAccount: pointer.To("DE89370400440532013000")}))

	rotated := entity.NewService(repo, newSealer(t, 2), discardLogger())
	_, err := rotated.Reveal(ctx, created.ID, entity.FieldBankAccount)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPStatus)
	assert.True(t, appErr.NeedsReentry)

	handler := entity.NewHandler(rotated)
	request := httptest.NewRequest(http.MethodPost, "/"+created.ID+"/sensitive/bank_account/reveal", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{
		UserID: "staff-1",
		Role:   string(sec.RoleManager),
	}))
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, true, body["needs_reentry"])
	assert.Equal(t, "NEEDS_REENTRY", body["code"])
}
