// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package template_test

import (
	"context"
	"encoding/json"
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

	"github.com/taibuivan/harmonia/internal/contracts/template"
	"github.com/taibuivan/harmonia/internal/contracts/terms"
	"github.com/taibuivan/harmonia/internal/deals/distribution"
	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/ctxutil"
	"github.com/taibuivan/harmonia/internal/platform/sec"
	"github.com/taibuivan/harmonia/pkg/date"
)

const (
	dealID       = "01920000-0000-7000-8000-0000000000d1"
	dealNoTerms  = "01920000-0000-7000-8000-0000000000d2"
	missingDeal  = "01920000-0000-7000-8000-00000000ffff"
	managerID    = "01920000-0000-7000-8000-000000000099"
	templateBody = `{{.Deal.Title}}{{with .Terms}} v{{.Version}}{{end}}`
)

type fakeRepository struct {
	mu        sync.Mutex
	templates map[string]*template.Template
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{templates: map[string]*template.Template{}}
}

func (f *fakeRepository) List(_ context.Context, _ template.Filter, _, _ int) ([]*template.Template, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := []*template.Template{}
	for _, t := range f.templates {
		result = append(result, t)
	}
	return result, len(result), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*template.Template, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.templates[id]
	if !ok {
		return nil, apperr.NotFound("Template")
	}
	copied := *t
	return &copied, nil
}

func (f *fakeRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.templates {
		if t.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Create(_ context.Context, t *template.Template) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	copied := *t
	f.templates[t.ID] = &copied
	return nil
}

func (f *fakeRepository) Update(_ context.Context, t *template.Template) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *t
	f.templates[t.ID] = &copied
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.templates[id]; !ok {
		return apperr.NotFound("Template")
	}
	delete(f.templates, id)
	return nil
}

type fakeDeals struct{}

func (fakeDeals) Get(_ context.Context, id string) (*distribution.Deal, error) {
	if id != dealID && id != dealNoTerms {
		return nil, apperr.NotFound("Deal")
	}
	return &distribution.Deal{ID: id, Title: "Sales deal"}, nil
}

func (fakeDeals) Timeline(_ context.Context, _ string, asOf date.Date) (*distribution.Timeline, error) {
	timeline := distribution.BucketRevenueShares(nil, asOf)
	return &timeline, nil
}

type fakeTerms struct{}

func (fakeTerms) Load(_ context.Context, id string) (*terms.Draft, error) {
	if id != dealID {
		return nil, apperr.NotFound("Terms draft")
	}
	return &terms.Draft{DealID: id, Terms: *terms.New(1), Version: 4}, nil
}

func newService() *template.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return template.NewService(newFakeRepository(), fakeDeals{}, fakeTerms{}, logger)
}

func TestService_Create_SlugSuffix(t *testing.T) {
	service := newService()
	ctx := context.Background()

	first := &template.Template{Name: "Distribution Agreement", Body: templateBody}
	second := &template.Template{Name: "Distribution agreement", Body: templateBody}
	require.NoError(t, service.Create(ctx, first))
	require.NoError(t, service.Create(ctx, second))

	assert.Equal(t, "distribution-agreement", first.Slug)
	assert.Equal(t, "distribution-agreement-2", second.Slug)
	assert.Equal(t, template.KindGeneral, first.Kind)
}

func TestService_Create_RejectsBadBody(t *testing.T) {
	service := newService()

	err := service.Create(context.Background(), &template.Template{Name: "Broken", Body: "{{if}}"})

	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
}

func TestService_Update_SlugTaken(t *testing.T) {
	service := newService()
	ctx := context.Background()

	first := &template.Template{Name: "One", Body: templateBody}
	second := &template.Template{Name: "Two", Body: templateBody}
	require.NoError(t, service.Create(ctx, first))
	require.NoError(t, service.Create(ctx, second))

	err := service.Update(ctx, second.ID, &template.Template{Name: "Two", Slug: "one"})

	assert.True(t, apperr.HasCode(err, "CONFLICT"))
}

/*
TestService_Generate covers rendering with and without a saved terms draft.
*/
func TestService_Generate(t *testing.T) {
	service := newService()
	ctx := context.Background()

	tmpl := &template.Template{Name: "Sales", Kind: template.KindArtistSales, Body: templateBody}
	require.NoError(t, service.Create(ctx, tmpl))

	withTerms, err := service.Generate(ctx, tmpl.ID, template.GenerateInput{DealID: dealID})
	require.NoError(t, err)
	assert.Equal(t, "Sales deal v4", withTerms.Content)
	assert.True(t, withTerms.HasTerms)

	withoutTerms, err := service.Generate(ctx, tmpl.ID, template.GenerateInput{DealID: dealNoTerms})
	require.NoError(t, err)
	assert.Equal(t, "Sales deal", withoutTerms.Content)
	assert.False(t, withoutTerms.HasTerms)
}

func TestService_Generate_MissingDeal(t *testing.T) {
	service := newService()
	ctx := context.Background()

	tmpl := &template.Template{Name: "Sales", Body: templateBody}
	require.NoError(t, service.Create(ctx, tmpl))

	_, err := service.Generate(ctx, tmpl.ID, template.GenerateInput{DealID: missingDeal})

	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

func TestHandler_Generate(t *testing.T) {
	service := newService()
	tmpl := &template.Template{Name: "Sales", Body: templateBody}
	require.NoError(t, service.Create(context.Background(), tmpl))

	handler := template.NewHandler(service)
	request := httptest.NewRequest(http.MethodPost, "/"+tmpl.ID+"/generate", strings.NewReader(`{"deal_id":"`+dealID+`"}`))
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{
		UserID: managerID,
		Role:   string(sec.RoleManager),
	}))
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data template.Generated `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Sales deal v4", body.Data.Content)
}
