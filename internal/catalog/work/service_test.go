// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/harmonia/internal/catalog/work"
	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/ctxutil"
	"github.com/taibuivan/harmonia/internal/platform/sec"
	"github.com/taibuivan/harmonia/internal/rights/credit"
	"github.com/taibuivan/harmonia/internal/rights/split"
	"github.com/taibuivan/harmonia/pkg/pointer"
)

type fakeRepository struct {
	mu    sync.Mutex
	works map[string]*work.Work
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{works: map[string]*work.Work{}}
}

func (f *fakeRepository) List(_ context.Context, _ work.Filter, _, _ int) ([]*work.Work, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := []*work.Work{}
	for _, w := range f.works {
		result = append(result, w)
	}
	return result, len(result), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*work.Work, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w, ok := f.works[id]
	if !ok {
		return nil, apperr.NotFound("Work")
	}
	copied := *w
	return &copied, nil
}

func (f *fakeRepository) Create(_ context.Context, w *work.Work) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *w
	f.works[w.ID] = &copied
	return nil
}

func (f *fakeRepository) Update(_ context.Context, w *work.Work) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.works[w.ID]; !ok {
		return apperr.NotFound("Work")
	}
	copied := *w
	f.works[w.ID] = &copied
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.works[id]; !ok {
		return apperr.NotFound("Work")
	}
	delete(f.works, id)
	return nil
}

type stubSplits struct{}

func (stubSplits) Breakdown(_ context.Context, bucket split.Bucket) (*split.Breakdown, error) {
	shares := []*split.Share{{SharePercentage: 50}}
	if bucket.RightType == split.RightPublisher {
		shares = append(shares, &split.Share{SharePercentage: 50})
	}
	return &split.Breakdown{Bucket: bucket, Shares: shares, Summary: split.Summarize(shares)}, nil
}

type stubCredits struct{}

func (stubCredits) List(_ context.Context, subjectType credit.SubjectType, subjectID string) ([]*credit.Credit, error) {
	return []*credit.Credit{{SubjectType: subjectType, SubjectID: subjectID, Role: credit.RoleComposer}}, nil
}

func newService(repo work.Repository) *work.Service {
	return work.NewService(repo, stubSplits{}, stubCredits{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_CreateOnlyTitle verifies that blank optional fields are not stored.
*/
func TestService_CreateOnlyTitle(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := newService(repo)

	created := &work.Work{
		Title:          "  Blue Hour ",
		ISWC:           pointer.To(""),
		AlternateTitle: pointer.To("   "),
		Language:       pointer.To("\t"),
	}
	require.NoError(t, service.Create(ctx, created))

	stored, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Hour", stored.Title)
	assert.Nil(t, stored.SongID)
	assert.Nil(t, stored.ISWC)
	assert.Nil(t, stored.AlternateTitle)
	assert.Nil(t, stored.Language)
	assert.Nil(t, stored.Genre)
	assert.Nil(t, stored.Notes)
}

/*
TestService_CreateValidation covers required title and ISWC checks.
*/
func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	service := newService(newFakeRepository())

	err := service.Create(ctx, &work.Work{Title: " "})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	err = service.Create(ctx, &work.Work{Title: "X", ISWC: pointer.To("T-034.524.680-2")})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	valid := &work.Work{Title: "X", ISWC: pointer.To("T-034.524.680-1")}
	require.NoError(t, service.Create(ctx, valid))
	assert.Equal(t, "T0345246801", *valid.ISWC)
}

/*
TestHandler_GetWork verifies the embedded splits and the echoed view mode.
*/
func TestHandler_GetWork(t *testing.T) {
	ctx := context.Background()
	service := newService(newFakeRepository())

	created := &work.Work{Title: "Blue Hour"}
	require.NoError(t, service.Create(ctx, created))

	request := httptest.NewRequest(http.MethodGet, "/"+created.ID+"?view=edit", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{
		UserID: "staff-1",
		Role:   string(sec.RoleViewer),
	}))
	recorder := httptest.NewRecorder()
	work.NewHandler(service).Routes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			Title        string `json:"title"`
			WriterSplits struct {
				Summary split.Summary `json:"summary"`
			} `json:"writer_splits"`
			PublisherSplits struct {
				Summary split.Summary `json:"summary"`
			} `json:"publisher_splits"`
			Credits []credit.Credit `json:"credits"`
		} `json:"data"`
		Meta work.ViewMeta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, "Blue Hour", body.Data.Title)
	assert.Equal(t, split.StatusWarning, body.Data.WriterSplits.Summary.Status)
	assert.Equal(t, split.StatusSuccess, body.Data.PublisherSplits.Summary.Status)
	assert.Len(t, body.Data.Credits, 1)
	assert.Equal(t, work.ViewEdit, body.Meta.View)
	assert.False(t, body.Meta.CanEdit)
}
