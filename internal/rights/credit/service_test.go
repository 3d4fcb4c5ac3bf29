// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package credit_test

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

	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/ctxutil"
	"github.com/taibuivan/harmonia/internal/platform/sec"
	"github.com/taibuivan/harmonia/internal/rights/credit"
	"github.com/taibuivan/harmonia/pkg/pointer"
)

const (
	recordingID = "01920000-0000-7000-8000-000000000002"
	entityID    = "01920000-0000-7000-8000-0000000000a1"
	missingID   = "01920000-0000-7000-8000-00000000ffff"
)

type fakeRepository struct {
	mu      sync.Mutex
	credits map[string]*credit.Credit
	order   []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{credits: map[string]*credit.Credit{}}
}

func (f *fakeRepository) ListBySubject(_ context.Context, subjectType credit.SubjectType, subjectID string) ([]*credit.Credit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := []*credit.Credit{}
	for _, id := range f.order {
		c, ok := f.credits[id]
		if ok && c.SubjectType == subjectType && c.SubjectID == subjectID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*credit.Credit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.credits[id]
	if !ok {
		return nil, apperr.NotFound("Credit")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeRepository) Create(_ context.Context, c *credit.Credit) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.credits[c.ID] = c
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, c *credit.Credit) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.credits[c.ID]; !ok {
		return apperr.NotFound("Credit")
	}
	f.credits[c.ID] = c
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.credits[id]; !ok {
		return apperr.NotFound("Credit")
	}
	delete(f.credits, id)
	return nil
}

func newService() *credit.Service {
	return credit.NewService(newFakeRepository(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_Create verifies that duplicate credits are allowed and input is validated.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()
	service := newService()

	input := credit.Input{EntityID: entityID, Role: credit.RoleProducer, CreditedAs: pointer.To("  ")}

	first, err := service.Create(ctx, credit.SubjectRecording, recordingID, input)
	require.NoError(t, err)
	assert.Nil(t, first.CreditedAs)

	_, err = service.Create(ctx, credit.SubjectRecording, recordingID, input)
	require.NoError(t, err)

	credits, err := service.List(ctx, credit.SubjectRecording, recordingID)
	require.NoError(t, err)
	assert.Len(t, credits, 2)

	points := credit.ShareKindPoints
	tests := []struct {
		name  string
		input credit.Input
	}{
		{"unknown role", credit.Input{EntityID: entityID, Role: "drummer"}},
		{"kind without value", credit.Input{EntityID: entityID, Role: credit.RoleMixingEngineer, ShareKind: &points}},
		{"value without kind", credit.Input{EntityID: entityID, Role: credit.RoleMixingEngineer, ShareValue: pointer.To(3.0)}},
		{"percentage above 100", credit.Input{
			EntityID: entityID, Role: credit.RoleProducer,
			ShareKind: pointer.To(credit.ShareKindPercentage), ShareValue: pointer.To(120.0),
		}},
		{"bad entity", credit.Input{EntityID: "nope", Role: credit.RoleProducer}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, credit.SubjectRecording, recordingID, tt.input)
			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"), "got %v", err)
		})
	}
}

/*
TestRoles verifies the published role list.
*/
func TestRoles(t *testing.T) {
	assert.Len(t, credit.Roles, 15)
	assert.Contains(t, credit.Roles, credit.RoleComposer)
}

/*
TestHandler_DeleteMissingCredit verifies that deleting an unknown credit
surfaces a 404 with a readable detail.
*/
func TestHandler_DeleteMissingCredit(t *testing.T) {
	handler := credit.NewHandler(newService())

	request := httptest.NewRequest(http.MethodDelete, "/"+missingID, nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{
		UserID: "staff-1",
		Role:   string(sec.RoleManager),
	}))
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Credit not found", body["detail"])
	assert.Equal(t, "NOT_FOUND", body["code"])
}

/*
TestHandler_ViewerCannotDelete verifies the role gate on mutations.
*/
func TestHandler_ViewerCannotDelete(t *testing.T) {
	handler := credit.NewHandler(newService())

	request := httptest.NewRequest(http.MethodDelete, "/"+missingID, nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{
		UserID: "staff-2",
		Role:   string(sec.RoleViewer),
	}))
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
