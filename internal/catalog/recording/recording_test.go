// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recording_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/harmonia/internal/catalog/recording"
	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/rights/credit"
	"github.com/taibuivan/harmonia/internal/rights/split"
	"github.com/taibuivan/harmonia/pkg/pointer"
)

/*
TestNormalizeISRC verifies the compact 12 character form.
*/
func TestNormalizeISRC(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"US-S1Z-99-00001", "USS1Z9900001", true},
		{"gbaym0100001", "GBAYM0100001", true},
		{"US-S1Z-99-0001", "", false},
		{"1S-S1Z-99-00001", "", false},
		{"US-S1Z-9A-00001", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := recording.NormalizeISRC(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

type memoryRepository struct {
	recordings map[string]*recording.Recording
}

func (m *memoryRepository) List(context.Context, recording.Filter, int, int) ([]*recording.Recording, int, error) {
	return nil, 0, nil
}

func (m *memoryRepository) FindByID(_ context.Context, id string) (*recording.Recording, error) {
	if r, ok := m.recordings[id]; ok {
		return r, nil
	}
	return nil, apperr.NotFound("Recording")
}

func (m *memoryRepository) Create(_ context.Context, r *recording.Recording) error {
	m.recordings[r.ID] = r
	return nil
}

func (m *memoryRepository) Update(_ context.Context, r *recording.Recording) error {
	m.recordings[r.ID] = r
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	delete(m.recordings, id)
	return nil
}

type masterSplits struct{ percentages []float64 }

func (m masterSplits) Breakdown(_ context.Context, bucket split.Bucket) (*split.Breakdown, error) {
	shares := []*split.Share{}
	for _, p := range m.percentages {
		shares = append(shares, &split.Share{SharePercentage: p})
	}
	return &split.Breakdown{Bucket: bucket, Shares: shares, Summary: split.Summarize(shares)}, nil
}

type noCredits struct{}

func (noCredits) List(context.Context, credit.SubjectType, string) ([]*credit.Credit, error) {
	return []*credit.Credit{}, nil
}

/*
TestService_GetDetail verifies that the master bucket summary is embedded.
*/
func TestService_GetDetail(t *testing.T) {
	ctx := context.Background()
	service := recording.NewService(
		&memoryRepository{recordings: map[string]*recording.Recording{}},
		masterSplits{percentages: []float64{70, 20}},
		noCredits{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	created := &recording.Recording{Title: "Blue Hour (Live)", ISRC: pointer.To("us-s1z-99-00001")}
	require.NoError(t, service.Create(ctx, created))
	assert.Equal(t, "USS1Z9900001", *created.ISRC)

	detail, err := service.GetDetail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, split.RightMaster, detail.MasterSplits.RightType)
	assert.InDelta(t, -10, detail.MasterSplits.Summary.Delta, 1e-9)
	assert.Empty(t, detail.Credits)

	err = service.Create(ctx, &recording.Recording{Title: "X", DurationSeconds: pointer.To(0)})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
}
