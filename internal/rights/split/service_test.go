// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package split_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/rights/split"
	"github.com/taibuivan/harmonia/pkg/pointer"
)

const (
	workID    = "01920000-0000-7000-8000-000000000001"
	entityA   = "01920000-0000-7000-8000-0000000000a1"
	entityB   = "01920000-0000-7000-8000-0000000000b2"
	missingID = "01920000-0000-7000-8000-00000000ffff"
)

type fakeRepository struct {
	mu       sync.Mutex
	shares   map[string]*split.Share
	replaced int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{shares: map[string]*split.Share{}}
}

func (f *fakeRepository) ListBucket(_ context.Context, bucket split.Bucket) ([]*split.Share, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := []*split.Share{}
	for _, share := range f.shares {
		if share.Bucket() == bucket {
			copied := *share
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*split.Share, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	share, ok := f.shares[id]
	if !ok {
		return nil, apperr.NotFound("Share")
	}
	copied := *share
	return &copied, nil
}

func (f *fakeRepository) Create(_ context.Context, share *split.Share) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	share.CreatedAt = time.Now()
	share.UpdatedAt = share.CreatedAt
	copied := *share
	f.shares[share.ID] = &copied
	return nil
}

func (f *fakeRepository) Update(_ context.Context, share *split.Share) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.shares[share.ID]; !ok {
		return apperr.NotFound("Share")
	}
	copied := *share
	f.shares[share.ID] = &copied
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.shares[id]; !ok {
		return apperr.NotFound("Share")
	}
	delete(f.shares, id)
	return nil
}

func (f *fakeRepository) ReplaceBucket(_ context.Context, bucket split.Bucket, shares []*split.Share) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, share := range f.shares {
		if share.Bucket() == bucket {
			delete(f.shares, id)
		}
	}
	for _, share := range shares {
		copied := *share
		f.shares[share.ID] = &copied
	}
	f.replaced++
	return nil
}

func newService(repo split.Repository, enforce bool) *split.Service {
	return split.NewService(repo, enforce, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var writerBucket = split.Bucket{SubjectType: split.SubjectWork, SubjectID: workID, RightType: split.RightWriter}

/*
TestService_CreateShare covers defaults and validation of single share creation.
*/
func TestService_CreateShare(t *testing.T) {
	ctx := context.Background()
	service := newService(newFakeRepository(), false)

	t.Run("defaults territory to Worldwide", func(t *testing.T) {
		share, err := service.CreateShare(ctx, writerBucket, split.ShareInput{
			EntityID:        entityA,
			SharePercentage: pointer.To(60.0),
			Territory:       pointer.To("  "),
		})
		require.NoError(t, err)
		assert.Equal(t, "Worldwide", share.Territory)
		assert.False(t, share.Locked)
		assert.NotEmpty(t, share.ID)
	})

	t.Run("incomplete bucket is accepted", func(t *testing.T) {
		breakdown, err := service.Breakdown(ctx, writerBucket)
		require.NoError(t, err)
		assert.Equal(t, split.StatusWarning, breakdown.Summary.Status)
		assert.InDelta(t, -40, breakdown.Summary.Delta, 1e-9)
	})

	tests := []struct {
		name   string
		bucket split.Bucket
		input  split.ShareInput
	}{
		{"percentage above 100", writerBucket, split.ShareInput{EntityID: entityA, SharePercentage: pointer.To(100.5)}},
		{"negative percentage", writerBucket, split.ShareInput{EntityID: entityA, SharePercentage: pointer.To(-1.0)}},
		{"missing percentage", writerBucket, split.ShareInput{EntityID: entityA}},
		{"entity not a uuid", writerBucket, split.ShareInput{EntityID: "abc", SharePercentage: pointer.To(10.0)}},
		{"master on a work", split.Bucket{SubjectType: split.SubjectWork, SubjectID: workID, RightType: split.RightMaster},
			split.ShareInput{EntityID: entityA, SharePercentage: pointer.To(10.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateShare(ctx, tt.bucket, tt.input)
			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"), "got %v", err)
		})
	}
}

/*
TestService_LockedShares verifies that locked shares cannot change percentage or be deleted.
*/
func TestService_LockedShares(t *testing.T) {
	ctx := context.Background()
	service := newService(newFakeRepository(), false)

	locked, err := service.CreateShare(ctx, writerBucket, split.ShareInput{
		EntityID:        entityA,
		SharePercentage: pointer.To(50.0),
		Locked:          pointer.To(true),
	})
	require.NoError(t, err)

	_, err = service.UpdateShare(ctx, locked.ID, split.ShareInput{SharePercentage: pointer.To(40.0)})
	assert.ErrorIs(t, err, split.ErrLocked)

	err = service.DeleteShare(ctx, locked.ID)
	assert.ErrorIs(t, err, split.ErrLocked)

	updated, err := service.UpdateShare(ctx, locked.ID, split.ShareInput{Territory: pointer.To("JP")})
	require.NoError(t, err)
	assert.Equal(t, "JP", updated.Territory)

	unlocked, err := service.UpdateShare(ctx, locked.ID, split.ShareInput{
		SharePercentage: pointer.To(40.0),
		Locked:          pointer.To(false),
	})
	require.NoError(t, err)
	assert.InDelta(t, 40.0, unlocked.SharePercentage, 1e-9)
	assert.False(t, unlocked.Locked)

	require.NoError(t, service.DeleteShare(ctx, locked.ID))

	err = service.DeleteShare(ctx, missingID)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

/*
TestService_ReplaceBucket covers identity preservation and the locked-share guard.
*/
func TestService_ReplaceBucket(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := newService(repo, false)

	locked, err := service.CreateShare(ctx, writerBucket, split.ShareInput{
		EntityID:        entityA,
		SharePercentage: pointer.To(50.0),
		Locked:          pointer.To(true),
	})
	require.NoError(t, err)

	t.Run("dropping a locked share conflicts", func(t *testing.T) {
		_, err := service.ReplaceBucket(ctx, writerBucket, []split.ShareInput{
			{EntityID: entityB, SharePercentage: pointer.To(100.0)},
		})
		assert.ErrorIs(t, err, split.ErrLocked)
		assert.Zero(t, repo.replaced)
	})

	t.Run("changing a locked percentage conflicts", func(t *testing.T) {
		_, err := service.ReplaceBucket(ctx, writerBucket, []split.ShareInput{
			{ID: locked.ID, EntityID: entityA, SharePercentage: pointer.To(30.0)},
			{EntityID: entityB, SharePercentage: pointer.To(70.0)},
		})
		assert.ErrorIs(t, err, split.ErrLocked)
	})

	t.Run("keeps locked share and adds new ones", func(t *testing.T) {
		breakdown, err := service.ReplaceBucket(ctx, writerBucket, []split.ShareInput{
			{ID: locked.ID, EntityID: entityA, SharePercentage: pointer.To(50.0)},
			{EntityID: entityB, SharePercentage: pointer.To(50.0)},
		})
		require.NoError(t, err)
		assert.Equal(t, split.StatusSuccess, breakdown.Summary.Status)
		require.Len(t, breakdown.Shares, 2)
		assert.Equal(t, locked.ID, breakdown.Shares[0].ID)
		assert.True(t, breakdown.Shares[0].Locked)

		stored, err := service.ListBucket(ctx, writerBucket)
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})
}

/*
TestService_ReplaceBucket_EnforceTotal verifies the optional 100% enforcement.
*/
func TestService_ReplaceBucket_EnforceTotal(t *testing.T) {
	ctx := context.Background()

	incomplete := []split.ShareInput{
		{EntityID: entityA, SharePercentage: pointer.To(60.0)},
		{EntityID: entityB, SharePercentage: pointer.To(30.0)},
	}

	relaxed := newService(newFakeRepository(), false)
	breakdown, err := relaxed.ReplaceBucket(ctx, writerBucket, incomplete)
	require.NoError(t, err)
	assert.InDelta(t, -10, breakdown.Summary.Delta, 1e-9)

	strict := newService(newFakeRepository(), true)
	_, err = strict.ReplaceBucket(ctx, writerBucket, incomplete)
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	_, err = strict.ReplaceBucket(ctx, writerBucket, []split.ShareInput{
		{EntityID: entityA, SharePercentage: pointer.To(60.0)},
		{EntityID: entityB, SharePercentage: pointer.To(40.0)},
	})
	assert.NoError(t, err)
}

/*
TestService_RoundsToStoredPrecision verifies that responses carry the two
decimals the column keeps.
*/
func TestService_RoundsToStoredPrecision(t *testing.T) {
	ctx := context.Background()
	service := newService(newFakeRepository(), false)

	created, err := service.CreateShare(ctx, writerBucket, split.ShareInput{
		EntityID:        entityA,
		SharePercentage: pointer.To(33.3333),
	})
	require.NoError(t, err)
	assert.Equal(t, 33.33, created.SharePercentage)

	breakdown, err := service.ReplaceBucket(ctx, writerBucket, []split.ShareInput{
		{EntityID: entityA, SharePercentage: pointer.To(60.004)},
		{EntityID: entityB, SharePercentage: pointer.To(39.996)},
	})
	require.NoError(t, err)
	require.Len(t, breakdown.Shares, 2)
	assert.Equal(t, 60.0, breakdown.Shares[0].SharePercentage)
	assert.Equal(t, 40.0, breakdown.Shares[1].SharePercentage)
	assert.Equal(t, split.StatusSuccess, breakdown.Summary.Status)

	updated, err := service.UpdateShare(ctx, breakdown.Shares[0].ID, split.ShareInput{SharePercentage: pointer.To(59.999)})
	require.NoError(t, err)
	assert.Equal(t, 60.0, updated.SharePercentage)
}
