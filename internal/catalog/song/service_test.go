// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/harmonia/internal/catalog/song"
	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/pkg/pointer"
)

type fakeRepository struct {
	mu    sync.Mutex
	songs map[string]*song.Song
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{songs: map[string]*song.Song{}}
}

func (f *fakeRepository) List(_ context.Context, filter song.Filter, limit, offset int) ([]*song.Song, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := []*song.Song{}
	for _, s := range f.songs {
		if filter.Status == "" || s.Status == filter.Status {
			result = append(result, s)
		}
	}
	return result, len(result), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*song.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s, ok := f.songs[id]; ok && s.DeletedAt == nil {
		copied := *s
		return &copied, nil
	}
	return nil, apperr.NotFound("Song")
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*song.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.songs {
		if s.Slug == slug {
			copied := *s
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Song")
}

func (f *fakeRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.songs {
		if s.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Create(_ context.Context, s *song.Song) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *s
	f.songs[s.ID] = &copied
	return nil
}

func (f *fakeRepository) Update(_ context.Context, s *song.Song) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *s
	f.songs[s.ID] = &copied
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.songs[id]; !ok {
		return apperr.NotFound("Song")
	}
	delete(f.songs, id)
	return nil
}

func newService() *song.Service {
	return song.NewService(newFakeRepository(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_CreateSlugs verifies slug derivation and suffixing of taken slugs.
*/
func TestService_CreateSlugs(t *testing.T) {
	ctx := context.Background()
	service := newService()

	first := &song.Song{Title: "Midnight Drive", Genre: pointer.To(" ")}
	require.NoError(t, service.Create(ctx, first))
	assert.Equal(t, "midnight-drive", first.Slug)
	assert.Equal(t, song.StatusDraft, first.Status)
	assert.Nil(t, first.Genre)

	second := &song.Song{Title: "Midnight  Drive!"}
	require.NoError(t, service.Create(ctx, second))
	assert.Equal(t, "midnight-drive-2", second.Slug)

	bySlug, err := service.Get(ctx, "midnight-drive-2")
	require.NoError(t, err)
	assert.Equal(t, second.ID, bySlug.ID)

	byID, err := service.Get(ctx, strings.ToUpper(first.ID))
	require.NoError(t, err)
	assert.Equal(t, first.Slug, byID.Slug)
}

/*
TestService_Update covers slug conflicts and status validation.
*/
func TestService_Update(t *testing.T) {
	ctx := context.Background()
	service := newService()

	a := &song.Song{Title: "Alpha"}
	b := &song.Song{Title: "Beta"}
	require.NoError(t, service.Create(ctx, a))
	require.NoError(t, service.Create(ctx, b))

	err := service.Update(ctx, b.ID, &song.Song{Title: "Beta", Slug: "alpha"})
	assert.True(t, apperr.HasCode(err, "CONFLICT"))

	err = service.Update(ctx, b.ID, &song.Song{Title: "Beta", Status: "released"})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	update := &song.Song{Title: "Beta (Remastered)", Status: song.StatusActive}
	require.NoError(t, service.Update(ctx, b.ID, update))
	assert.Equal(t, "beta", update.Slug)
	assert.Equal(t, song.StatusActive, update.Status)

	require.NoError(t, service.Delete(ctx, a.ID))
	_, err = service.Get(ctx, a.ID)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}
