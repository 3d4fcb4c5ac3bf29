// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deliverable_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/harmonia/internal/deals/deliverable"
	"github.com/taibuivan/harmonia/pkg/date"
	"github.com/taibuivan/harmonia/pkg/pointer"
)

/*
TestPack_Expand checks due dates, the pack back-reference and item notes.
*/
func TestPack_Expand(t *testing.T) {
	pack := &deliverable.Pack{
		Name: "Album delivery",
		Items: []*deliverable.PackItem{
			{Name: "Masters (WAV)", Kind: deliverable.KindAudio, DueOffsetDays: pointer.To(14)},
			{Name: "Cover art", Kind: deliverable.KindArtwork, DueOffsetDays: pointer.To(0), Notes: pointer.To("3000x3000")},
			{Name: "Liner notes", Kind: deliverable.KindDocument},
		},
	}
	start := date.New(2026, time.February, 20)

	created := pack.Expand("deal-1", start)

	require.Len(t, created, 3)

	assert.Equal(t, "deal-1", created[0].DealID)
	assert.Equal(t, deliverable.StatusPending, created[0].Status)
	assert.Equal(t, "2026-03-06", created[0].DueDate.String())
	assert.Equal(t, "From pack: Album delivery", *created[0].Notes)

	assert.Equal(t, start, *created[1].DueDate)
	assert.Equal(t, "From pack: Album delivery\n3000x3000", *created[1].Notes)

	assert.Nil(t, created[2].DueDate)
}

func TestPackNote(t *testing.T) {
	assert.Equal(t, "From pack: Single", deliverable.PackNote("Single"))
}
