package journal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadbook/roadbook/internal/journal"
)

func TestRole_Can(t *testing.T) {
	assert.True(t, journal.RoleAdmin.Can(journal.CapListAccounts))
	assert.False(t, journal.RoleUser.Can(journal.CapListAccounts))

	// Unrestricted capabilities are granted to every role.
	assert.True(t, journal.RoleUser.Can(journal.Capability("roadtrips:create")))
}

func TestLandmark_ReviewLookups(t *testing.T) {
	lm := journal.Landmark{
		ID:   "lm-1",
		Name: "Pont du Gard",
		Reviews: []journal.Review{
			{ID: "rev-1", Reviewer: "alice", Rating: 5},
			{ID: "rev-2", Reviewer: "bob", Rating: 3},
		},
	}

	got := lm.ReviewByID("rev-2")
	require.NotNil(t, got)
	assert.Equal(t, "bob", got.Reviewer)
	assert.Nil(t, lm.ReviewByID("rev-9"))

	got = lm.ReviewByReviewer("alice")
	require.NotNil(t, got)
	assert.Equal(t, "rev-1", got.ID)
	assert.Nil(t, lm.ReviewByReviewer("ghost"))
}

func TestMagazine_HasRoadtrip(t *testing.T) {
	mag := journal.Magazine{RoadtripIDs: []string{"rt-1", "rt-2"}}

	assert.True(t, mag.HasRoadtrip("rt-2"))
	assert.False(t, mag.HasRoadtrip("rt-9"))
}
