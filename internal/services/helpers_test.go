package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/smart-reviewer/internal/models"
	"github.com/localnerve/smart-reviewer/internal/services"
	"github.com/localnerve/smart-reviewer/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// 2026-10-15 10:00 at UTC+05:30
var baseTime = time.Date(2026, 10, 15, 4, 30, 0, 0, time.UTC)

func newStore(t *testing.T) (*services.Store, *gorm.DB, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(baseTime)
	store, db := testutil.NewTestStore(t, services.WithClock(clock.Now))
	return store, db, clock
}

func ownerInput(username string) services.OwnerInput {
	return services.OwnerInput{
		OwnerProfile: services.OwnerProfile{
			OwnerName:             "Asha Rao",
			PropertyName:          "Lakeview Homestay " + username,
			PropertyAddress:       "12 Lake Road",
			GoogleMapLink:         "https://maps.google.com/?cid=123",
			ContactNumber:         "+919800000000",
			CustomFeedbackMessage: "Thanks for staying with us",
		},
		Username:     username,
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderpla",
	}
}

func createOwner(t *testing.T, store *services.Store, username string) *models.Owner {
	t.Helper()
	owner, err := store.CreateOwner(context.Background(), ownerInput(username))
	require.NoError(t, err)
	return owner
}

func createOwnerWithPassword(t *testing.T, store *services.Store, username, password string) *models.Owner {
	t.Helper()
	hash, err := store.HashPassword(password)
	require.NoError(t, err)
	in := ownerInput(username)
	in.PasswordHash = hash
	owner, err := store.CreateOwner(context.Background(), in)
	require.NoError(t, err)
	return owner
}

func submitFeedback(t *testing.T, store *services.Store, uniqueID string, rating int) {
	t.Helper()
	_, err := store.CreateFeedback(context.Background(), services.FeedbackInput{
		UniqueID:     uniqueID,
		CustomerName: "Guest",
		Rating:       rating,
		Feedback:     "Lovely stay",
	})
	require.NoError(t, err)
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}
