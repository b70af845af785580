package database_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/localnerve/smart-reviewer/internal/database"
	"github.com/localnerve/smart-reviewer/internal/services"
	"github.com/localnerve/smart-reviewer/internal/testutil"
	"github.com/localnerve/smart-reviewer/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWithContainerDatabase runs the store against a real server started from DB_IMAGE (postgres or mysql)
func TestWithContainerDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if os.Getenv("DB_IMAGE") == "" {
		t.Skip("DB_IMAGE not set")
	}

	tc, err := testutil.StartDatabase(t)
	require.NoError(t, err)
	defer tc.Terminate(t)

	tc.Config.BcryptCost = 4
	db, err := database.Connect(tc.Config, zerolog.Nop())
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.AutoMigrate(db))

	store := services.NewStore(db, services.FromConfig(tc.Config)...)
	ctx := context.Background()

	hash, err := store.HashPassword("s3cret-pass")
	require.NoError(t, err)

	owner, err := store.CreateOwner(ctx, services.OwnerInput{
		OwnerProfile: services.OwnerProfile{
			OwnerName:    "Asha Rao",
			PropertyName: "Lakeview Homestay",
		},
		Username:     "lakeview",
		PasswordHash: hash,
	})
	require.NoError(t, err)

	t.Run("DuplicateLogin", func(t *testing.T) {
		_, err := store.CreateOwner(ctx, services.OwnerInput{
			OwnerProfile: services.OwnerProfile{OwnerName: "Other", PropertyName: "Other"},
			Username:     "lakeview",
			PasswordHash: hash,
		})
		assert.ErrorIs(t, err, types.ErrConflict)

		owners, err := store.ListOwners(ctx)
		require.NoError(t, err)
		assert.Len(t, owners, 1)
	})

	t.Run("UnknownOwnerFeedback", func(t *testing.T) {
		_, err := store.CreateFeedback(ctx, services.FeedbackInput{
			UniqueID: "00000000-0000-4000-8000-000000000000",
			Rating:   3,
		})
		assert.ErrorIs(t, err, types.ErrConstraint)
	})

	t.Run("ConcurrentEvents", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make(chan error, 20)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- store.RecordAnalyticsEvent(ctx, owner.UniqueID, services.EventScan)
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		counts, err := store.DailyAnalyticsCounts(ctx, owner.ID, services.EventScan, 0)
		require.NoError(t, err)
		require.Len(t, counts, 1)
		assert.Equal(t, int64(20), counts[0].Count)
	})

	t.Run("Dashboard", func(t *testing.T) {
		for _, rating := range []int{5, 4} {
			_, err := store.CreateFeedback(ctx, services.FeedbackInput{UniqueID: owner.UniqueID, Rating: rating})
			require.NoError(t, err)
		}

		dash, err := store.Dashboard(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lakeview Homestay", dash.BusinessName)
		assert.Len(t, dash.Reviews, 2)
		require.Len(t, dash.DailyReviews, 1)
		assert.Equal(t, int64(2), dash.DailyReviews[0].Count)
	})

	t.Run("Authenticate", func(t *testing.T) {
		p, err := store.Authenticate(ctx, "lakeview", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, owner.ID, p.OwnerID)
		assert.True(t, p.FirstLogin)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.DeleteOwner(ctx, owner.ID))

		_, err := store.GetOwnerByUniqueID(ctx, owner.UniqueID)
		assert.ErrorIs(t, err, types.ErrNotFound)

		reviews, err := store.ListAllReviews(ctx)
		require.NoError(t, err)
		assert.Empty(t, reviews)
	})
}
