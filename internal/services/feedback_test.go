package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/smart-reviewer/internal/models"
	"github.com/localnerve/smart-reviewer/internal/services"
	"github.com/localnerve/smart-reviewer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateFeedbackUnknownOwner tests that feedback for an unknown opaque id violates the foreign key
func TestCreateFeedbackUnknownOwner(t *testing.T) {
	store, db, _ := newStore(t)

	_, err := store.CreateFeedback(context.Background(), services.FeedbackInput{
		UniqueID: "00000000-0000-4000-8000-000000000000",
		Rating:   4,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConstraint)

	var n int64
	require.NoError(t, db.Model(&models.Feedback{}).Count(&n).Error)
	assert.Zero(t, n)
}

// TestCreateFeedbackRatingBounds tests that ratings outside 1..5 are rejected
func TestCreateFeedbackRatingBounds(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()
	owner := createOwner(t, store, "rated")

	for _, rating := range []int{-1, 0, 6, 100} {
		_, err := store.CreateFeedback(ctx, services.FeedbackInput{UniqueID: owner.UniqueID, Rating: rating})
		assert.ErrorIs(t, err, types.ErrValidation, "rating %d", rating)
	}

	for rating := services.MinRating; rating <= services.MaxRating; rating++ {
		fb, err := store.CreateFeedback(ctx, services.FeedbackInput{UniqueID: owner.UniqueID, Rating: rating})
		require.NoError(t, err, "rating %d", rating)
		assert.Equal(t, rating, fb.Rating)
	}
}

// TestCreateFeedbackStoresFields tests that the review is stored as submitted with a UTC timestamp
func TestCreateFeedbackStoresFields(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()
	owner := createOwner(t, store, "fields")

	fb, err := store.CreateFeedback(ctx, services.FeedbackInput{
		UniqueID:     owner.UniqueID,
		CustomerName: "Meera",
		Rating:       5,
		Feedback:     "Spotless rooms",
	})
	require.NoError(t, err)
	assert.NotZero(t, fb.ID)
	assert.Equal(t, baseTime, fb.CreatedAt)

	reviews, err := store.ListOwnerReviews(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Meera", reviews[0].CustomerName)
	assert.Equal(t, "Spotless rooms", reviews[0].FeedbackText)
	assert.True(t, baseTime.Equal(reviews[0].CreatedAt))
}

// TestListOwnerReviewsIsolation tests that an owner only sees its own reviews, newest first
func TestListOwnerReviewsIsolation(t *testing.T) {
	store, _, clock := newStore(t)
	ctx := context.Background()

	mine := createOwner(t, store, "mine")
	theirs := createOwner(t, store, "theirs")

	submitFeedback(t, store, mine.UniqueID, 3)
	clock.Advance(time.Hour)
	submitFeedback(t, store, mine.UniqueID, 5)
	submitFeedback(t, store, theirs.UniqueID, 1)

	reviews, err := store.ListOwnerReviews(ctx, mine.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, 3, reviews[1].Rating)
	for _, r := range reviews {
		assert.Equal(t, mine.UniqueID, r.UniqueID)
	}

	none, err := store.ListOwnerReviews(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

// TestListAllReviews tests the admin listing with property names
func TestListAllReviews(t *testing.T) {
	store, _, clock := newStore(t)
	ctx := context.Background()

	a := createOwner(t, store, "alpha")
	b := createOwner(t, store, "beta")
	submitFeedback(t, store, a.UniqueID, 2)
	clock.Advance(time.Minute)
	submitFeedback(t, store, b.UniqueID, 4)

	reviews, err := store.ListAllReviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, b.PropertyName, reviews[0].PropertyName)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, "Lovely stay", reviews[0].Feedback)
	assert.Equal(t, a.PropertyName, reviews[1].PropertyName)
}
