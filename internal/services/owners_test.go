package services_test

import (
	"context"
	"testing"

	"github.com/localnerve/smart-reviewer/internal/models"
	"github.com/localnerve/smart-reviewer/internal/services"
	"github.com/localnerve/smart-reviewer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateOwnerAssignsUniqueIDs tests that every owner gets a distinct opaque id
func TestCreateOwnerAssignsUniqueIDs(t *testing.T) {
	store, db, _ := newStore(t)

	seen := make(map[string]bool)
	for _, username := range []string{"a", "b", "c", "d", "e"} {
		owner := createOwner(t, store, username)
		assert.NotZero(t, owner.ID)
		assert.Len(t, owner.UniqueID, 36)
		assert.NotEqual(t, "", owner.UniqueID)
		assert.False(t, seen[owner.UniqueID], "duplicate opaque id %s", owner.UniqueID)
		seen[owner.UniqueID] = true
	}

	var creds []models.Credential
	require.NoError(t, db.Find(&creds).Error)
	assert.Len(t, creds, 5)
	for _, cred := range creds {
		assert.True(t, cred.FirstLogin)
	}
}

// TestCreateOwnerDuplicateLogin tests that a reused login is a conflict and nothing is left behind
func TestCreateOwnerDuplicateLogin(t *testing.T) {
	store, db, _ := newStore(t)
	ctx := context.Background()

	createOwner(t, store, "shared")

	_, err := store.CreateOwner(ctx, ownerInput("shared"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConflict)

	var owners int64
	require.NoError(t, db.Model(&models.Owner{}).Count(&owners).Error)
	assert.Equal(t, int64(1), owners, "the second owner row must be rolled back")
}

// TestCreateOwnerValidation tests that missing fields are rejected before touching the store
func TestCreateOwnerValidation(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*services.OwnerInput)
	}{
		{"missing owner name", func(in *services.OwnerInput) { in.OwnerName = "" }},
		{"missing property name", func(in *services.OwnerInput) { in.PropertyName = "" }},
		{"missing username", func(in *services.OwnerInput) { in.Username = "" }},
		{"missing password hash", func(in *services.OwnerInput) { in.PasswordHash = "" }},
		{"bad map link", func(in *services.OwnerInput) { in.GoogleMapLink = "not a url" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ownerInput("valid")
			tt.mutate(&in)
			_, err := store.CreateOwner(ctx, in)
			assert.ErrorIs(t, err, types.ErrValidation)
		})
	}
}

// TestListOwners tests login and review counts, newest first
func TestListOwners(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()

	first := createOwner(t, store, "first")
	second := createOwner(t, store, "second")
	submitFeedback(t, store, first.UniqueID, 5)
	submitFeedback(t, store, first.UniqueID, 4)

	owners, err := store.ListOwners(ctx)
	require.NoError(t, err)
	require.Len(t, owners, 2)

	assert.Equal(t, second.ID, owners[0].ID)
	assert.Equal(t, "second", owners[0].Username)
	assert.Equal(t, int64(0), owners[0].ReviewCount)

	assert.Equal(t, first.ID, owners[1].ID)
	assert.Equal(t, first.UniqueID, owners[1].UniqueID)
	assert.Equal(t, "first", owners[1].Username)
	assert.Equal(t, int64(2), owners[1].ReviewCount)
	assert.Equal(t, "Asha Rao", owners[1].OwnerName)
}

// TestListOwnersEmpty tests that an empty store lists nothing rather than nil
func TestListOwnersEmpty(t *testing.T) {
	store, _, _ := newStore(t)

	owners, err := store.ListOwners(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, owners)
	assert.Empty(t, owners)
}

// TestUpdateOwnerProfileOnly tests that a profile-only update keeps the login and hash
func TestUpdateOwnerProfileOnly(t *testing.T) {
	store, db, _ := newStore(t)
	ctx := context.Background()

	owner := createOwner(t, store, "keeper")
	var before models.Credential
	require.NoError(t, db.Where("business_id = ?", owner.ID).Take(&before).Error)

	profile := ownerInput("keeper").OwnerProfile
	profile.PropertyName = "Renamed Retreat"
	require.NoError(t, store.UpdateOwner(ctx, owner.ID, services.OwnerUpdate{Profile: profile}))

	got, err := store.GetOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Retreat", got.PropertyName)
	assert.Equal(t, owner.UniqueID, got.UniqueID)

	var after models.Credential
	require.NoError(t, db.Where("business_id = ?", owner.ID).Take(&after).Error)
	assert.Equal(t, before.Username, after.Username)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

// TestUpdateOwnerCredentialBranches tests each combination of supplied credential fields
func TestUpdateOwnerCredentialBranches(t *testing.T) {
	store, db, _ := newStore(t)
	ctx := context.Background()

	owner := createOwner(t, store, "branchy")
	profile := ownerInput("branchy").OwnerProfile

	credential := func() models.Credential {
		var cred models.Credential
		require.NoError(t, db.Where("business_id = ?", owner.ID).Take(&cred).Error)
		return cred
	}
	original := credential()

	// login only
	require.NoError(t, store.UpdateOwner(ctx, owner.ID, services.OwnerUpdate{
		Profile:  profile,
		Username: types.Some("renamed"),
	}))
	cred := credential()
	assert.Equal(t, "renamed", cred.Username)
	assert.Equal(t, original.PasswordHash, cred.PasswordHash)

	// hash only
	require.NoError(t, store.UpdateOwner(ctx, owner.ID, services.OwnerUpdate{
		Profile:      profile,
		PasswordHash: types.Some("new-hash"),
	}))
	cred = credential()
	assert.Equal(t, "renamed", cred.Username)
	assert.Equal(t, "new-hash", cred.PasswordHash)

	// both
	require.NoError(t, store.UpdateOwner(ctx, owner.ID, services.OwnerUpdate{
		Profile:      profile,
		Username:     types.Some("both"),
		PasswordHash: types.Some("both-hash"),
	}))
	cred = credential()
	assert.Equal(t, "both", cred.Username)
	assert.Equal(t, "both-hash", cred.PasswordHash)
}

// TestUpdateOwnerNotFound tests that updating a missing id reports not found
func TestUpdateOwnerNotFound(t *testing.T) {
	store, _, _ := newStore(t)

	err := store.UpdateOwner(context.Background(), 999, services.OwnerUpdate{Profile: ownerInput("x").OwnerProfile})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

// TestUpdateOwnerLoginConflict tests that taking another owner's login is a conflict and rolls back the profile
func TestUpdateOwnerLoginConflict(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()

	createOwner(t, store, "taken")
	owner := createOwner(t, store, "mine")

	profile := ownerInput("mine").OwnerProfile
	profile.PropertyName = "Should Not Stick"
	err := store.UpdateOwner(ctx, owner.ID, services.OwnerUpdate{
		Profile:  profile,
		Username: types.Some("taken"),
	})
	assert.ErrorIs(t, err, types.ErrConflict)

	got, err := store.GetOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.PropertyName, got.PropertyName)
}

// TestDeleteOwnerCascade tests that deleting an owner removes every dependent row
func TestDeleteOwnerCascade(t *testing.T) {
	store, db, _ := newStore(t)
	ctx := context.Background()

	owner := createOwner(t, store, "doomed")
	other := createOwner(t, store, "survivor")
	submitFeedback(t, store, owner.UniqueID, 5)
	submitFeedback(t, store, other.UniqueID, 3)
	require.NoError(t, store.RecordAnalyticsEvent(ctx, owner.UniqueID, services.EventScan))
	require.NoError(t, store.RecordAnalyticsEvent(ctx, other.UniqueID, services.EventRedirect))

	require.NoError(t, store.DeleteOwner(ctx, owner.ID))

	count := func(model interface{}, where string, arg interface{}) int64 {
		var n int64
		require.NoError(t, db.Model(model).Where(where, arg).Count(&n).Error)
		return n
	}
	assert.Zero(t, count(&models.Owner{}, "id = ?", owner.ID))
	assert.Zero(t, count(&models.Credential{}, "business_id = ?", owner.ID))
	assert.Zero(t, count(&models.Feedback{}, "unique_id = ?", owner.UniqueID))
	assert.Zero(t, count(&models.DailyAnalytics{}, "unique_id = ?", owner.UniqueID))

	assert.Equal(t, int64(1), count(&models.Owner{}, "id = ?", other.ID))
	assert.Equal(t, int64(1), count(&models.Credential{}, "business_id = ?", other.ID))
	assert.Equal(t, int64(1), count(&models.Feedback{}, "unique_id = ?", other.UniqueID))
	assert.Equal(t, int64(1), count(&models.DailyAnalytics{}, "unique_id = ?", other.UniqueID))

	_, err := store.GetOwnerByUniqueID(ctx, owner.UniqueID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

// TestDeleteOwnerMissingIsNoop tests that deleting an unknown id succeeds
func TestDeleteOwnerMissingIsNoop(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()

	createOwner(t, store, "bystander")

	assert.NoError(t, store.DeleteOwner(ctx, 424242))
	assert.NoError(t, store.DeleteOwner(ctx, 424242))

	owners, err := store.ListOwners(ctx)
	require.NoError(t, err)
	assert.Len(t, owners, 1)
}

// TestGetOwner tests lookups by internal and opaque id
func TestGetOwner(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()

	owner := createOwner(t, store, "lookup")

	byID, err := store.GetOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.UniqueID, byID.UniqueID)

	byUnique, err := store.GetOwnerByUniqueID(ctx, owner.UniqueID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, byUnique.ID)

	_, err = store.GetOwner(ctx, owner.ID+100)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = store.GetOwnerByUniqueID(ctx, "")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
