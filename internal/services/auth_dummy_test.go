package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestCompareDummyUsesStoreCost tests each store hashes its dummy secret at its own cost
func TestCompareDummyUsesStoreCost(t *testing.T) {
	low := NewStore(nil, WithBcryptCost(4))
	high := NewStore(nil, WithBcryptCost(6))

	low.compareDummy("guess")
	high.compareDummy("guess")

	cost, err := bcrypt.Cost(low.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, 4, cost)

	cost, err = bcrypt.Cost(high.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, 6, cost)

	// built once per store
	first := high.dummyHash
	high.compareDummy("another")
	assert.Equal(t, first, high.dummyHash)
}

// TestNewValidatorReportsJSONNames tests failing fields come back under their JSON names
func TestNewValidatorReportsJSONNames(t *testing.T) {
	err := NewValidator().Struct(FeedbackInput{UniqueID: "0f8fad5b-d9cb-469f-a165-70867728950e", Rating: 9})
	require.Error(t, err)

	de := invalid("feedback.create", err)
	assert.EqualError(t, de, "feedback.create: Missing or invalid field: rating: "+err.Error())
}
