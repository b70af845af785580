package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FlexID
		wantErr bool
	}{
		{"number", `{"id": 42}`, 42, false},
		{"string", `{"id": "42"}`, 42, false},
		{"padded string", `{"id": " 7 "}`, 7, false},
		{"null", `{"id": null}`, 0, false},
		{"empty string", `{"id": ""}`, 0, false},
		{"missing", `{}`, 0, false},
		{"negative", `{"id": -1}`, 0, true},
		{"word", `{"id": "abc"}`, 0, true},
		{"object", `{"id": {}}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				ID FlexID `json:"id"`
			}
			err := json.Unmarshal([]byte(tt.input), &body)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, body.ID)
			assert.Equal(t, tt.want > 0, body.ID.Valid())
		})
	}
}

func TestFlexIDMarshal(t *testing.T) {
	b, err := json.Marshal(struct {
		ID FlexID `json:"id"`
	}{ID: 9})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 9}`, string(b))
	assert.Equal(t, uint64(9), FlexID(9).Uint64())
}

func TestDataErrorMatching(t *testing.T) {
	cause := errors.New("driver said no")
	err := NewDataError("owners.create", ErrConflict, "", cause)

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "owners.create: conflict: driver said no", err.Error())

	var de *DataError
	wrapped := errors.Join(errors.New("outer"), err)
	require.ErrorAs(t, wrapped, &de)
	assert.Equal(t, "owners.create", de.Op)

	unclassified := NewDataError("owners.list", nil, "", cause)
	assert.NotErrorIs(t, unclassified, ErrConflict)
	assert.ErrorIs(t, unclassified, cause)
	assert.Equal(t, "owners.list: store failure: driver said no", unclassified.Error())
	assert.Equal(t, "owners.list: store failure", NewDataError("owners.list", nil, "", nil).Error())
}

func TestPublicMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth hides message", NewDataError("auth", ErrAuth, "no such login", nil), "Invalid credentials"},
		{"custom message", NewDataError("feedback", ErrValidation, "Missing or invalid field: rating", nil), "Missing or invalid field: rating"},
		{"validation", NewDataError("feedback", ErrValidation, "", nil), "Invalid input"},
		{"conflict", NewDataError("owners", ErrConflict, "", nil), "Resource already exists"},
		{"constraint", NewDataError("feedback", ErrConstraint, "", nil), "Referenced resource does not exist"},
		{"not found", NewDataError("owners", ErrNotFound, "", nil), "Resource not found"},
		{"unclassified", NewDataError("owners", nil, "select failed on users", errors.New("boom")), "Internal server error"},
		{"plain error", errors.New("boom"), "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicMessage(tt.err))
		})
	}
}

func TestOptional(t *testing.T) {
	v, ok := Some("x").Get()
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = None[int]().Get()
	assert.False(t, ok)

	_, ok = NonEmpty("").Get()
	assert.False(t, ok)
	v, ok = NonEmpty("login").Get()
	assert.True(t, ok)
	assert.Equal(t, "login", v)
}

func TestCustomError(t *testing.T) {
	err := &CustomError{Code: 401, Message: "Invalid credentials", Type: "auth.admin"}
	assert.Equal(t, "401: Invalid credentials [type: auth.admin]", err.Error())
}
