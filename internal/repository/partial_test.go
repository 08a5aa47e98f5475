package repository

import (
	"errors"
	"testing"

	"github.com/pixelfeed/backend/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPartialUpdate(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]any
		overrides  map[string]string
		wantClause string
		wantValues []any
	}{
		{
			name:       "single field",
			fields:     map[string]any{"bio": "hello"},
			wantClause: `"bio"=$1`,
			wantValues: []any{"hello"},
		},
		{
			name:       "column override applied",
			fields:     map[string]any{"firstName": "Ada"},
			overrides:  map[string]string{"firstName": "first_name"},
			wantClause: `"first_name"=$1`,
			wantValues: []any{"Ada"},
		},
		{
			name: "fields sorted for deterministic output",
			fields: map[string]any{
				"username": "ada",
				"bio":      "hello",
				"email":    "ada@example.com",
			},
			wantClause: `"bio"=$1, "email"=$2, "username"=$3`,
			wantValues: []any{"hello", "ada@example.com", "ada"},
		},
		{
			name: "mixed overrides and pass-through",
			fields: map[string]any{
				"isAdmin": true,
				"bio":     "hi",
			},
			overrides:  map[string]string{"isAdmin": "is_admin"},
			wantClause: `"bio"=$1, "is_admin"=$2`,
			wantValues: []any{"hi", true},
		},
		{
			name: "non-string values preserved",
			fields: map[string]any{
				"isAdmin": false,
			},
			overrides:  map[string]string{"isAdmin": "is_admin"},
			wantClause: `"is_admin"=$1`,
			wantValues: []any{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, values, err := BuildPartialUpdate(tt.fields, tt.overrides)
			require.NoError(t, err)
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantValues, values)
		})
	}
}

func TestBuildPartialUpdateEmptyFields(t *testing.T) {
	_, _, err := BuildPartialUpdate(map[string]any{}, nil)
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "No data to update", httpErr.Message)
}

func TestBuildPartialUpdateNilFields(t *testing.T) {
	_, _, err := BuildPartialUpdate(nil, nil)
	require.Error(t, err)
}
