package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudent_UnmarshalJSON_KeepsAttributes(t *testing.T) {
	var s Student
	err := json.Unmarshal([]byte(`{"email":"A@b.com","password":"pw","name":"Ana","status":"enrolled","year":3}`), &s)
	require.NoError(t, err)

	assert.Equal(t, "A@b.com", s.Email)
	assert.Equal(t, "pw", s.Password)
	assert.Equal(t, "Ana", s.Attributes["name"])
	assert.Equal(t, "enrolled", s.Attributes["status"])
	assert.Equal(t, float64(3), s.Attributes["year"])
	assert.NotContains(t, s.Attributes, "email")
	assert.NotContains(t, s.Attributes, "password")
}

func TestStudent_UnmarshalJSON_NonStringEmail(t *testing.T) {
	var s Student
	require.NoError(t, json.Unmarshal([]byte(`{"email":42}`), &s))
	assert.Empty(t, s.Email)
}

func TestStudent_MarshalJSON_OmitsPassword(t *testing.T) {
	s := Student{Email: "a@b.com", Password: "secret", Attributes: map[string]any{"name": "Ana"}}

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "a@b.com", out["email"])
	assert.Equal(t, "Ana", out["name"])
	assert.NotContains(t, out, "password")
}

func TestDirectorySnapshot_Find(t *testing.T) {
	snapshot := DirectorySnapshot{
		{Email: "", Password: "x"},
		{Email: "A@b.com", Attributes: map[string]any{"n": 1}},
		{Email: "a@B.COM", Attributes: map[string]any{"n": 2}},
	}

	t.Run("case_insensitive_first_match_wins", func(t *testing.T) {
		s, ok := snapshot.Find("a@b.com")
		require.True(t, ok)
		assert.Equal(t, 1, s.Attributes["n"])
	})

	t.Run("canonical_is_compared_as_given", func(t *testing.T) {
		_, ok := snapshot.Find("A@B.com")
		assert.False(t, ok)
	})

	t.Run("empty_key_matches_empty_email", func(t *testing.T) {
		s, ok := snapshot.Find("")
		require.True(t, ok)
		assert.Equal(t, "x", s.Password)
	})

	t.Run("empty_key_without_empty_email", func(t *testing.T) {
		_, ok := snapshot[1:].Find("")
		assert.False(t, ok)
	})

	t.Run("empty_snapshot", func(t *testing.T) {
		_, ok := DirectorySnapshot{}.Find("a@b.com")
		assert.False(t, ok)
	})
}
