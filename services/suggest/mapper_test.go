package suggest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenreForMoodKnownMoods(t *testing.T) {
	expected := map[string]int{
		"joyful":   35,
		"tense":    28,
		"bizarre":  27,
		"romantic": 10749,
		"clever":   878,
	}
	for mood, genre := range expected {
		got, err := GenreForMood(mood)
		require.NoError(t, err, "mood %q", mood)
		assert.Equal(t, genre, got, "mood %q", mood)
	}
}

func TestGenreForMoodUnknownFails(t *testing.T) {
	for _, mood := range []string{"", "sleepy", "JOYFUL", "alegre"} {
		_, err := GenreForMood(mood)
		assert.True(t, errors.Is(err, ErrUnrecognizedMood), "mood %q should fail, got %v", mood, err)
	}
}

func TestProviderIDKnownKeys(t *testing.T) {
	expected := map[string]int{
		"netflix": 8,
		"prime":   119,
		"disney":  337,
		"hbo":     384,
	}
	for key, id := range expected {
		got, ok := ProviderID(key)
		require.True(t, ok, "key %q", key)
		assert.Equal(t, id, got, "key %q", key)
	}
}

func TestProviderIDUnknownDisablesFilter(t *testing.T) {
	for _, key := range []string{"", "hulu", "Netflix"} {
		_, ok := ProviderID(key)
		assert.False(t, ok, "key %q should not resolve", key)
	}
}

func TestProviderDisplayName(t *testing.T) {
	assert.Equal(t, "Netflix", ProviderDisplayName("netflix"))
	assert.Equal(t, "Prime Video", ProviderDisplayName("prime"))
	assert.Equal(t, "Disney+", ProviderDisplayName("disney"))
	assert.Equal(t, "HBO Max", ProviderDisplayName("hbo"))
	assert.Equal(t, GenericStreamingLabel, ProviderDisplayName(""))
	assert.Equal(t, GenericStreamingLabel, ProviderDisplayName("hulu"))
}
