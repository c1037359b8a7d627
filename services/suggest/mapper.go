package suggest

import "fmt"

// GenericStreamingLabel is shown when no specific provider filter applies.
const GenericStreamingLabel = "Multiple streaming services"

// Mood to TMDB genre id.
var moodGenres = map[string]int{
	"joyful":   35,    // comedy
	"tense":    28,    // action
	"bizarre":  27,    // horror
	"romantic": 10749, // romance
	"clever":   878,   // science fiction
}

// Streaming key to TMDB watch-provider id.
var providerIDs = map[string]int{
	"netflix": 8,
	"prime":   119,
	"disney":  337,
	"hbo":     384,
}

var providerNames = map[string]string{
	"netflix": "Netflix",
	"prime":   "Prime Video",
	"disney":  "Disney+",
	"hbo":     "HBO Max",
}

// GenreForMood resolves a mood to its catalog genre id. Unknown moods are a
// hard failure; the caller must not reach the network with one.
func GenreForMood(mood string) (int, error) {
	id, ok := moodGenres[mood]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedMood, mood)
	}
	return id, nil
}

// ProviderID resolves a streaming key to its watch-provider id. Unknown or
// empty keys mean "no provider filter", never an error.
func ProviderID(key string) (int, bool) {
	id, ok := providerIDs[key]
	return id, ok
}

// ProviderDisplayName returns the friendly provider name, or the generic
// label for unknown or empty keys.
func ProviderDisplayName(key string) string {
	if name, ok := providerNames[key]; ok {
		return name
	}
	return GenericStreamingLabel
}
