package models

import (
	"fmt"
	"strconv"
)

// Candidate is one enriched catalog entry eligible for suggestion.
// PosterPath is the raw TMDB path fragment; building a display URL is the
// UI's job, not ours.
type Candidate struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Overview       string  `json:"overview"`
	PosterPath     string  `json:"posterPath"`
	ReleaseDate    string  `json:"releaseDate,omitempty"`
	RuntimeMinutes int     `json:"runtimeMinutes"`
	VoteAverage    float64 `json:"voteAverage,omitempty"`
	StreamingLabel string  `json:"streamingLabel"`
}

// Year returns the leading 4-digit year of ReleaseDate, or 0 when absent.
func (c Candidate) Year() int {
	if len(c.ReleaseDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi(c.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return y
}

// FormatRuntime renders minutes as "1h 20min" / "45min", or a fixed notice
// when the runtime is unknown (0).
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return "runtime not provided"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dmin", h, m)
}

// FilterSpec is the immutable tuple defining one suggestion session.
// ProviderKey may be empty (no streaming filter). Comparable by value so an
// in-flight fetch can be tagged with the spec it was issued for.
type FilterSpec struct {
	TimeBudgetMinutes int    `json:"timeBudgetMinutes"`
	Mood              string `json:"mood"`
	ProviderKey       string `json:"providerKey,omitempty"`
}
