package catalog

import (
	"context"
	"net/url"
	"strconv"
)

// DiscoverQuery narrows the movie discovery endpoint. Zero-valued fields are
// omitted from the request.
type DiscoverQuery struct {
	GenreID    int
	MinRuntime int // with_runtime.gte
	MaxRuntime int // with_runtime.lte
	ProviderID int // with_watch_providers, requires Region
	Region     string
}

// DiscoverResult is one entry of a discovery response. Runtime is not part of
// this payload; it comes from a per-title MovieRuntime lookup.
type DiscoverResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

type discoverResponse struct {
	Results []DiscoverResult `json:"results"`
}

// Discover queries /discover/movie sorted by popularity, adult content
// excluded, in the client's display language.
func (c *Client) Discover(ctx context.Context, dq DiscoverQuery) ([]DiscoverResult, error) {
	endpoint, err := c.endpoint("discover", "movie")
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("language", c.language)
	q.Set("sort_by", "popularity.desc")
	q.Set("include_adult", "false")
	if dq.GenreID > 0 {
		q.Set("with_genres", strconv.Itoa(dq.GenreID))
	}
	if dq.MinRuntime > 0 {
		q.Set("with_runtime.gte", strconv.Itoa(dq.MinRuntime))
	}
	if dq.MaxRuntime > 0 {
		q.Set("with_runtime.lte", strconv.Itoa(dq.MaxRuntime))
	}
	if dq.ProviderID > 0 && dq.Region != "" {
		q.Set("with_watch_providers", strconv.Itoa(dq.ProviderID))
		q.Set("watch_region", dq.Region)
	}

	var payload discoverResponse
	if err := c.doGET(ctx, endpoint, q, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}
