package catalog

import (
	"context"
	"net/url"
	"strconv"
)

type movieDetailsResponse struct {
	ID      int64 `json:"id"`
	Runtime int   `json:"runtime"`
}

// MovieRuntime fetches /movie/{id} and returns its exact runtime in minutes.
// TMDB reports 0 when the runtime is unknown.
func (c *Client) MovieRuntime(ctx context.Context, id int64) (int, error) {
	endpoint, err := c.endpoint("movie", strconv.FormatInt(id, 10))
	if err != nil {
		return 0, err
	}

	q := url.Values{}
	q.Set("language", c.language)

	var payload movieDetailsResponse
	if err := c.doGET(ctx, endpoint, q, &payload); err != nil {
		return 0, err
	}
	return payload.Runtime, nil
}
