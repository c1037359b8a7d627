package catalog

import (
	"context"
	"net/url"
)

type providerDirectoryResponse struct {
	Results []struct {
		ProviderID   int    `json:"provider_id"`
		ProviderName string `json:"provider_name"`
	} `json:"results"`
}

// ProviderRegions reports the regions in which the given watch provider is
// available. Only the client's configured region is probed: the result is
// either [region] or empty, depending on whether the provider appears in
// that region's directory.
func (c *Client) ProviderRegions(ctx context.Context, providerID int) ([]string, error) {
	endpoint, err := c.endpoint("watch", "providers", "movie")
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("watch_region", c.watchRegion)

	var payload providerDirectoryResponse
	if err := c.doGET(ctx, endpoint, q, &payload); err != nil {
		return nil, err
	}

	for _, p := range payload.Results {
		if p.ProviderID == providerID {
			return []string{c.watchRegion}, nil
		}
	}
	return nil, nil
}
