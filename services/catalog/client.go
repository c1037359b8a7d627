package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
)

const baseURL = "https://api.themoviedb.org/3"

// StatusError reports a non-success HTTP status from TMDB.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb request failed: %s", e.Status)
}

// Client talks to the TMDB v3 API.
type Client struct {
	apiKey      string
	language    string
	watchRegion string
	httpc       *http.Client

	// Rate limiting
	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func New(apiKey, language, watchRegion string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		apiKey:      strings.TrimSpace(apiKey),
		language:    language,
		watchRegion: watchRegion,
		httpc:       httpc,
		minInterval: 20 * time.Millisecond, // TMDB has generous rate limits
	}
}

func (c *Client) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

// doGET performs a GET against endpoint with the given query values, decoding
// the JSON body into v. Transport errors, 429 and 5xx are retried with
// exponential backoff; other non-success statuses fail immediately with a
// *StatusError.
func (c *Client) doGET(ctx context.Context, endpoint string, query url.Values, v any) error {
	if !c.isConfigured() {
		return errors.New("tmdb api key not configured")
	}

	query.Set("api_key", c.apiKey)
	endpoint = endpoint + "?" + query.Encode()

	return retry.Do(
		func() error {
			c.throttle()

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := c.httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return &StatusError{Code: resp.StatusCode, Status: resp.Status}
			}
			if resp.StatusCode >= 400 {
				return retry.Unrecoverable(&StatusError{Code: resp.StatusCode, Status: resp.Status})
			}

			if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
				return retry.Unrecoverable(err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

func (c *Client) throttle() {
	c.throttleMu.Lock()
	defer c.throttleMu.Unlock()
	if since := time.Since(c.lastRequest); since < c.minInterval {
		time.Sleep(c.minInterval - since)
	}
	c.lastRequest = time.Now()
}

func (c *Client) endpoint(parts ...string) (string, error) {
	return url.JoinPath(baseURL, parts...)
}
