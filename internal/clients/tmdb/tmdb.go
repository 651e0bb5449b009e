package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"moviehub/proj/internal/domain/models"
	"moviehub/proj/internal/lib/metrics"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrNotFound     = errors.New("tmdb: not found")
	ErrUnauthorized = errors.New("tmdb: invalid api key")
)

const maxAttempts = 4

type Client struct {
	log     *slog.Logger
	baseURL string
	key     string
	hc      *http.Client
	limiter *rate.Limiter
}

func New(log *slog.Logger, baseURL, key string, timeout time.Duration, rps int) (*Client, error) {
	if key == "" {
		return nil, errors.New("tmdb: api key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		log:     log,
		baseURL: baseURL,
		key:     key,
		hc:      &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (c *Client) Trending(ctx context.Context) (*models.CatalogPage, error) {
	var page models.CatalogPage
	if err := c.get(ctx, "/trending/movie/week", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Search(ctx context.Context, query string, pageNum int) (*models.CatalogPage, error) {
	params := url.Values{"query": {query}}
	if pageNum > 0 {
		params.Set("page", strconv.Itoa(pageNum))
	}
	var page models.CatalogPage
	if err := c.get(ctx, "/search/movie", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Movie(ctx context.Context, id int64) (*models.CatalogMovie, error) {
	var movie models.CatalogMovie
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// get performs a GET with client-side rate limiting and bounded retries on
// 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.key)
	reqURL := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if !sleepCtx(ctx, backoff(attempt)) {
				return lastErr
			}
			continue
		}
		metrics.ObserveExternal("tmdb", path, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode == http.StatusOK:
			err = json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err
		case resp.StatusCode == http.StatusNotFound:
			drain(resp)
			return ErrNotFound
		case resp.StatusCode == http.StatusUnauthorized:
			drain(resp)
			return ErrUnauthorized
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			wait := backoff(attempt)
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					wait = time.Duration(secs) * time.Second
				}
			}
			drain(resp)
			lastErr = fmt.Errorf("tmdb: status %d for %s", resp.StatusCode, path)
			c.log.Warn("retrying catalog request", "path", path, "status", resp.StatusCode, "wait", wait)
			if !sleepCtx(ctx, wait) {
				return ctx.Err()
			}
		default:
			drain(resp)
			return fmt.Errorf("tmdb: unexpected status %d for %s", resp.StatusCode, path)
		}
	}
	return lastErr
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * 250 * time.Millisecond
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
