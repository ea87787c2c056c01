// Package source loads the story list from the host backend or from a local
// file. The list is loaded once; there is no refresh.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"storymap/internal/infra/logx"
	"storymap/internal/story"
)

// ErrStatus wraps unexpected HTTP status codes from the backend.
var ErrStatus = errors.New("unexpected status")

const (
	defaultPerPage   = 100
	maxParallelPages = 4
	maxPages         = 500
)

// Client fetches paged story documents from a backend endpoint.
type Client struct {
	http    *http.Client
	tr      *RetryingTransport
	baseURL string
	token   string
	perPage int
}

// NewClient creates a client for the stories endpoint at baseURL. token is
// sent verbatim as the Authorization header when non-empty.
func NewClient(baseURL, token string) *Client {
	tr := NewRetryingTransport(DefaultTransportOptions())
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second, Transport: tr},
		tr:      tr,
		baseURL: baseURL,
		token:   token,
		perPage: defaultPerPage,
	}
}

// MetricsSnapshot returns a copy of the transport counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c.tr == nil || c.tr.Opts.Metrics == nil {
		return MetricsSnapshot{}
	}
	return c.tr.Opts.Metrics.Snapshot()
}

// FetchRaw pages through the endpoint. A bare array, or a first page larger
// than requested, is taken as the complete list. Once the first page
// announces a total, the remaining pages are fetched concurrently and joined
// in page order. Without a total, paging stops at a short page or at a page
// that repeats only stories already seen.
func (c *Client) FetchRaw(ctx context.Context) ([]story.RawStory, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	perPage := c.perPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	first, err := c.fetchPageN(ctx, u, 1, perPage)
	if err != nil {
		return nil, err
	}
	if first.Bare || len(first.Stories) != perPage || (first.Total > 0 && len(first.Stories) >= first.Total) {
		return first.Stories, nil
	}
	if first.Total > 0 {
		return c.fetchRemaining(ctx, u, first.Stories, first.Total, perPage)
	}

	all := first.Stories
	seen := make(map[string]bool, len(all))
	for _, rs := range all {
		seen[rs.Key()] = true
	}
	for page := 2; ; page++ {
		if page > maxPages {
			logx.Warnf("stopping after %d pages of %s", maxPages, c.baseURL)
			return all, nil
		}
		batch, err := c.fetchPageN(ctx, u, page, perPage)
		if err != nil {
			return nil, err
		}
		fresh := 0
		for _, rs := range batch.Stories {
			if k := rs.Key(); !seen[k] {
				seen[k] = true
				fresh++
			}
		}
		if fresh == 0 {
			logx.Debugf("page %d repeats earlier stories; backend ignores paging", page)
			return all, nil
		}
		all = append(all, batch.Stories...)
		if len(batch.Stories) < perPage {
			return all, nil
		}
	}
}

func (c *Client) fetchRemaining(ctx context.Context, u *url.URL, first []story.RawStory, total, perPage int) ([]story.RawStory, error) {
	pages := (total + perPage - 1) / perPage
	if pages > maxPages {
		logx.Warnf("total %d needs %d pages; fetching the first %d", total, pages, maxPages)
		pages = maxPages
	}
	batches := make([][]story.RawStory, pages)
	batches[0] = first

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelPages)
	for page := 2; page <= pages; page++ {
		g.Go(func() error {
			batch, err := c.fetchPageN(gctx, u, page, perPage)
			if err != nil {
				return err
			}
			batches[page-1] = batch.Stories
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]story.RawStory, 0, total)
	for _, b := range batches {
		all = append(all, b...)
	}
	return all, nil
}

func (c *Client) fetchPageN(ctx context.Context, base *url.URL, page, perPage int) (story.Page, error) {
	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	u.RawQuery = q.Encode()

	p, err := c.fetchPage(ctx, u.String())
	if err != nil {
		return story.Page{}, fmt.Errorf("stories page %d: %w", page, err)
	}
	logx.Debugf("fetched stories page %d: %d items (total %d)", page, len(p.Stories), p.Total)
	return p, nil
}

func (c *Client) fetchPage(ctx context.Context, u string) (story.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return story.Page{}, err
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		logx.Debug("request failed", logx.Fields{"request_id": reqID, "err": err.Error()})
		return story.Page{}, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		logx.Debug("unexpected status", logx.Fields{"request_id": reqID, "status": res.StatusCode})
		return story.Page{}, fmt.Errorf("%w: %s", ErrStatus, res.Status)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return story.Page{}, err
	}
	return story.DecodeRaw(bytes.NewReader(body), story.FormatJSON)
}
