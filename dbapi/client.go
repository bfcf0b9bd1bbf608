package dbapi

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	resty "gopkg.in/resty.v1"

	"github.com/muc-transit/departure-board/config"
)

// Client talks to the station catalog and the timetable feeds.
type Client struct {
	http             *resty.Client
	catalogBase      string
	timetableBase    string
	catalogTimeout   time.Duration
	timetableTimeout time.Duration
	catalogRetries   int
	timetableRetries int
}

// NewClient creates a client from the application configuration.
func NewClient(cfg config.AppConfig) *Client {
	c := resty.New()
	c.SetHeader("DB-Client-Id", cfg.Credentials.ClientID)
	c.SetHeader("DB-Api-Key", cfg.Credentials.APIKey)
	return &Client{
		http:             c,
		catalogBase:      strings.TrimRight(cfg.Catalog.BaseURL, "/"),
		timetableBase:    strings.TrimRight(cfg.Timetable.BaseURL, "/"),
		catalogTimeout:   cfg.Catalog.Timeout(),
		timetableTimeout: cfg.Timetable.Timeout(),
		catalogRetries:   cfg.Catalog.Retries,
		timetableRetries: cfg.Timetable.Retries,
	}
}

// SearchStations queries the station catalog with a free-text search string.
// The query may contain the upstream's wildcard syntax ("*foo*").
func (c *Client) SearchStations(ctx context.Context, query string) ([]CatalogStation, error) {
	return retry(ctx, c.catalogRetries, func() ([]CatalogStation, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.catalogTimeout)
		defer cancel()
		resp, err := c.http.R().
			SetContext(callCtx).
			SetHeader("Accept", "application/json").
			SetQueryParam("searchstring", query).
			Get(c.catalogBase + "/stations")
		if err != nil {
			return nil, fmt.Errorf("station search %q: %w", query, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("HTTP %d from station search %q", resp.StatusCode(), query)
		}
		var out stationSearchResponse
		if err := json.Unmarshal(resp.Body(), &out); err != nil {
			return nil, fmt.Errorf("station search %q: %w", query, err)
		}
		return out.Result, nil
	})
}

// GetPlan fetches the baseline timetable for one station and hour slice.
// date is YYMMDD, hour is HH.
func (c *Client) GetPlan(ctx context.Context, stationID int64, date, hour string) (*Timetable, error) {
	url := fmt.Sprintf("%s/plan/%d/%s/%s", c.timetableBase, stationID, date, hour)
	return c.fetchTimetable(ctx, url)
}

// GetChanges fetches the full set of live changes for one station.
func (c *Client) GetChanges(ctx context.Context, stationID int64) (*Timetable, error) {
	url := fmt.Sprintf("%s/fchg/%d", c.timetableBase, stationID)
	return c.fetchTimetable(ctx, url)
}

func (c *Client) fetchTimetable(ctx context.Context, url string) (*Timetable, error) {
	return retry(ctx, c.timetableRetries, func() (*Timetable, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.timetableTimeout)
		defer cancel()
		resp, err := c.http.R().
			SetContext(callCtx).
			SetHeader("Accept", "application/xml").
			Get(url)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode(), url)
		}
		body := resp.Body()
		if len(strings.TrimSpace(string(body))) == 0 {
			return nil, fmt.Errorf("empty body from %s", url)
		}
		var tt Timetable
		if err := xml.Unmarshal(body, &tt); err != nil {
			return nil, fmt.Errorf("parse %s: %w", url, err)
		}
		return &tt, nil
	})
}

// retry runs op with exponential backoff, up to maxRetries additional
// attempts. Malformed bodies count as transient: the upstream documents are
// not under our control. The context cuts the whole sequence short.
func retry[T any](ctx context.Context, maxRetries int, op func() (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 300 * time.Millisecond
	b.RandomizationFactor = 0.2
	b.Multiplier = 2
	b.MaxInterval = 3 * time.Second
	return backoff.RetryWithData(op, backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries)), ctx))
}
