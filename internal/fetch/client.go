package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/jengzang/civic-etl-go/internal/logger"
	"github.com/jengzang/civic-etl-go/internal/metrics"
)

// Source names used in errors and metrics
const (
	SourceStations = "station_information"
	SourceWeather  = "weather"
)

// StationsPath is the gjson path of the station array in the GBFS payload
const StationsPath = "data.stations"

// Options configures a Client
type Options struct {
	StationInfoURL  string
	WeatherURL      string
	Timeout         time.Duration
	RPS             float64 // requests per second, <= 0 disables throttling
	MaxRetries      uint64
	InitialInterval time.Duration // first retry delay, defaults to 500ms
}

// Client downloads the raw station feed and monthly weather exports
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	opts       Options
	log        zerolog.Logger
}

// NewClient creates a throttled, retrying client
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = 500 * time.Millisecond
	}

	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		opts:       opts,
		log:        logger.Component("fetch"),
	}
}

// StationInformation returns the raw GBFS station_information payload. A
// payload without a station array is a permanent failure.
func (c *Client) StationInformation(ctx context.Context) ([]byte, error) {
	return c.get(ctx, SourceStations, c.opts.StationInfoURL, func(body []byte) error {
		if !gjson.ValidBytes(body) || !gjson.GetBytes(body, StationsPath).IsArray() {
			return fmt.Errorf("payload has no %s array", StationsPath)
		}
		return nil
	})
}

// WeatherMonth returns the daily climate CSV export for one station month.
// The bulk endpoint returns the whole year for any month.
func (c *Client) WeatherMonth(ctx context.Context, stationID, year, month int) ([]byte, error) {
	u, err := url.Parse(c.opts.WeatherURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse weather url: %w", err)
	}
	q := u.Query()
	q.Set("format", "csv")
	q.Set("stationID", strconv.Itoa(stationID))
	q.Set("Year", strconv.Itoa(year))
	q.Set("Month", strconv.Itoa(month))
	q.Set("Day", "1")
	q.Set("timeframe", "2")
	q.Set("submit", "Download Data")
	u.RawQuery = q.Encode()

	return c.get(ctx, SourceWeather, u.String(), func(body []byte) error {
		if len(body) == 0 {
			return errors.New("empty export")
		}
		return nil
	})
}

// WeatherFileName is the on-disk name of a downloaded weather month
func WeatherFileName(stationID, year, month int) string {
	return fmt.Sprintf("%d_%d_%02d_daily.csv", stationID, year, month)
}

func (c *Client) get(ctx context.Context, source, target string, validate func([]byte) error) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.opts.InitialInterval
	b := backoff.WithContext(backoff.WithMaxRetries(policy, c.opts.MaxRetries), ctx)

	op := func() ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(fmt.Errorf("rate limit wait canceled: %w", err))
		}

		body, err := c.do(ctx, source, target)
		if err == nil {
			if verr := validate(body); verr != nil {
				err = &Error{Source: source, Status: http.StatusOK, Err: verr}
				metrics.ObserveFetch(source, "bad_payload")
				return nil, backoff.Permanent(err)
			}
			metrics.ObserveFetch(source, "ok")
			return body, nil
		}

		var ferr *Error
		if errors.As(err, &ferr) && !ferr.Retryable() {
			metrics.ObserveFetch(source, "rejected")
			return nil, backoff.Permanent(err)
		}
		metrics.ObserveFetch(source, "retry")
		return nil, err
	}

	notify := func(err error, wait time.Duration) {
		c.log.Warn().Err(err).Dur("wait", wait).Str("source", source).Msg("fetch failed, retrying")
	}

	body, err := backoff.RetryNotifyWithData(op, b, notify)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("source", source).Int("bytes", len(body)).Msg("fetched")
	return body, nil
}

func (c *Client) do(ctx context.Context, source, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(&Error{Source: source, Err: err})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Source: source, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Source: source, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Source: source, Status: resp.StatusCode, Err: fmt.Errorf("unexpected response: %.200s", body)}
	}
	return body, nil
}
