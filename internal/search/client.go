// Package search adapts the Google Custom Search JSON API into normalized
// learning-resource hits.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mrlokans/learnhub/internal/config"
	"github.com/mrlokans/learnhub/internal/logger"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	initialRetryDelay  = 200 * time.Millisecond
	maxRetryDelay      = 2 * time.Second
	retryBackoffFactor = 2

	tracerName = "github.com/mrlokans/learnhub/internal/search"
)

var ErrNotConfigured = errors.New("search provider not configured")

// ProviderError is a failed provider call. StatusCode is zero for transport failures.
type ProviderError struct {
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("search provider returned %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("search provider unavailable: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Client queries the provider with a per-attempt timeout and bounded retries.
type Client struct {
	svc      *customsearch.Service
	engineID string
	log      *logger.Logger
	tracer   trace.Tracer

	timeout      time.Duration
	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
}

// NewClient builds a client from cfg. Without credentials the client is
// returned but every Search fails with ErrNotConfigured.
func NewClient(ctx context.Context, cfg config.Search, log *logger.Logger, opts ...option.ClientOption) (*Client, error) {
	c := &Client{
		engineID:     cfg.EngineID,
		log:          log,
		tracer:       otel.Tracer(tracerName),
		timeout:      cfg.Timeout,
		maxAttempts:  cfg.MaxAttempts,
		initialDelay: initialRetryDelay,
		maxDelay:     maxRetryDelay,
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = defaultMaxAttempts
	}
	if !cfg.SearchEnabled() {
		log.Warn("Search provider credentials missing, search routes are disabled")
		return c, nil
	}

	endpoint := cfg.BaseURL
	if endpoint == "" {
		endpoint = config.DefaultSearchBaseURL
	}
	clientOpts := append([]option.ClientOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithEndpoint(endpoint),
	}, opts...)

	svc, err := customsearch.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create custom search service: %w", err)
	}
	c.svc = svc
	return c, nil
}

// Enabled reports whether the client can reach a provider.
func (c *Client) Enabled() bool {
	return c != nil && c.svc != nil
}

// Search runs one provider query for the given filters and page.
func (c *Client) Search(ctx context.Context, f Filters, page, pageSize int) (*Result, error) {
	q, err := BuildQuery(f)
	if err != nil {
		return nil, err
	}
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}

	page, pageSize = NormalizePaging(page, pageSize)
	start := StartIndex(page, pageSize)

	ctx, span := c.tracer.Start(ctx, "search.provider", trace.WithAttributes(
		attribute.String("search.query", q),
		attribute.Int("search.start", start),
		attribute.Int("search.num", pageSize),
	))
	defer span.End()

	res, attempts, err := c.listWithRetry(ctx, q, start, pageSize)
	span.SetAttributes(attribute.Int("search.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider call failed")
		c.log.Warn("Search provider call failed", "query", q, "attempts", attempts, "error", err)
		return nil, err
	}

	result := &Result{
		Items:      make([]Item, 0, len(res.Items)),
		Query:      q,
		StartIndex: start,
		Page:       page,
		PageSize:   pageSize,
	}
	if res.SearchInformation != nil {
		result.TotalResults, _ = strconv.ParseInt(res.SearchInformation.TotalResults, 10, 64)
	}
	for _, it := range res.Items {
		if it == nil {
			continue
		}
		result.Items = append(result.Items, normalizeItem(it, f))
	}
	span.SetAttributes(attribute.Int("search.items", len(result.Items)))

	return result, nil
}

func (c *Client) listWithRetry(ctx context.Context, q string, start, num int) (*customsearch.Search, int, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, attempt, ctx.Err()
			case <-time.After(c.retryDelay(attempt)):
			}
		}

		res, err := c.list(ctx, q, start, num)
		if err == nil {
			return res, attempt + 1, nil
		}
		lastErr = err

		if ctx.Err() != nil || !isRetryableError(err) {
			return nil, attempt + 1, lastErr
		}
	}

	return nil, c.maxAttempts, lastErr
}

func (c *Client) list(ctx context.Context, q string, start, num int) (*customsearch.Search, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.svc.Cse.List().
		Cx(c.engineID).
		Q(q).
		Start(int64(start)).
		Num(int64(num)).
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return nil, &ProviderError{StatusCode: gerr.Code, Err: err}
		}
		return nil, &ProviderError{Err: err}
	}
	return res, nil
}

func (c *Client) retryDelay(attempt int) time.Duration {
	delay := c.initialDelay
	for i := 1; i < attempt; i++ {
		delay *= retryBackoffFactor
	}
	if delay > c.maxDelay {
		delay = c.maxDelay
	}
	return delay
}

// isRetryableError admits transport failures, 429 and 5xx.
func isRetryableError(err error) bool {
	var perr *ProviderError
	if !errors.As(err, &perr) {
		return false
	}
	if perr.StatusCode != 0 {
		return perr.StatusCode == http.StatusTooManyRequests || perr.StatusCode >= http.StatusInternalServerError
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var nerr net.Error
	return errors.As(err, &nerr) || errors.Is(err, context.DeadlineExceeded)
}

type pagemap struct {
	CSEThumbnail []struct {
		Src string `json:"src"`
	} `json:"cse_thumbnail"`
}

func normalizeItem(it *customsearch.Result, f Filters) Item {
	item := Item{
		Title:       it.Title,
		Description: it.Snippet,
		URL:         it.Link,
		Source:      ExtractDomain(it.Link),
		Subject:     f.Subject,
		Difficulty:  f.Difficulty,
		Type:        f.Type,
	}
	if len(it.Pagemap) > 0 {
		var pm pagemap
		if err := json.Unmarshal(it.Pagemap, &pm); err == nil && len(pm.CSEThumbnail) > 0 {
			item.Thumbnail = pm.CSEThumbnail[0].Src
		}
	}
	return item
}
