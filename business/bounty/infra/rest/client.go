// Package rest implements the bounty backend port over the instrumented
// HTTP client.
package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agentarena/arena-terminal/business/bounty/domain"
	"github.com/agentarena/arena-terminal/internal/apperror"
	"github.com/agentarena/arena-terminal/internal/httpclient"
	"github.com/agentarena/arena-terminal/internal/logger"
	"github.com/agentarena/arena-terminal/internal/ratelimit"
)

// Config holds REST client settings.
type Config struct {
	BaseURL           string
	RequestTimeout    time.Duration
	RequestsPerMinute int
}

// Client talks to the bounty endpoints of the backend.
type Client struct {
	http    httpclient.Client
	limiter *ratelimit.Limiter
	logger  logger.LoggerInterface
}

// New creates a bounty REST client.
func New(cfg Config, log logger.LoggerInterface) (*Client, error) {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 120
	}

	hc, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("bounty-api"),
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithHeaders(map[string]string{"Accept": "application/json"}),
	)
	if err != nil {
		return nil, apperror.New(apperror.CodeConfigurationError,
			apperror.WithCause(err),
			apperror.WithContext("failed to build bounty http client"))
	}

	return &Client{
		http:    hc,
		limiter: ratelimit.New(rpm),
		logger:  log,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperror.New(apperror.CodeRateLimitExceeded, apperror.WithCause(err))
	}

	req := c.http.NewRequestWithOptions(
		httpclient.WithResponseErrorHandler(func(statusCode int, body []byte) error {
			switch {
			case statusCode == http.StatusNotFound:
				return apperror.New(apperror.CodeBountyNotFound)
			case statusCode >= 400:
				return apperror.New(apperror.CodeAPIBadStatus,
					apperror.WithContext(fmt.Sprintf("status %d", statusCode)))
			}
			return nil
		}),
		httpclient.WithLabel("path", path),
	).SetResult(result)
	for k, v := range query {
		req.SetQueryParam(k, v)
	}

	resp, err := req.Get(ctx, path)
	if err != nil {
		if apperror.IsAppError(err) {
			return err
		}
		return apperror.New(apperror.CodeAPIRequestFailed,
			apperror.WithCause(err),
			apperror.WithContext(path))
	}
	if resp.Result() == nil {
		return apperror.New(apperror.CodeAPIDecodeFailed, apperror.WithContext(path))
	}
	return nil
}

// Bounties fetches one page of bounties under the filter.
func (c *Client) Bounties(ctx context.Context, filter domain.Filter, offset, limit int) (*domain.BountyPage, error) {
	query := map[string]string{
		"offset": strconv.Itoa(offset),
		"limit":  strconv.Itoa(limit),
	}
	if filter.Phase != "" {
		query["phase"] = filter.Phase
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	var out domain.BountyPage
	if err := c.get(ctx, "/api/bounties", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BountyDetail fetches one bounty with its answers.
func (c *Client) BountyDetail(ctx context.Context, bountyID int) (*domain.BountyDetail, error) {
	var out domain.BountyDetail
	if err := c.get(ctx, fmt.Sprintf("/api/bounties/%d", bountyID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnnounceBounty posts creation metadata for a bounty already submitted
// on chain, so the backend can show the question text behind the hash.
func (c *Client) AnnounceBounty(ctx context.Context, ann domain.BountyAnnouncement) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperror.New(apperror.CodeRateLimitExceeded, apperror.WithCause(err))
	}

	req := c.http.NewRequestWithOptions(
		httpclient.WithResponseErrorHandler(func(statusCode int, body []byte) error {
			if statusCode >= 400 {
				return apperror.New(apperror.CodeAPIBadStatus,
					apperror.WithContext(fmt.Sprintf("status %d", statusCode)))
			}
			return nil
		}),
		httpclient.WithLabel("path", "/api/bounties"),
	).SetBody(ann).SetHeader("Content-Type", "application/json")

	if _, err := req.Post(ctx, "/api/bounties"); err != nil {
		if apperror.IsAppError(err) {
			return err
		}
		return apperror.New(apperror.CodeAPIRequestFailed,
			apperror.WithCause(err),
			apperror.WithContext("/api/bounties"))
	}
	return nil
}

// BountyStats fetches marketplace aggregates.
func (c *Client) BountyStats(ctx context.Context) (*domain.BountyStats, error) {
	var out domain.BountyStats
	if err := c.get(ctx, "/api/bounties/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
