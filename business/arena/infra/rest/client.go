// Package rest implements the arena backend port over the instrumented
// HTTP client.
package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agentarena/arena-terminal/business/arena/domain"
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

// Client talks to the arena backend REST API.
type Client struct {
	http    httpclient.Client
	limiter *ratelimit.Limiter
	logger  logger.LoggerInterface
}

// New creates a REST client for the configured backend.
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
		httpclient.WithProviderName("arena-api"),
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithHeaders(map[string]string{"Accept": "application/json"}),
	)
	if err != nil {
		return nil, apperror.New(apperror.CodeConfigurationError,
			apperror.WithCause(err),
			apperror.WithContext("failed to build arena http client"))
	}

	return &Client{
		http:    hc,
		limiter: ratelimit.New(rpm),
		logger:  log,
	}, nil
}

// statusError translates HTTP status codes into app errors. notFound is the
// code used for a 404 on this endpoint.
func statusError(notFound apperror.Code) httpclient.ResponseErrorHandler {
	return func(statusCode int, body []byte) error {
		switch {
		case statusCode == http.StatusNotFound:
			return apperror.New(notFound)
		case statusCode >= 400:
			return apperror.New(apperror.CodeAPIBadStatus,
				apperror.WithContext(fmt.Sprintf("status %d: %s", statusCode, truncate(body, 200))))
		}
		return nil
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// get runs a rate-limited GET and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, path string, query map[string]string, result any, notFound apperror.Code) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperror.New(apperror.CodeRateLimitExceeded, apperror.WithCause(err))
	}

	req := c.http.NewRequestWithOptions(
		httpclient.WithResponseErrorHandler(statusError(notFound)),
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

// Stats fetches global arena stats.
func (c *Client) Stats(ctx context.Context) (*domain.GlobalStats, error) {
	var out domain.GlobalStats
	if err := c.get(ctx, "/api/stats", nil, &out, apperror.CodeNotFound); err != nil {
		return nil, err
	}
	return &out, nil
}

// BurnStats fetches the burn timeline and recent burns.
func (c *Client) BurnStats(ctx context.Context) (*domain.BurnStats, error) {
	var out domain.BurnStats
	if err := c.get(ctx, "/api/stats/burns", nil, &out, apperror.CodeNotFound); err != nil {
		return nil, err
	}
	return &out, nil
}

// Leaderboard fetches one leaderboard page.
func (c *Client) Leaderboard(ctx context.Context, sortBy string, offset, limit int) (*domain.LeaderboardPage, error) {
	if sortBy == "" {
		sortBy = domain.SortByEarnings
	}
	var out domain.LeaderboardPage
	query := map[string]string{
		"sortBy": sortBy,
		"offset": strconv.Itoa(offset),
		"limit":  strconv.Itoa(limit),
	}
	if err := c.get(ctx, "/api/leaderboard", query, &out, apperror.CodeNotFound); err != nil {
		return nil, err
	}
	return &out, nil
}

// Matches fetches one page of matches, optionally filtered by phase.
func (c *Client) Matches(ctx context.Context, phase string, offset, limit int) (*domain.MatchPage, error) {
	var out domain.MatchPage
	query := map[string]string{
		"offset": strconv.Itoa(offset),
		"limit":  strconv.Itoa(limit),
	}
	if phase != "" {
		query["phase"] = phase
	}
	if err := c.get(ctx, "/api/matches", query, &out, apperror.CodeMatchNotFound); err != nil {
		return nil, err
	}
	return &out, nil
}

// MatchAnswers fetches all submitted answers for a match.
func (c *Client) MatchAnswers(ctx context.Context, matchID int) ([]domain.AnswerResponse, error) {
	var out domain.AnswerList
	path := fmt.Sprintf("/api/matches/%d/answers", matchID)
	if err := c.get(ctx, path, nil, &out, apperror.CodeMatchNotFound); err != nil {
		return nil, err
	}
	return out.Answers, nil
}

// MatchCommentary fetches the commentary thread for a match.
func (c *Client) MatchCommentary(ctx context.Context, matchID int) ([]domain.CommentaryResponse, error) {
	var out domain.CommentaryList
	path := fmt.Sprintf("/api/matches/%d/commentary", matchID)
	if err := c.get(ctx, path, nil, &out, apperror.CodeMatchNotFound); err != nil {
		return nil, err
	}
	return out.Commentary, nil
}

// AgentProfile fetches stats plus recent matches for an agent.
func (c *Client) AgentProfile(ctx context.Context, addr string) (*domain.AgentProfile, error) {
	var out domain.AgentProfile
	if err := c.get(ctx, "/api/agent/"+addr, nil, &out, apperror.CodeAgentNotFound); err != nil {
		return nil, err
	}
	return &out, nil
}

// AgentHistory fetches one page of an agent's match history.
func (c *Client) AgentHistory(ctx context.Context, addr string, offset, limit int) (*domain.MatchPage, error) {
	var out domain.MatchPage
	query := map[string]string{
		"offset": strconv.Itoa(offset),
		"limit":  strconv.Itoa(limit),
	}
	if err := c.get(ctx, "/api/agent/"+addr+"/history", query, &out, apperror.CodeAgentNotFound); err != nil {
		return nil, err
	}
	return &out, nil
}

// AgentEconomics fetches the economics summary for an agent.
func (c *Client) AgentEconomics(ctx context.Context, addr string) (*domain.AgentEconomics, error) {
	var out domain.AgentEconomics
	if err := c.get(ctx, "/api/agent/"+addr+"/economics", nil, &out, apperror.CodeAgentNotFound); err != nil {
		return nil, err
	}
	return &out, nil
}
