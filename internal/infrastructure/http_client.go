package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"campaigndash/internal/domain"
	"campaigndash/pkg/logger"
	"campaigndash/pkg/metrics"

	"golang.org/x/time/rate"
)

// implements domain.AnalyticsAPI
type AnalyticsClient struct {
	client      *http.Client
	baseURL     string
	rootURL     string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

// ClientOptions tunes the transport. Zero values pick the defaults.
type ClientOptions struct {
	Timeout            time.Duration
	RateLimitPerSecond int
	RateLimitBurst     int
}

// creates a new analytics API client; baseURL ends in /api/v1
func NewAnalyticsClient(baseURL string, opts ClientOptions, logger *logger.Logger, metrics *metrics.Metrics) *AnalyticsClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RateLimitPerSecond <= 0 {
		opts.RateLimitPerSecond = 100
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 10
	}

	baseURL = strings.TrimRight(baseURL, "/")

	return &AnalyticsClient{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:     baseURL,
		rootURL:     strings.TrimSuffix(baseURL, "/api/v1"),
		logger:      logger,
		metrics:     metrics,
		rateLimiter: rate.NewLimiter(rate.Limit(opts.RateLimitPerSecond), opts.RateLimitBurst),
	}
}

// one backend call
type operation struct {
	endpoint string // metrics label
	method   string
	url      string
	payload  any
	failure  string // prefix for transport failures
	// prefix HTTP error messages too (health check)
	wrapHTTPError bool
}

func (c *AnalyticsClient) GetClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	err := c.call(ctx, operation{
		endpoint: "clients",
		method:   http.MethodGet,
		url:      c.baseURL + "/clients",
		failure:  "Failed to fetch clients",
	}, &clients)
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *AnalyticsClient) GetCampaignsByClient(ctx context.Context, clientID int64) ([]domain.CampaignSummary, error) {
	var campaigns []domain.CampaignSummary
	err := c.call(ctx, operation{
		endpoint: "campaigns_by_client",
		method:   http.MethodGet,
		url:      fmt.Sprintf("%s/campaigns/by-client/%d", c.baseURL, clientID),
		failure:  fmt.Sprintf("Failed to fetch campaigns for client %d", clientID),
	}, &campaigns)
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

// durationTolerance <= 0 means domain.DefaultDurationTolerance
func (c *AnalyticsClient) GetSimilarCampaigns(ctx context.Context, campaignID int64, durationTolerance float64) ([]domain.CampaignSummary, error) {
	if durationTolerance <= 0 {
		durationTolerance = domain.DefaultDurationTolerance
	}

	query := url.Values{}
	query.Set("duration_tolerance", strconv.FormatFloat(durationTolerance, 'f', -1, 64))

	var campaigns []domain.CampaignSummary
	err := c.call(ctx, operation{
		endpoint: "similar_campaigns",
		method:   http.MethodGet,
		url:      fmt.Sprintf("%s/campaigns/%d/similar-duration?%s", c.baseURL, campaignID, query.Encode()),
		failure:  fmt.Sprintf("Failed to fetch similar campaigns for %d", campaignID),
	}, &campaigns)
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (c *AnalyticsClient) CompareCampaigns(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	const failure = "Failed to compare campaigns"

	if err := req.Validate(); err != nil {
		c.metrics.RecordExternalAPIFailure("compare", "validation")
		return nil, invalidRequest(failure, err)
	}

	var resp domain.CompareResponse
	err := c.call(ctx, operation{
		endpoint: "compare",
		method:   http.MethodPost,
		url:      c.baseURL + "/compare",
		payload:  req,
		failure:  failure,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *AnalyticsClient) BenchmarkCampaign(ctx context.Context, req domain.BenchmarkRequest) (*domain.BenchmarkResponse, error) {
	const failure = "Failed to benchmark campaign"

	if err := req.Validate(); err != nil {
		c.metrics.RecordExternalAPIFailure("benchmark", "validation")
		return nil, invalidRequest(failure, err)
	}

	var resp domain.BenchmarkResponse
	err := c.call(ctx, operation{
		endpoint: "benchmark",
		method:   http.MethodPost,
		url:      c.baseURL + "/industry-benchmark",
		payload:  req,
		failure:  failure,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if err := resp.Validate(); err != nil {
		c.metrics.RecordExternalAPIFailure("benchmark", "invalid_payload")
		return nil, &APIError{
			Message:    fmt.Sprintf("%s: malformed response: %v", failure, err),
			StatusCode: http.StatusOK,
			Err:        err,
		}
	}
	return &resp, nil
}

// best-effort liveness probe against {root}/health
func (c *AnalyticsClient) HealthCheck(ctx context.Context) (*domain.HealthStatus, error) {
	var status domain.HealthStatus
	err := c.call(ctx, operation{
		endpoint:      "health",
		method:        http.MethodGet,
		url:           c.rootURL + "/health",
		failure:       "API health check failed",
		wrapHTTPError: true,
	}, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// call runs op and decodes a 2xx JSON body into out. Every failure is an
// *APIError; out is only meaningful when err is nil.
func (c *AnalyticsClient) call(ctx context.Context, op operation, out any) error {
	start := time.Now()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure(op.endpoint, "rate_limit")
		return &APIError{Message: fmt.Sprintf("%s: %s", op.failure, networkMessage(err)), Err: err}
	}

	var body io.Reader
	if op.payload != nil {
		payload, err := json.Marshal(op.payload)
		if err != nil {
			c.metrics.RecordExternalAPIFailure(op.endpoint, "json_marshal")
			return &APIError{Message: fmt.Sprintf("%s: %v", op.failure, err), Err: err}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, op.method, op.url, body)
	if err != nil {
		c.metrics.RecordExternalAPIFailure(op.endpoint, "request_creation")
		return &APIError{Message: fmt.Sprintf("%s: %v", op.failure, err), Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID, ok := ctx.Value(logger.RequestIDKey).(string); ok {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure(op.endpoint, "network_error")
		c.logger.WithContext(ctx).WithError(err).WithField("url", op.url).Error("Analytics API unreachable")
		return &APIError{Message: fmt.Sprintf("%s: %s", op.failure, networkMessage(err)), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		c.metrics.RecordExternalAPIFailure(op.endpoint, "read_body")
		return &APIError{
			Message:    fmt.Sprintf("%s: %s", op.failure, networkMessage(err)),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordExternalAPICall(op.endpoint, fmt.Sprintf("error_%d", resp.StatusCode), duration)

		message := httpErrorMessage(resp.StatusCode, raw)
		if op.wrapHTTPError {
			message = fmt.Sprintf("%s: %s", op.failure, message)
		}

		c.logger.WithContext(ctx).WithFields(map[string]any{
			"url":      op.url,
			"status":   resp.StatusCode,
			"duration": duration,
		}).Warn("Analytics API returned an error status")

		return &APIError{Message: message, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := decode(raw, out); err != nil {
		c.metrics.RecordExternalAPIFailure(op.endpoint, "json_parse")
		return &APIError{
			Message:    fmt.Sprintf("%s: malformed response body", op.failure),
			StatusCode: resp.StatusCode,
			Body:       string(raw),
			Err:        err,
		}
	}

	c.metrics.RecordExternalAPICall(op.endpoint, "success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"url":      op.url,
		"duration": duration,
		"bytes":    len(raw),
	}).Info("Analytics API call succeeded")

	return nil
}

// decode refuses empty and null bodies so callers never see a zero value
// standing in for a payload
func decode(raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("empty response body")
	}
	return json.Unmarshal(trimmed, out)
}

func invalidRequest(failure string, err error) *APIError {
	return &APIError{
		Message: fmt.Sprintf("%s: %v", failure, err),
		Err:     fmt.Errorf("%w: %v", ErrInvalidRequest, err),
	}
}
