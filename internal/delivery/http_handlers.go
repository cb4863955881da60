package delivery

import (
	"errors"
	"io"
	"net/http"
	"time"

	"campaigndash/internal/domain"
	"campaigndash/internal/infrastructure"
	"campaigndash/internal/usecase"
	"campaigndash/internal/view"
	"campaigndash/pkg/logger"

	"github.com/gin-gonic/gin"
)

// handles HTTP requests
type HTTPHandlers struct {
	dashboard *usecase.Dashboard
	logger    *logger.Logger
}

// creates new HTTP handlers
func NewHTTPHandlers(dashboard *usecase.Dashboard, logger *logger.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

type selectClientRequest struct {
	ClientID *int64 `json:"client_id"`
}

type selectCampaignRequest struct {
	CampaignID *int64 `json:"campaign_id" binding:"required"`
}

type compareAnalyzeRequest struct {
	ComparisonType      domain.ComparisonType `json:"comparison_type"`
	ConfidenceThreshold *float64              `json:"confidence_threshold"`
	FocusMetrics        []string              `json:"focus_metrics"`
}

type benchmarkAnalyzeRequest struct {
	Industry               *string `json:"industry"`
	JobType                *string `json:"job_type"`
	GeographicRegion       *string `json:"geographic_region"`
	Timeframe              *string `json:"timeframe"`
	MinimumSampleSize      *int    `json:"minimum_sample_size"`
	IncludeTrends          *bool   `json:"include_trends"`
	IncludeCompetitiveGaps *bool   `json:"include_competitive_gaps"`
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"api_version": "v1",
		"service":     "Campaign Dashboard",
		"version":     "1.0.0",
		"description": "Campaign comparison and industry benchmark dashboard backed by the analytics API",
		"endpoints": gin.H{
			"clients": gin.H{
				"description": "Client selection shared by the compare and benchmark views",
				"endpoints": gin.H{
					"list":     gin.H{"method": "GET", "path": "/api/v1/clients"},
					"refresh":  gin.H{"method": "POST", "path": "/api/v1/clients/refresh"},
					"selected": gin.H{"method": "PUT", "path": "/api/v1/clients/selected", "body": `{"client_id": 1004} or {"client_id": null}`},
				},
			},
			"compare": gin.H{
				"description": "Compare two campaigns of similar duration",
				"endpoints": gin.H{
					"view":       gin.H{"method": "GET", "path": "/api/v1/compare"},
					"primary":    gin.H{"method": "PUT", "path": "/api/v1/compare/primary", "body": `{"campaign_id": 12356}`},
					"comparison": gin.H{"method": "PUT", "path": "/api/v1/compare/comparison", "body": `{"campaign_id": 12357}`},
					"analyze":    gin.H{"method": "POST", "path": "/api/v1/compare/analyze", "body": `{"comparison_type": "performance"}`},
				},
			},
			"benchmark": gin.H{
				"description": "Benchmark a campaign against its industry cohort",
				"endpoints": gin.H{
					"view":     gin.H{"method": "GET", "path": "/api/v1/benchmark"},
					"campaign": gin.H{"method": "PUT", "path": "/api/v1/benchmark/campaign", "body": `{"campaign_id": 12356}`},
					"analyze":  gin.H{"method": "POST", "path": "/api/v1/benchmark/analyze", "body": `{"include_trends": true}`},
				},
			},
			"roi": gin.H{
				"description": "Return on investment from campaign cost and revenue",
				"method":      "POST",
				"path":        "/api/v1/roi",
				"body":        `{"cost": 5000, "revenue": 25000}`,
			},
			"upstream_health": gin.H{"method": "GET", "path": "/api/v1/upstream/health"},
		},
		"parameters": gin.H{
			"async": "Mutating endpoints wait for the resulting fetch unless async=true",
		},
		"request_id": c.GetString("request_id"),
	})
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    "campaigndash",
		"version":    "1.0.0",
		"request_id": c.GetString("request_id"),
	})
}

// UpstreamHealth reports whether the analytics backend is reachable
func (h *HTTPHandlers) UpstreamHealth(c *gin.Context) {
	ctx := c.Request.Context()

	status, err := h.dashboard.UpstreamHealth(ctx)
	if err != nil {
		h.logger.WithContext(ctx).WithError(err).Warn("Analytics backend health check failed")

		body := gin.H{
			"error":      "Analytics backend unavailable",
			"message":    err.Error(),
			"request_id": c.GetString("request_id"),
		}
		if apiErr, ok := infrastructure.AsAPIError(err); ok && apiErr.HasStatus() {
			body["upstream_status"] = apiErr.StatusCode
		}
		c.JSON(http.StatusBadGateway, body)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     status.Status,
		"request_id": c.GetString("request_id"),
	})
}

func (h *HTTPHandlers) GetClients(c *gin.Context) {
	c.JSON(http.StatusOK, view.Clients(h.dashboard.Selection.State()))
}

// RefreshClients reloads the client list
func (h *HTTPHandlers) RefreshClients(c *gin.Context) {
	done := h.dashboard.Selection.LoadClients(c.Request.Context())
	if !h.await(c, done) {
		return
	}
	h.respond(c, view.Clients(h.dashboard.Selection.State()))
}

// SelectClient selects a client, or clears the selection for a null id
func (h *HTTPHandlers) SelectClient(c *gin.Context) {
	var req selectClientRequest
	if !h.bind(c, &req, false) {
		return
	}

	ctx := c.Request.Context()
	var done <-chan struct{}
	if req.ClientID == nil {
		done = h.dashboard.Selection.Clear(ctx)
	} else {
		var err error
		if done, err = h.dashboard.Selection.Select(ctx, *req.ClientID); err != nil {
			h.fail(c, err)
			return
		}
	}

	if !h.await(c, done) {
		return
	}
	h.respond(c, view.Clients(h.dashboard.Selection.State()))
}

func (h *HTTPHandlers) GetCompare(c *gin.Context) {
	c.JSON(http.StatusOK, view.Compare(h.dashboard.Compare.State()))
}

// SelectPrimary picks the primary campaign and loads its similar campaigns
func (h *HTTPHandlers) SelectPrimary(c *gin.Context) {
	var req selectCampaignRequest
	if !h.bind(c, &req, false) {
		return
	}

	done, err := h.dashboard.Compare.SelectPrimary(c.Request.Context(), *req.CampaignID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !h.await(c, done) {
		return
	}
	h.respond(c, view.Compare(h.dashboard.Compare.State()))
}

func (h *HTTPHandlers) SelectComparison(c *gin.Context) {
	var req selectCampaignRequest
	if !h.bind(c, &req, false) {
		return
	}

	if err := h.dashboard.Compare.SelectComparison(c.Request.Context(), *req.CampaignID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Compare(h.dashboard.Compare.State()))
}

// AnalyzeCompare runs the comparison of the selected pair
func (h *HTTPHandlers) AnalyzeCompare(c *gin.Context) {
	var req compareAnalyzeRequest
	if !h.bind(c, &req, true) {
		return
	}
	if req.ComparisonType != "" && !req.ComparisonType.Valid() {
		h.abort(c, http.StatusBadRequest, "Invalid parameters", "unknown comparison_type "+string(req.ComparisonType))
		return
	}

	done, err := h.dashboard.Compare.Analyze(c.Request.Context(), usecase.CompareOptions{
		ComparisonType:      req.ComparisonType,
		ConfidenceThreshold: req.ConfidenceThreshold,
		FocusMetrics:        req.FocusMetrics,
	})
	if errors.Is(err, usecase.ErrIncompleteSelection) {
		h.abort(c, http.StatusUnprocessableEntity, "Incomplete selection", usecase.MsgSelectBothCampaigns)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	if !h.await(c, done) {
		return
	}
	h.respond(c, view.Compare(h.dashboard.Compare.State()))
}

func (h *HTTPHandlers) GetBenchmark(c *gin.Context) {
	c.JSON(http.StatusOK, view.Benchmark(h.dashboard.Benchmark.State()))
}

func (h *HTTPHandlers) SelectBenchmarkCampaign(c *gin.Context) {
	var req selectCampaignRequest
	if !h.bind(c, &req, false) {
		return
	}

	if err := h.dashboard.Benchmark.SelectCampaign(c.Request.Context(), *req.CampaignID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Benchmark(h.dashboard.Benchmark.State()))
}

// AnalyzeBenchmark benchmarks the selected campaign
func (h *HTTPHandlers) AnalyzeBenchmark(c *gin.Context) {
	var req benchmarkAnalyzeRequest
	if !h.bind(c, &req, true) {
		return
	}
	if req.MinimumSampleSize != nil && *req.MinimumSampleSize < 1 {
		h.abort(c, http.StatusBadRequest, "Invalid parameters", "minimum_sample_size must be positive")
		return
	}

	done, err := h.dashboard.Benchmark.Analyze(c.Request.Context(), usecase.BenchmarkOptions(req))
	if errors.Is(err, usecase.ErrIncompleteSelection) {
		h.abort(c, http.StatusUnprocessableEntity, "Incomplete selection", usecase.MsgSelectCampaign)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	if !h.await(c, done) {
		return
	}
	h.respond(c, view.Benchmark(h.dashboard.Benchmark.State()))
}

// CalculateROI computes profit and ROI from cost and revenue
func (h *HTTPHandlers) CalculateROI(c *gin.Context) {
	var req view.ROIRequest
	if !h.bind(c, &req, false) {
		return
	}

	result, err := view.CalculateROI(req)
	if err != nil {
		h.abort(c, http.StatusUnprocessableEntity, "Invalid parameters", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// bind decodes the JSON body into req. An empty body is accepted when
// optional is set.
func (h *HTTPHandlers) bind(c *gin.Context, req any, optional bool) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	h.abort(c, http.StatusBadRequest, "Invalid request body", err.Error())
	return false
}

// await blocks until done closes unless the caller asked for async=true.
// It answers the request itself when the wait is cut short.
func (h *HTTPHandlers) await(c *gin.Context, done <-chan struct{}) bool {
	if c.Query("async") == "true" {
		return true
	}
	if err := usecase.Wait(c.Request.Context(), done); err != nil {
		h.logger.WithContext(c.Request.Context()).WithError(err).Warn("Stopped waiting for transition")
		h.abort(c, http.StatusRequestTimeout, "Request timeout", "the operation is still running; poll the view for its result")
		return false
	}
	return true
}

func (h *HTTPHandlers) respond(c *gin.Context, body any) {
	if c.Query("async") == "true" {
		c.JSON(http.StatusAccepted, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

// fail maps workflow errors onto HTTP statuses
func (h *HTTPHandlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrUnknownClient), errors.Is(err, usecase.ErrUnknownCampaign):
		h.abort(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, usecase.ErrNoPrimaryCampaign):
		h.abort(c, http.StatusConflict, "Invalid selection", err.Error())
	case errors.Is(err, usecase.ErrSameCampaign):
		h.abort(c, http.StatusUnprocessableEntity, "Invalid selection", err.Error())
	default:
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Request failed")
		h.abort(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

func (h *HTTPHandlers) abort(c *gin.Context, status int, title, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      title,
		"message":    message,
		"request_id": c.GetString("request_id"),
	})
}
