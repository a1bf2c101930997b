package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "projecthub/internal/errors"
	"projecthub/internal/services"
)

const defaultFeedLimit = 20

// DashboardHandler serves the aggregated dashboard and activity views.
// The backing stores are bulk-loaded on the first request and patched
// by the write paths afterwards, so reads serve from memory; Refresh
// re-syncs them from the database on demand.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary returns entity counts, status and priority breakdowns, and
// completion rates.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	h.dashboardService.EnsureLoaded(c.Request.Context())
	c.JSON(http.StatusOK, h.dashboardService.Summary())
}

// GetProgress returns per-active-project completion percentages.
func (h *DashboardHandler) GetProgress(c *gin.Context) {
	h.dashboardService.EnsureLoaded(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"projects": h.dashboardService.Progress(),
	})
}

// GetWorkload returns assigned-task counts per user.
func (h *DashboardHandler) GetWorkload(c *gin.Context) {
	h.dashboardService.EnsureLoaded(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"users": h.dashboardService.Workload(),
	})
}

// GetActivity returns the recent-activity feed, newest first.
func (h *DashboardHandler) GetActivity(c *gin.Context) {
	h.dashboardService.EnsureLoaded(c.Request.Context())

	limit := defaultFeedLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": h.dashboardService.Feed(limit),
	})
}

// Refresh reloads every store from the database. Used when changes
// bypassed the API, for example a direct import.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	if err := h.dashboardService.Refresh(c.Request.Context()); err != nil {
		apierrors.InternalError(c, "Failed to refresh dashboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dashboard refreshed"})
}
