package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AN0DA/JobTrackr-sub000/pkg/response"
)

func (h *Handler) GetAnalyticsSummary(c *gin.Context) {
	summary, err := h.Analytics.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, summary)
}

func (h *Handler) GetStatusBreakdown(c *gin.Context) {
	counts, err := h.Analytics.StatusBreakdown(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, counts)
}

func (h *Handler) GetWeeklyApplications(c *gin.Context) {
	weeks, _ := strconv.Atoi(c.DefaultQuery("weeks", "0"))

	counts, err := h.Analytics.WeeklyApplicationCounts(c.Request.Context(), weeks)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, counts)
}

func (h *Handler) GetTopCompanies(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	stats, err := h.Analytics.TopCompanies(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, stats)
}

func (h *Handler) GetRecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, err := h.Analytics.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, items)
}
