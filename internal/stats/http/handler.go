package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/response"
	"github.com/nekogravitycat/boat-rental-backend/internal/stats"
)

type Handler struct {
	service stats.Service
}

func NewHandler(service stats.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Summary(c *gin.Context) {
	d, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewSummaryResponse(d))
}

func bindForecast(c *gin.Context) (stats.Metric, stats.Period, bool) {
	var req ForecastRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return "", "", false
	}
	metric, err := stats.ParseMetric(req.Metric)
	if err != nil {
		response.Error(c, stats.ErrInvalidParameter.Detail("%v", err))
		return "", "", false
	}
	period, err := stats.ParsePeriod(req.Period)
	if err != nil {
		response.Error(c, stats.ErrInvalidParameter.Detail("%v", err))
		return "", "", false
	}
	return metric, period, true
}

func (h *Handler) Forecast(c *gin.Context) {
	metric, period, ok := bindForecast(c)
	if !ok {
		return
	}

	points, err := h.service.Forecast(c.Request.Context(), metric, period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewForecastResponse(metric, period, points))
}

func (h *Handler) Recommendations(c *gin.Context) {
	metric, period, ok := bindForecast(c)
	if !ok {
		return
	}

	recs, err := h.service.Recommendations(c.Request.Context(), metric, period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewRecommendationsResponse(recs))
}

func (h *Handler) Occupancy(c *gin.Context) {
	var req OccupancyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	period, err := stats.ParseOccupancyPeriod(req.Period)
	if err != nil {
		response.Error(c, stats.ErrInvalidParameter.Detail("%v", err))
		return
	}

	occ, err := h.service.Occupancy(c.Request.Context(), period, req.BoatID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewOccupancyResponse(occ))
}
