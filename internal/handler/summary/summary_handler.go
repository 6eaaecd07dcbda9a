package handler

import (
	"net/http"
	"strconv"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/model/response/wrapper"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/insights"
	service "github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/summary"
	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	service service.SummaryService
}

func NewSummaryHandler(service service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		service: service,
	}
}

// GetTopDomains godoc
// @Summary      Top visited domains
// @Description  Most visited domains for a user over a period, with visit share
// @Tags         /api/v1/summary
// @Accept       json
// @Produce      json
// @Param        userId     query  string  true   "User ID"
// @Param        period     query  string  false  "today | week | month (default week)"
// @Param        start_date query  string  false  "Custom range start, YYYY-MM-DD"
// @Param        end_date   query  string  false  "Custom range end, YYYY-MM-DD"
// @Param        limit      query  int     false  "Max domains, 1-50 (default 10)"
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.TopDomainsResponse}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /summary/top-domains [get]
func (h *SummaryHandler) GetTopDomains(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	resp, err := h.service.GetTopDomains(
		c.Request.Context(),
		c.Query("userId"),
		c.Query("period"),
		c.Query("start_date"),
		c.Query("end_date"),
		limit,
	)
	if err != nil {
		status := http.StatusInternalServerError
		if insights.IsInvalidDateRange(err) || err.Error() == "user ID is required" {
			status = http.StatusBadRequest
		}
		c.JSON(status, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    resp,
		Success: true,
	})
}

// GetDailySummary godoc
// @Summary      Daily browsing summary
// @Description  Per-day visit counts, minutes and unique domains over a period
// @Tags         /api/v1/summary
// @Accept       json
// @Produce      json
// @Param        userId     query  string  true   "User ID"
// @Param        period     query  string  false  "today | week | month (default week)"
// @Param        start_date query  string  false  "Custom range start, YYYY-MM-DD"
// @Param        end_date   query  string  false  "Custom range end, YYYY-MM-DD"
// @Success      200  {object}  wrapper.ResponseWrapper{data=[]entity.DailySummary}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /summary/daily [get]
func (h *SummaryHandler) GetDailySummary(c *gin.Context) {
	summaries, err := h.service.GetDailySummary(
		c.Request.Context(),
		c.Query("userId"),
		c.Query("period"),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		status := http.StatusInternalServerError
		if insights.IsInvalidDateRange(err) || err.Error() == "user ID is required" {
			status = http.StatusBadRequest
		}
		c.JSON(status, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    summaries,
		Success: true,
	})
}

// GetWeeklySummary godoc
// @Summary      Weekly browsing summary
// @Description  Per-week visit counts, minutes and unique domains
// @Tags         /api/v1/summary
// @Accept       json
// @Produce      json
// @Param        userId  query  string  true   "User ID"
// @Param        weeks   query  int     false  "How many weeks back, 1-12 (default 4)"
// @Success      200  {object}  wrapper.ResponseWrapper{data=[]entity.WeeklySummary}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /summary/weekly [get]
func (h *SummaryHandler) GetWeeklySummary(c *gin.Context) {
	weeks, _ := strconv.Atoi(c.DefaultQuery("weeks", "0"))

	summaries, err := h.service.GetWeeklySummary(c.Request.Context(), c.Query("userId"), weeks)
	if err != nil {
		status := http.StatusInternalServerError
		if err.Error() == "user ID is required" {
			status = http.StatusBadRequest
		}
		c.JSON(status, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    summaries,
		Success: true,
	})
}
