package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/model/response/wrapper"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/insights"
	"github.com/gin-gonic/gin"
)

type InsightsHandler struct {
	service insights.InsightsService
}

func NewInsightsHandler(service insights.InsightsService) *InsightsHandler {
	return &InsightsHandler{
		service: service,
	}
}

// GetHoarders godoc
// @Summary      Tab hoarder report
// @Description  Score every tab in the period and return the ones kept open without being used
// @Tags         /api/v1/insights
// @Accept       json
// @Produce      json
// @Param        userId     query     string  false  "User ID (admin only, extension users are implied by their key)"
// @Param        period     query     string  false  "today | week | month (default week)"
// @Param        start_date query     string  false  "Custom range start, YYYY-MM-DD"
// @Param        end_date   query     string  false  "Custom range end, YYYY-MM-DD"
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.HoarderReport}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /insights/hoarders [get]
func (h *InsightsHandler) GetHoarders(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}

	report, err := h.service.GetHoarderReport(
		c.Request.Context(),
		userID,
		c.Query("period"),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		if insights.IsInvalidDateRange(err) {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    report,
		Success: true,
	})
}

// GetSerialOpeners godoc
// @Summary      Serial opener report
// @Description  Detect resources opened repeatedly with near-zero engagement
// @Tags         /api/v1/insights
// @Accept       json
// @Produce      json
// @Param        userId             query  string  false  "User ID (admin only)"
// @Param        period             query  string  false  "today | week | month (default week)"
// @Param        start_date         query  string  false  "Custom range start, YYYY-MM-DD"
// @Param        end_date           query  string  false  "Custom range end, YYYY-MM-DD"
// @Param        include_comparison query  bool    false  "Also compute the previous equal-length period"
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.SerialOpenerReport}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /insights/serial-openers [get]
func (h *InsightsHandler) GetSerialOpeners(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}

	includeComparison, _ := strconv.ParseBool(c.DefaultQuery("include_comparison", "false"))

	report, err := h.service.GetSerialOpenerReport(
		c.Request.Context(),
		userID,
		c.Query("period"),
		c.Query("start_date"),
		c.Query("end_date"),
		includeComparison,
	)
	if err != nil {
		if insights.IsInvalidDateRange(err) {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    report,
		Success: true,
	})
}

// GetRecentActivity godoc
// @Summary      Recent activity sessions
// @Description  Cluster recent visits into browsing sessions, newest first
// @Tags         /api/v1/insights
// @Accept       json
// @Produce      json
// @Param        userId  query  string  false  "User ID (admin only)"
// @Param        since   query  string  false  "RFC3339 cutoff (default: 24h ago)"
// @Param        limit   query  int     false  "Max sessions, 1-100 (default 20)"
// @Success      200  {object}  wrapper.ResponseWrapper{data=[]entity.Session}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /insights/recent-activity [get]
func (h *InsightsHandler) GetRecentActivity(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}

	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: "Invalid since parameter, expected RFC3339 timestamp",
			})
			return
		}
		since = &parsed
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: "Invalid limit parameter",
			})
			return
		}
		limit = parsed
	}

	sessions, err := h.service.GetRecentActivity(c.Request.Context(), userID, since, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    sessions,
		Success: true,
	})
}

// resolveUserID prefers the authenticated extension identity and falls back
// to the userId query parameter on admin routes.
func resolveUserID(c *gin.Context) (string, bool) {
	if id, ok := c.Get("extension_user_id"); ok {
		return id.(string), true
	}
	if id := c.Query("userId"); id != "" {
		return id, true
	}

	c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
		Message: "userId query parameter is required",
	})
	return "", false
}
