package handler

import (
	"net/http"
	"strconv"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/model/response/wrapper"
	service "github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/visit"
	"github.com/gin-gonic/gin"
)

type VisitHandler struct {
	service service.VisitService
}

func NewVisitHandler(service service.VisitService) *VisitHandler {
	return &VisitHandler{
		service: service,
	}
}

// CreateVisit godoc
// @Summary      Record page visit
// @Description  Record a single page visit reported by the browser extension
// @Tags         /api/v1/extension/visits
// @Accept       json
// @Produce      json
// @Param        visit  body      entity.CreateVisitRequest  true  "Visit data"
// @Success      201    {object}  wrapper.ResponseWrapper{data=entity.VisitRecord}
// @Failure      400    {object}  wrapper.ErrorWrapper
// @Failure      500    {object}  wrapper.ErrorWrapper
// @Router       /visits [post]
func (h *VisitHandler) CreateVisit(c *gin.Context) {
	var req entity.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	fillUserID(c, &req.UserID)

	visit, err := h.service.CreateVisit(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Data:    visit,
		Success: true,
	})
}

// BatchCreateVisits godoc
// @Summary      Batch record page visits
// @Description  Record up to 1000 page visits in one request
// @Tags         /api/v1/extension/visits
// @Accept       json
// @Produce      json
// @Param        visits  body      entity.BatchCreateVisitRequest  true  "Visits data"
// @Success      201     {object}  wrapper.ResponseWrapper{data=string}
// @Failure      400     {object}  wrapper.ErrorWrapper
// @Failure      500     {object}  wrapper.ErrorWrapper
// @Router       /visits/batch [post]
func (h *VisitHandler) BatchCreateVisits(c *gin.Context) {
	var req entity.BatchCreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	for i := range req.Visits {
		fillUserID(c, &req.Visits[i].UserID)
	}

	created, err := h.service.BatchCreateVisits(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Data:    "Successfully created " + strconv.Itoa(created) + " visits",
		Success: true,
	})
}

// CreateClosure godoc
// @Summary      Record tab closure
// @Description  Record that a tab was closed, with its lifetime totals
// @Tags         /api/v1/extension/visits
// @Accept       json
// @Produce      json
// @Param        closure  body      entity.CreateTabClosureRequest  true  "Closure data"
// @Success      201      {object}  wrapper.ResponseWrapper{data=entity.TabClosureRecord}
// @Failure      400      {object}  wrapper.ErrorWrapper
// @Failure      500      {object}  wrapper.ErrorWrapper
// @Router       /closures [post]
func (h *VisitHandler) CreateClosure(c *gin.Context) {
	var req entity.CreateTabClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	fillUserID(c, &req.UserID)

	closure, err := h.service.CreateClosure(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Data:    closure,
		Success: true,
	})
}

// fillUserID stamps the authenticated extension user onto payloads that
// omitted it, so a key can only ever write its own data.
func fillUserID(c *gin.Context, userID *string) {
	if id, ok := c.Get("extension_user_id"); ok {
		*userID = id.(string)
	}
}
