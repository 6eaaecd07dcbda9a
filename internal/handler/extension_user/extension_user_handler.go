package handler

import (
	"net/http"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/model/response/wrapper"
	service "github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/extension_user"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

type ExtensionUserHandler struct {
	service service.ExtensionUserService
}

func NewExtensionUserHandler(service service.ExtensionUserService) *ExtensionUserHandler {
	return &ExtensionUserHandler{
		service: service,
	}
}

// CreateExtensionUser godoc
// @Summary      Create extension user
// @Description  Create a new extension user with API key
// @Tags         /api/v1/admin/extension
// @Accept       json
// @Produce      json
// @Param        user  body      entity.CreateExtensionUserRequest  true  "User data"
// @Success      201   {object}  wrapper.ResponseWrapper{data=entity.ExtensionUser}
// @Failure      400   {object}  wrapper.ErrorWrapper
// @Failure      500   {object}  wrapper.ErrorWrapper
// @Router       /extension/users/generate [post]
func (h *ExtensionUserHandler) CreateExtensionUser(c *gin.Context) {
	var req entity.CreateExtensionUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
			Success: false,
		})
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		if err.Error() == "username already exists" {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: err.Error(),
				Success: false,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Data:    user,
		Success: true,
	})
}

// GetExtensionUserByID godoc
// @Summary      Get extension user by ID
// @Description  Get a specific extension user by their ID
// @Tags         /api/v1/admin/extension
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.ExtensionUserPublic}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      404  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /extension/users/{id} [get]
func (h *ExtensionUserHandler) GetExtensionUserByID(c *gin.Context) {
	idStr := c.Param("id")
	userID, err := uuid.FromString(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid UUID format",
			Success: false,
		})
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if err.Error() == "extension user not found" {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{
				Message: "Extension user not found",
				Success: false,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    user.ToPublic(),
		Success: true,
	})
}

// RegenerateAPIKey godoc
// @Summary      Regenerate API key
// @Description  Replace an extension user's API key with a freshly generated one
// @Tags         /api/v1/admin/extension
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.RegenerateAPIKeyResponse}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /extension/users/{id}/regenerate [post]
func (h *ExtensionUserHandler) RegenerateAPIKey(c *gin.Context) {
	idStr := c.Param("id")
	userID, err := uuid.FromString(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid UUID format",
			Success: false,
		})
		return
	}

	resp, err := h.service.RegenerateAPIKey(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    resp,
		Success: true,
	})
}

// ValidateAPIKey godoc
// @Summary      Validate API key
// @Description  Return the extension user behind the presented X-API-Key
// @Tags         /api/v1/extension
// @Accept       json
// @Produce      json
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.ExtensionUserPublic}
// @Failure      401  {object}  wrapper.ErrorWrapper
// @Router       /users/auth [get]
func (h *ExtensionUserHandler) ValidateAPIKey(c *gin.Context) {
	user, exists := c.Get("extension_user")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{
			Message: "Not authenticated",
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    user.(*entity.ExtensionUser).ToPublic(),
		Success: true,
	})
}

// GetExtensionUserStats godoc
// @Summary      Extension user stats
// @Description  Aggregate counts of registered extension users
// @Tags         /api/v1/admin/extension
// @Accept       json
// @Produce      json
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.ExtensionUserStats}
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /extension/users/stats [get]
func (h *ExtensionUserHandler) GetExtensionUserStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    stats,
		Success: true,
	})
}
