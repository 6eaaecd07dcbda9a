package middleware

import (
	"fmt"
	"net/http"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/model/response/wrapper"
	service "github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/extension_user"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/pkg/utils"
	"github.com/gin-gonic/gin"
)

func AuthenticationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "Missing authentication token", Success: false})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			fmt.Println("Error validating token", err)
			c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "Invalid authentication token", Success: false})
			c.Abort()
			return
		}

		c.Set("user_id", claims["user_id"])
		c.Next()
	}
}

// APIKeyMiddleware authenticates browser-extension requests via X-API-Key.
func APIKeyMiddleware(extensionUserService service.ExtensionUserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")

		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{
				Message: "X-API-Key header is required",
				Success: false,
			})
			c.Abort()
			return
		}

		user, err := extensionUserService.ValidateAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{
				Message: "Invalid or inactive API key",
				Success: false,
			})
			c.Abort()
			return
		}

		c.Set("extension_user", user)
		c.Set("extension_user_id", user.ID.String())
		c.Set("extension_username", user.Username)

		c.Next()
	}
}
