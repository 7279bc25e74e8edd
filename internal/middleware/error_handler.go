package middleware

import (
	"fmt"
	"net/http"

	"resi-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers from panics and converts them to 500 responses
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{
					Error: "internal server error",
				})
				_ = c.Error(fmt.Errorf("panic recovered: %v", r))
			}
		}()
		c.Next()
	}
}

// NoRouteHandler responds to unknown paths
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Error: "route not found"})
	}
}

// NoMethodHandler responds to known paths with unsupported methods
func NoMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, utils.ErrorResponse{Error: "method not allowed"})
	}
}
