package middleware

import (
	"errors"
	"log"

	apiError "travel-agency-api/internal/errors"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors attached via c.Error into the JSON error
// body, logging server faults with the request that caused them.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var apiErr *apiError.APIError
		if !errors.As(err, &apiErr) {
			// a raw error nobody wrapped is a server fault
			apiErr = apiError.Internal(err)
		}

		if apiErr.Status >= 500 {
			log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, apiErr.Internal)
		} else {
			log.Printf("[INFO] %s %s: %s: %v", c.Request.Method, c.Request.URL.Path, apiErr.Message, apiErr.Internal)
		}

		c.AbortWithStatusJSON(apiErr.Status, apiErr)
	}
}
