// Package handler contains the gin HTTP handlers. Handlers bind and validate
// request bodies, delegate to the command/query services, and map service
// errors to HTTP status codes; they hold no business logic of their own.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
