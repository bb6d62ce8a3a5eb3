// Package sharer resolves the calling user from the X-Sharer-User-Id header.
package sharer

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joy095/shareit/utils"
)

const HeaderName = "X-Sharer-User-Id"

// SharerMiddleware stores the caller's ID in the context under utils.UserIDKey.
// Requests without a numeric header are rejected with 400.
func SharerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderName))
		if raw == "" {
			utils.RespondError(c, utils.ErrUserIDNotFound)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.RespondError(c, utils.Validationf("%s must be a number, got %q", HeaderName, raw))
			return
		}

		c.Set(utils.UserIDKey, userID)
		c.Next()
	}
}
