// utils/context.go
package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joy095/shareit/logger"
)

// UserIDKey is the gin context key the sharer middleware stores the caller under.
const UserIDKey = "user_id"

// GetUserIDFromContext extracts the caller's user ID set by the sharer middleware.
func GetUserIDFromContext(c *gin.Context) (int64, error) {
	raw, exists := c.Get(UserIDKey)
	if !exists {
		return 0, ErrUserIDNotFound
	}

	userID, ok := raw.(int64)
	if !ok {
		logger.ErrorLogger.Errorf("User ID in context is not an int64, actual type: %T", raw)
		return 0, fmt.Errorf("invalid user ID format in context")
	}
	return userID, nil
}
