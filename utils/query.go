package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID parses a positive int64 path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, Validationf("Invalid %s: %q", name, raw)
	}
	return id, nil
}

// QueryInt reads an integer query parameter, returning fallback when absent.
func QueryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Validationf("Invalid %s: %q", name, raw)
	}
	return v, nil
}

// PageQuery reads the from/size pair used by list endpoints.
func PageQuery(c *gin.Context, defaultSize int) (from, size int, err error) {
	if from, err = QueryInt(c, "from", 0); err != nil {
		return 0, 0, err
	}
	if size, err = QueryInt(c, "size", defaultSize); err != nil {
		return 0, 0, err
	}
	return from, size, nil
}
