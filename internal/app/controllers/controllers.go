package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses a positive integer ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// currentUserID reads the authenticated user's ID set by the JWT middleware
func currentUserID(ctx *gin.Context) (int64, bool) {
	value, exists := ctx.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// currentRole reads the authenticated user's role set by the JWT middleware
func currentRole(ctx *gin.Context) string {
	value, exists := ctx.Get("roleType")
	if !exists {
		return ""
	}
	role, _ := value.(string)
	return role
}
