// Package middleware holds the gin middleware shared by the route groups.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/token"
)

const userIDKey = "auth_user_id"

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user id in the gin context.
func RequireAuth(codec *token.Codec) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing bearer token"})
			return
		}

		claims, err := codec.Verify(strings.TrimPrefix(header, prefix))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}
		rawID, ok := claims["user_id"].(float64)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		ctx.Set(userIDKey, uint(rawID))
		ctx.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
