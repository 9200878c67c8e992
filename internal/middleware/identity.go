package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/festhive/registration/internal/identity"
)

// Header names set by the auth gateway after session resolution.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Identity returns a middleware that resolves the caller identity from
// gateway headers and stores it in the request context.
//
// Requests without a resolvable identity are rejected; the identity provider
// is the only component allowed to mint these headers.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.GetHeader(HeaderUserID)
		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHENTICATED",
					"message": "missing or invalid caller identity",
				},
			})
			return
		}

		role := identity.Role(c.GetHeader(HeaderUserRole))
		if role != identity.RoleAdmin {
			role = identity.RoleParticipant
		}

		identity.Set(c, identity.Identity{UserID: userID, Role: role})
		c.Next()
	}
}
