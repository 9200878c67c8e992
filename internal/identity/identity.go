// Package identity carries the resolved caller identity through a request.
//
// Authentication itself is owned by the external identity provider; the
// gateway in front of this service resolves the session once and forwards the
// result as trusted headers. Handlers read the identity from the gin context
// and pass it explicitly into services.
package identity

import (
	"github.com/gin-gonic/gin"
)

// Role is the caller's role as issued by the identity provider.
type Role string

const (
	// RoleAdmin marks organizer accounts with access to admin operations.
	RoleAdmin Role = "admin"
	// RoleParticipant marks regular registrant accounts.
	RoleParticipant Role = "participant"
)

// contextKey is the gin context key under which the identity is stored.
const contextKey = "caller_identity"

// Identity is the authenticated caller of a core operation.
type Identity struct {
	UserID int64
	Role   Role
}

// IsAdmin reports whether the caller has the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Set stores the identity in the gin context.
func Set(c *gin.Context, id Identity) {
	c.Set(contextKey, id)
}

// FromContext returns the identity resolved for this request.
func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
