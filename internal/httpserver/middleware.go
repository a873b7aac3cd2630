package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/domain"
)

const ownerCtxKey = "cartOwner"

// ownerMiddleware resolves whose cart a request operates on. Authentication
// itself is an upstream concern; this layer trusts the X-User-Id header the
// auth gateway sets, and falls back to the guest session id the storefront
// carries. Exactly one of the two ends up in the owner key.
func ownerMiddleware(sessions SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := strings.TrimSpace(c.GetHeader("X-User-Id")); userID != "" {
			c.Set(ownerCtxKey, domain.UserKey(userID))
			c.Next()
			return
		}

		sessionID := strings.TrimSpace(c.GetHeader("X-Session-Id"))
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "a user id or session id is required",
			})
			return
		}
		if err := sessions.Validate(sessionID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid session id",
			})
			return
		}
		c.Set(ownerCtxKey, domain.SessionKey(sessionID))
		c.Next()
	}
}

func ownerFromContext(c *gin.Context) (domain.OwnerKey, bool) {
	v, ok := c.Get(ownerCtxKey)
	if !ok {
		return domain.OwnerKey{}, false
	}
	owner, ok := v.(domain.OwnerKey)
	return owner, ok && !owner.IsZero()
}
