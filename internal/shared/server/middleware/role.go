package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/respond"
)

// RequireRole rejects requests whose session role is not one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		if UserIDFromContext(c) == "" || IsGuest(c) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Not logged in", nil)
			return
		}
		if _, ok := allowed[UserRoleFromContext(c)]; !ok {
			respond.Error(c, http.StatusForbidden, "forbidden", "insufficient role", nil)
			return
		}
		c.Next()
	}
}
