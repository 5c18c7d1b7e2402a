package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
)

const (
	userIDKey   = "userId"
	userNameKey = "userName"
	userRoleKey = "userRole"
	isGuestKey  = "isGuest"

	// SessionCookie carries the session token for browser clients.
	SessionCookie = "session"
)

// Auth resolves the caller's identity from a bearer token, the session cookie,
// or an X-Guest-Id header, in that order. Requests without any identity pass
// through anonymously; handlers that need one check UserIDFromContext.
// An invalid bearer token is rejected. An invalid session cookie is expired
// and the request continues anonymously, so stale cookies never lock a
// browser out of login or the public endpoints.
func Auth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		token, source := tokenFromRequest(c)
		switch source {
		case tokenFromHeader:
			claims, err := verify(issuer, token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			setIdentity(c, claims)
			c.Next()
			return
		case tokenFromCookie:
			claims, err := verify(issuer, token)
			if err == nil {
				setIdentity(c, claims)
				c.Next()
				return
			}
			telemetry.Info("auth.stale_session", map[string]any{
				"request_id": RequestIDFromContext(c),
				"path":       c.Request.URL.Path,
			})
			ClearSessionCookie(c, c.Request.TLS != nil)
		}

		if guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id")); guestID != "" {
			c.Set(userIDKey, "guest:"+guestID)
			c.Set(isGuestKey, true)
		}
		c.Next()
	}
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}

type tokenSource int

const (
	tokenAbsent tokenSource = iota
	tokenFromHeader
	tokenFromCookie
)

func tokenFromRequest(c *gin.Context) (string, tokenSource) {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		if !strings.HasPrefix(header, "Bearer ") {
			return "", tokenFromHeader
		}
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer")), tokenFromHeader
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, tokenFromCookie
	}
	return "", tokenAbsent
}

func verify(issuer *auth.Issuer, token string) (auth.Claims, error) {
	if token == "" || issuer == nil {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return issuer.Verify(token)
}

func setIdentity(c *gin.Context, claims auth.Claims) {
	c.Set(userIDKey, claims.UserID())
	if claims.Name != "" {
		c.Set(userNameKey, claims.Name)
	}
	if claims.Role != "" {
		c.Set(userRoleKey, claims.Role)
	}
	c.Set(isGuestKey, false)
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	return stringFromContext(c, userIDKey)
}

// UserNameFromContext fetches the display name set by the auth middleware.
func UserNameFromContext(c *gin.Context) string {
	return stringFromContext(c, userNameKey)
}

// UserRoleFromContext fetches the role set by the auth middleware.
func UserRoleFromContext(c *gin.Context) string {
	return stringFromContext(c, userRoleKey)
}

// IsGuest reports whether the identity came from an X-Guest-Id header.
func IsGuest(c *gin.Context) bool {
	if c == nil {
		return false
	}
	val, _ := c.Get(isGuestKey)
	guest, _ := val.(bool)
	return guest
}

func stringFromContext(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(key)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
