package middleware

import (
	"net/http"
	"strings"

	"labbook/services/session"
	"labbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKey = "session"

// SessionMiddleware resolves the bearer token into a session for every request.
// Callers without a valid token continue as anonymous.
func SessionMiddleware(provider session.SessionProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		sess, err := provider.Resolve(c.Request.Context(), token)
		if err != nil {
			utils.GetLogger().Warn("Session lookup failed", zap.Error(err))
			sess = session.Anonymous
		}
		SetSession(c, sess)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// SetSession stores sess on the request context.
func SetSession(c *gin.Context, sess session.Session) {
	c.Set(sessionKey, sess)
}

// GetSession returns the request's session, or Anonymous when none was resolved.
func GetSession(c *gin.Context) session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(session.Session); ok {
			return sess
		}
	}
	return session.Anonymous
}

// RequireAuth rejects anonymous callers and points them at the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Authentication required",
				"redirect": "/login",
			})
			return
		}
		c.Next()
	}
}

// RequireGuest rejects callers who are already signed in.
func RequireGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c).IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":    "Already signed in",
				"redirect": "/",
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin allows only authenticated admins through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if !sess.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Authentication required",
				"redirect": "/login",
			})
			return
		}
		if !sess.User().IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unauthorized admin access"})
			return
		}
		c.Next()
	}
}
