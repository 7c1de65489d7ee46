package handlers

import (
	"net/http"

	"labbook/middleware"
	"labbook/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exchanges identity tokens for sessions.
type AuthHandler struct {
	Sessions session.SessionProvider
}

func NewAuthHandler(sessions session.SessionProvider) *AuthHandler {
	return &AuthHandler{Sessions: sessions}
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	token, sess, err := h.Sessions.Login(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("User signed in", zap.String("userID", sess.User().ID))
	c.JSON(http.StatusOK, gin.H{"token": token, "user": sess.User()})
}

// LogoutHandler handles POST /api/auth/logout.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	if err := h.Sessions.Logout(c.Request.Context(), sess.Token()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// SessionHandler handles GET /api/auth/session.
func (h *AuthHandler) SessionHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	c.JSON(http.StatusOK, gin.H{"isAuthenticated": sess.IsAuthenticated(), "user": sess.User()})
}
