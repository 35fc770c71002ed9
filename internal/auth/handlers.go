package auth

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rennsz/fansite/internal/audit"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthController exposes the session endpoints of the admin panel.
type AuthController struct {
	service  *Service
	sessions *SessionManager
	audit    *audit.Logger
}

func NewAuthController(service *Service, sessions *SessionManager, auditLogger *audit.Logger) *AuthController {
	return &AuthController{service: service, sessions: sessions, audit: auditLogger}
}

func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	user, err := ac.service.Authenticate(req.Username, req.Password)
	if err != nil {
		ac.audit.Warning(c.Request.Context(), fmt.Sprintf("Failed login attempt: %s", req.Username), "auth")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	if err := ac.sessions.CreateSession(c.Request, user.Username); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create session"})
		return
	}
	ac.audit.Info(c.Request.Context(), fmt.Sprintf("Admin login successful: %s", user.Username), "auth")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ac *AuthController) Logout(c *gin.Context) {
	if username := ac.sessions.Username(c.Request); username != "" {
		ac.audit.Info(c.Request.Context(), fmt.Sprintf("Admin logout: %s", username), "auth")
	}
	if err := ac.sessions.DestroySession(c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ac *AuthController) CheckAuth(c *gin.Context) {
	if !ac.sessions.IsAuthenticated(c.Request) {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "username": ac.sessions.Username(c.Request)})
}
