package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coopregistry/coopregistry-api/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// DeveloperLogin authenticates a platform developer
func (h *AuthHandler) DeveloperLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation",
			"message": "Correo y contraseña son requeridos",
		})
		return
	}

	result, err := h.authService.DeveloperLogin(c.Request.Context(), req.Email, req.Password, requestMeta(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SocietyLogin authenticates a society admin of an approved society
func (h *AuthHandler) SocietyLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation",
			"message": "Correo y contraseña son requeridos",
		})
		return
	}

	result, err := h.authService.SocietyLogin(c.Request.Context(), req.Email, req.Password, requestMeta(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Logout acknowledges a logout. Tokens are stateless and expire on their
// own; there is no server-side invalidation.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada exitosamente"})
}
