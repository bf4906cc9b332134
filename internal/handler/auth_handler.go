package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/minhokang/signal-backend-go/pkg/response"
)

// AuthHandler issues API tokens
type AuthHandler struct {
	secret   string
	password string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(secret, password string) *AuthHandler {
	return &AuthHandler{secret: secret, password: password}
}

type tokenRequest struct {
	Password string `json:"password" binding:"required"`
}

// Token handles POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
		response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "api",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.secret))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to sign token", err)
		return
	}

	response.Success(c, gin.H{
		"token":     token,
		"expiresAt": claims.ExpiresAt.UnixMilli(),
	})
}
