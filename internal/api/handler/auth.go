package handler

import (
	"net/http"

	"bcms/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Signup creates an account and returns a bearer token. The profile row
// and the default student role are inserted atomically by the storage
// layer. Session management beyond token issue lives outside this
// service.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.Storage.CreateAccount(req.FullName, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := auth.IssueToken(h.JWTSecret, profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "profile": profile})
}

type tokenRequest struct {
	Email string `json:"email"`
}

// Token issues a bearer token for an existing account.
func (h *Handler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.Storage.GetProfileByEmail(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := auth.IssueToken(h.JWTSecret, profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": profile.ID})
}
