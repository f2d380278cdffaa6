package handler

import (
	"net/http"

	"bcms/backend/internal/auth"
	"bcms/backend/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListProfiles(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	profiles, err := h.Storage.ListProfiles(p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *Handler) GetProfile(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	profile, err := h.Storage.GetProfile(p, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type profileUpdateRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile := &models.Profile{ID: c.Param("id"), FullName: req.FullName, Email: req.Email}
	if err := h.Storage.UpdateProfile(p, profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// GetOwnRole returns the caller's role record. Other users' role rows
// are not readable through any endpoint.
func (h *Handler) GetOwnRole(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	role, err := h.Storage.GetOwnRole(p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

type roleRequest struct {
	Role string `json:"role"`
}

// SetRole promotes or demotes a user. Policy restricts this to admins.
func (h *Handler) SetRole(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	role := models.Role(req.Role)
	if err := h.Storage.SetRole(p, c.Param("id"), role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "role updated"})
}

// DeleteUser removes an account with its owned complaints and comments.
func (h *Handler) DeleteUser(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	if err := h.Storage.DeleteUser(p, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
