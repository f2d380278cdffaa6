package handler

import (
	"net/http"

	"bcms/backend/internal/auth"
	"bcms/backend/internal/models"
	"bcms/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type complaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *Handler) CreateComplaint(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	var req complaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	complaint := &models.Complaint{
		StudentID:   p.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    models.Category(req.Category),
	}
	if err := h.Storage.CreateComplaint(p, complaint); err != nil {
		respondError(c, err)
		return
	}

	h.Notifier.ComplaintFiled(complaint)
	c.JSON(http.StatusCreated, complaint)
}

func (h *Handler) ListComplaints(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	complaints, err := h.Storage.ListComplaints(p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *Handler) GetComplaint(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	complaint, err := h.Storage.GetComplaint(p, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

type complaintUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
}

func (h *Handler) UpdateComplaint(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	var req complaintUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	upd := storage.ComplaintUpdate{Title: req.Title, Description: req.Description}
	if req.Category != nil {
		cat := models.Category(*req.Category)
		upd.Category = &cat
	}
	if req.Status != nil {
		st := models.Status(*req.Status)
		upd.Status = &st
	}

	complaint, err := h.Storage.UpdateComplaint(p, c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

type assignRequest struct {
	StaffID string `json:"staff_id"`
}

// AssignComplaint hands the complaint to a staff member; assigned_to and
// status move together in one statement on the storage side.
func (h *Handler) AssignComplaint(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	complaint, err := h.Storage.AssignComplaint(p, c.Param("id"), req.StaffID)
	if err != nil {
		respondError(c, err)
		return
	}

	staffName := req.StaffID
	if staff, err := h.Storage.GetProfile(p, req.StaffID); err == nil {
		staffName = staff.FullName
	}
	h.Notifier.ComplaintAssigned(complaint, staffName)
	c.JSON(http.StatusOK, complaint)
}

func (h *Handler) DeleteComplaint(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	if err := h.Storage.DeleteComplaint(p, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) ListComments(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	comments, err := h.Storage.ListComments(p, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

type commentRequest struct {
	Message string `json:"message"`
}

func (h *Handler) AddComment(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment := &models.Comment{
		ComplaintID: c.Param("id"),
		UserID:      p.ID,
		Message:     req.Message,
	}
	if err := h.Storage.AddComment(p, comment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
