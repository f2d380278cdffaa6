package handler

import (
	"net/http"
	"time"

	"bcms/backend/internal/auth"
	"bcms/backend/internal/dashboard"
	"bcms/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Dashboard returns the composed view for the caller's role. Query
// params: q (free text), status, assigned_to, sort (newest | oldest |
// owner | title). All filters default to unconstrained.
func (h *Handler) Dashboard(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)

	complaints, err := h.Storage.ListComplaints(p)
	if err != nil {
		respondError(c, err)
		return
	}
	profiles, err := h.Storage.ListProfiles(p)
	if err != nil {
		respondError(c, err)
		return
	}

	ownerNames := make(map[string]string, len(profiles))
	for _, profile := range profiles {
		ownerNames[profile.ID] = profile.FullName
	}

	f := dashboard.Filter{
		Query:      c.Query("q"),
		Status:     models.Status(c.Query("status")),
		AssignedTo: c.Query("assigned_to"),
	}
	key := dashboard.ParseSortKey(c.Query("sort"))

	view := dashboard.Compose(p.Role, complaints, ownerNames, f, key, time.Now())
	c.JSON(http.StatusOK, view)
}
