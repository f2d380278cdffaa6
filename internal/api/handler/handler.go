package handler

import (
	"errors"
	"net/http"

	"bcms/backend/internal/events"
	"bcms/backend/internal/models"
	"bcms/backend/internal/notify"
	"bcms/backend/internal/policy"
	"bcms/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler holds the dependencies shared by every HTTP endpoint.
type Handler struct {
	Storage   storage.Storage
	Hub       *events.Hub
	Notifier  notify.Notifier
	JWTSecret []byte
}

func NewHandler(s storage.Storage, hub *events.Hub, n notify.Notifier, secret []byte) *Handler {
	if n == nil {
		n = notify.Noop{}
	}
	return &Handler{Storage: s, Hub: hub, Notifier: n, JWTSecret: secret}
}

// respondError maps the error taxonomy onto HTTP statuses. Every denied
// operation, including operations on records that do not exist, gets
// the same 403 body, so a caller cannot probe for record existence.
func respondError(c *gin.Context, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.Is(err, policy.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	default:
		// Transient storage or network failure. Nothing retries
		// automatically; the client may repeat the action.
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable"})
	}
}
