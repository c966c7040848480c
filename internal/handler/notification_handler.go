package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/learning-tracker/internal/models"
	appErrors "github.com/noah-isme/learning-tracker/pkg/errors"
	"github.com/noah-isme/learning-tracker/pkg/response"
)

type notificationService interface {
	Pending(ctx context.Context) []models.CompletionNotice
	SendPending(ctx context.Context) (int, error)
}

// NotificationHandler triggers completion notice delivery.
type NotificationHandler struct {
	notifications notificationService
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(notifications notificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Pending godoc
// @Summary Completion notices awaiting delivery
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications/pending [get]
func (h *NotificationHandler) Pending(c *gin.Context) {
	notices := h.notifications.Pending(c.Request.Context())
	response.JSON(c, http.StatusOK, notices, map[string]interface{}{"total": len(notices)})
}

// Dispatch godoc
// @Summary Deliver every pending completion notice
// @Description Failed deliveries stay pending; the error response still reports how many were sent.
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /notifications/dispatch [post]
func (h *NotificationHandler) Dispatch(c *gin.Context) {
	sent, err := h.notifications.SendPending(c.Request.Context())
	if err != nil {
		appErr := appErrors.FromError(err)
		c.JSON(appErr.Status, response.Envelope{Error: appErr, Meta: map[string]interface{}{"sent": sent}})
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"sent": sent})
}
