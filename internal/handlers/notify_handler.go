package handlers

import (
	"log"
	"net/http"

	"go-cookie-shop/internal/notify"

	"github.com/gin-gonic/gin"
)

type NotifyRequest struct {
	Message string `json:"message" binding:"required"`
}

// NotifyHandler relays a free-form message to the configured Telegram
// chats, e.g. for manual announcements from the admin panel.
type NotifyHandler struct {
	Notifier notify.Notifier
}

func (h *NotifyHandler) Send(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	if err := h.Notifier.SendText(req.Message); err != nil {
		log.Printf("notify: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to deliver notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification sent"})
}
