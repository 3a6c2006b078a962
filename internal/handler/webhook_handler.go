package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dealflow/internal/service"
)

// WebhookHandler handles form-vendor submission webhooks.
type WebhookHandler struct {
	intake service.IntakeService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(intake service.IntakeService) *WebhookHandler {
	return &WebhookHandler{intake: intake}
}

// Submit handles POST /api/v1/webhooks/submission
func (h *WebhookHandler) Submit(c *gin.Context) {
	var payload service.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_PAYLOAD", "request body is not a valid submission payload")
		return
	}

	result, err := h.intake.ProcessWebhook(c.Request.Context(), &payload)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
