package handlers

import (
	"net/http"

	"inkwell/internal/store"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	intake *store.SubmissionIntake
}

func NewContactHandler(intake *store.SubmissionIntake) *ContactHandler {
	return &ContactHandler{intake: intake}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit records a contact-form message from an anonymous visitor.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if !bindJSON(c, &req) {
		return
	}

	submission, err := h.intake.Submit(c.Request.Context(), store.NewSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Thank you! Your message has been sent successfully.",
		"submission": submission,
	})
}
