package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/store"
)

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact stores a contact-form submission. Unauthenticated.
func SubmitContact(contacts store.ContactStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "CONTACT", "Incomplete details", err)
			return
		}

		name := strings.TrimSpace(req.Name)
		email := strings.TrimSpace(req.Email)
		message := strings.TrimSpace(req.Message)
		if name == "" || email == "" || message == "" {
			respondWithError(c, http.StatusBadRequest, "CONTACT", "Incomplete details")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		contact := &models.Contact{
			Name:      name,
			Email:     email,
			Message:   message,
			CreatedAt: time.Now(),
		}

		id, err := contacts.Insert(ctx, contact)
		if err != nil {
			log.Println("[CONTACT] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, "CONTACT", "Server error")
			return
		}
		contact.ID = id

		log.Println("[CONTACT] [INFO] message received from:", email)
		c.JSON(http.StatusCreated, gin.H{
			"message": "Message sent successfully",
			"contact": contact,
		})
	}
}
