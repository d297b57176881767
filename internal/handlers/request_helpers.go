package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondValidationError translates a binding failure into the route's
// canonical 400, attaching per-field details when the failure came from
// required-tag validation.
func respondValidationError(c *gin.Context, route string, message string, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			details = append(details, fmt.Sprintf("%s is required", lowerCamel(fieldError.Field())))
		}
		log.Printf("[%s] returning error %d: %s %v", route, http.StatusBadRequest, message, details)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message, "details": details})
		return
	}
	respondWithError(c, http.StatusBadRequest, route, message)
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// userIDFromContext reads the id the auth middleware attached. A miss
// means the route was wired without RequireUser.
func userIDFromContext(c *gin.Context, route string) (primitive.ObjectID, bool) {
	value, ok := c.Get("userId")
	if !ok {
		log.Printf("[%s] [ERROR] userId missing in context", route)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Invalid token"})
		return primitive.NilObjectID, false
	}
	userID, ok := value.(primitive.ObjectID)
	if !ok {
		log.Printf("[%s] [ERROR] userId in context has wrong type", route)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Invalid token"})
		return primitive.NilObjectID, false
	}
	return userID, true
}
