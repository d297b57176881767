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

type AddAddressRequest struct {
	CombinedAddress string `json:"combinedAddress"`
}

type parsedAddress struct {
	Street     string
	City       string
	State      string
	Country    string
	PostalCode string
}

// splitCombinedAddress maps the comma-separated segments of a combined
// address positionally to street, city, state, country and postal code.
// Segments beyond the fifth are ignored. A street containing a comma
// shifts every later field; the wire format is a product decision.
func splitCombinedAddress(combined string) (parsedAddress, bool) {
	parts := strings.Split(combined, ",")

	fields := make([]string, 5)
	for i := 0; i < len(fields) && i < len(parts); i++ {
		fields[i] = strings.TrimSpace(parts[i])
	}
	for _, field := range fields {
		if field == "" {
			return parsedAddress{}, false
		}
	}

	return parsedAddress{
		Street:     fields[0],
		City:       fields[1],
		State:      fields[2],
		Country:    fields[3],
		PostalCode: fields[4],
	}, true
}

// AddAddress creates an address owned by the authenticated user.
func AddAddress(addresses store.AddressStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c, "ADDRESS")
		if !ok {
			return
		}

		var req AddAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "ADDRESS", "Incomplete address")
			return
		}

		parsed, ok := splitCombinedAddress(req.CombinedAddress)
		if !ok {
			respondWithError(c, http.StatusBadRequest, "ADDRESS", "Incomplete address")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		address := &models.Address{
			Street:     parsed.Street,
			City:       parsed.City,
			State:      parsed.State,
			Country:    parsed.Country,
			PostalCode: parsed.PostalCode,
			UserID:     userID,
			CreatedAt:  time.Now(),
		}

		id, err := addresses.Insert(ctx, address)
		if err != nil {
			log.Println("[ADDRESS] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, "ADDRESS", "Server error")
			return
		}
		address.ID = id

		log.Println("[ADDRESS] [INFO] address created:", id.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"message": "Address added successfully",
			"address": address,
		})
	}
}

// ListAddresses returns every address owned by the authenticated user,
// in store-native order.
func ListAddresses(addresses store.AddressStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c, "ADDRESS")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := addresses.FindByUser(ctx, userID)
		if err != nil {
			log.Println("[ADDRESS] [ERROR] list failed:", err)
			respondWithError(c, http.StatusInternalServerError, "ADDRESS", "Server error")
			return
		}

		c.JSON(http.StatusOK, list)
	}
}
