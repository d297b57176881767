package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/auth"
	"backend/internal/store"
)

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// GetMe returns the authenticated user's account. The password digest
// never serializes (json:"-" on the model).
func GetMe(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c, "USER")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := users.FindByID(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, "USER", "User not found")
			return
		}
		if err != nil {
			log.Println("[USER] [ERROR] get me failed:", err)
			respondWithError(c, http.StatusInternalServerError, "USER", "Failed to fetch user data")
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// UpdateMe overwrites the profile fields with the request body and
// returns the updated account. Fields absent from the body are cleared.
func UpdateMe(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c, "USER")
		if !ok {
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "USER", "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		update := store.ProfileUpdate{
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:     strings.TrimSpace(req.Phone),
		}

		user, err := users.UpdateProfile(ctx, userID, update)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, "USER", "User not found")
			return
		}
		if errors.Is(err, store.ErrDuplicate) {
			respondWithError(c, http.StatusBadRequest, "USER", "Username or email already exists")
			return
		}
		if err != nil {
			log.Println("[USER] [ERROR] update failed:", err)
			respondWithError(c, http.StatusInternalServerError, "USER", "Failed to update user information")
			return
		}

		log.Println("[USER] [INFO] profile updated:", user.ID.Hex())
		c.JSON(http.StatusOK, user)
	}
}

// ChangePassword verifies the current secret before storing a fresh
// hash of the new one. The plaintext never reaches the store.
func ChangePassword(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c, "USER")
		if !ok {
			return
		}

		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "USER", "currentPassword and newPassword are required", err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := users.FindByID(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, "USER", "User not found")
			return
		}
		if err != nil {
			log.Println("[USER] [ERROR] change password lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, "USER", "Failed to change password")
			return
		}

		if !auth.CheckPassword(req.CurrentPassword, user.Password) {
			respondWithError(c, http.StatusBadRequest, "USER", "Current password is incorrect")
			return
		}

		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			log.Println("[USER] [ERROR] change password hash failed:", err)
			respondWithError(c, http.StatusInternalServerError, "USER", "Failed to change password")
			return
		}

		if err := users.UpdatePassword(ctx, userID, hash); err != nil {
			log.Println("[USER] [ERROR] change password update failed:", err)
			respondWithError(c, http.StatusInternalServerError, "USER", "Failed to change password")
			return
		}

		log.Println("[USER] [INFO] password updated:", userID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	}
}
