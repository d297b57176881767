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
	"backend/internal/models"
	"backend/internal/store"
)

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup creates an account and returns a token scoped to it. The
// account document itself is not returned.
func Signup(users store.UserStore, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "AUTH", "All fields are required", err)
			return
		}

		username := strings.TrimSpace(req.Username)
		email := strings.ToLower(strings.TrimSpace(req.Email))
		password := strings.TrimSpace(req.Password)
		if username == "" || email == "" || password == "" {
			respondWithError(c, http.StatusBadRequest, "AUTH", "All fields are required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err := users.FindByUsernameOrEmail(ctx, username, email)
		if err == nil {
			respondWithError(c, http.StatusBadRequest, "AUTH", "Username or email already exists")
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			log.Println("[AUTH] [ERROR] signup lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, "AUTH", "Server error")
			return
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			log.Println("[AUTH] [ERROR] signup password hash failed:", err)
			respondWithError(c, http.StatusInternalServerError, "AUTH", "Server error")
			return
		}

		now := time.Now()
		user := &models.User{
			Username:  username,
			Email:     email,
			Password:  hash,
			CreatedAt: now,
			UpdatedAt: now,
		}

		id, err := users.Insert(ctx, user)
		if errors.Is(err, store.ErrDuplicate) {
			// Lost the race against a concurrent signup; the unique
			// index caught what the existence check could not.
			respondWithError(c, http.StatusBadRequest, "AUTH", "Username or email already exists")
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] signup insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, "AUTH", "Server error")
			return
		}

		token, err := auth.IssueToken(id, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] signup token generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, "AUTH", "Server error")
			return
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{"token": token})
	}
}

// Login verifies credentials and returns a fresh token. A wrong password
// and an unknown email are both 400, matching the rest of the
// validation failures.
func Login(users store.UserStore, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "AUTH", "Email and password are required", err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || strings.TrimSpace(req.Password) == "" {
			respondWithError(c, http.StatusBadRequest, "AUTH", "Email and password are required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := users.FindByEmail(ctx, email)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusBadRequest, "AUTH", "User with this email does not exist")
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] login lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, "AUTH", "An error occurred during login")
			return
		}

		if !auth.CheckPassword(req.Password, user.Password) {
			log.Println("[AUTH] [ERROR] login invalid password for:", email)
			respondWithError(c, http.StatusBadRequest, "AUTH", "Invalid password")
			return
		}

		token, err := auth.IssueToken(user.ID, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, "AUTH", "An error occurred during login")
			return
		}

		log.Println("[AUTH] [INFO] user login succeeded:", email)
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
