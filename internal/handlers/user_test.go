package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/auth"
	"backend/internal/models"
)

func newUserRouter(users *fakeUserStore, userID primitive.ObjectID) *gin.Engine {
	r := gin.New()
	r.GET("/api/users/me", asUser(userID), GetMe(users))
	r.PUT("/api/update", asUser(userID), UpdateMe(users))
	r.PUT("/api/change-password", asUser(userID), ChangePassword(users))
	return r
}

func TestGetMeNeverReturnsPassword(t *testing.T) {
	users := newFakeUserStore()
	userID := users.add(models.User{
		Username:  "erin",
		Email:     "erin@example.com",
		Password:  "$2a$10$abcdefghijklmnopqrstuv",
		FirstName: "Erin",
	})

	w := doRequest(newUserRouter(users, userID), http.MethodGet, "/api/users/me", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if strings.Contains(body, "password") || strings.Contains(body, "$2a$") {
		t.Fatalf("response leaked the password field: %s", body)
	}
	if !strings.Contains(body, "erin@example.com") {
		t.Fatalf("expected account fields in response, got %s", body)
	}
}

func TestGetMeMissingAccount(t *testing.T) {
	users := newFakeUserStore()
	w := doRequest(newUserRouter(users, primitive.NewObjectID()), http.MethodGet, "/api/users/me", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUpdateMe(t *testing.T) {
	users := newFakeUserStore()
	userID := users.add(models.User{
		Username:  "frank",
		Email:     "frank@example.com",
		FirstName: "Old",
		Phone:     "555-0000",
	})

	w := doRequest(newUserRouter(users, userID), http.MethodPut, "/api/update", map[string]string{
		"first_name": "New",
		"last_name":  "Name",
		"email":      "frank@example.com",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	updated := users.users[userID]
	if updated.FirstName != "New" || updated.LastName != "Name" {
		t.Fatalf("profile not updated: %+v", updated)
	}
	// phone was absent from the body, so it is cleared
	if updated.Phone != "" {
		t.Fatalf("expected omitted phone to clear, got %q", updated.Phone)
	}

	body := decodeBody(w)
	if body["firstname"] != "New" {
		t.Fatalf("expected updated document in response, got %v", body)
	}
}

func TestUpdateMeMissingAccount(t *testing.T) {
	users := newFakeUserStore()
	w := doRequest(newUserRouter(users, primitive.NewObjectID()), http.MethodPut, "/api/update",
		map[string]string{"first_name": "Ghost"})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a vanished account, got %d", w.Code)
	}
}

func TestChangePassword(t *testing.T) {
	digest, err := auth.HashPassword("old-pw")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectChanged  bool
	}{
		{
			name:           "success",
			body:           map[string]string{"currentPassword": "old-pw", "newPassword": "new-pw"},
			expectedStatus: http.StatusOK,
			expectChanged:  true,
		},
		{
			name:           "wrong current password",
			body:           map[string]string{"currentPassword": "not-old-pw", "newPassword": "new-pw"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing new password",
			body:           map[string]string{"currentPassword": "old-pw"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserStore()
			userID := users.add(models.User{Username: "gina", Email: "gina@example.com", Password: digest})

			w := doRequest(newUserRouter(users, userID), http.MethodPut, "/api/change-password", tt.body)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}

			stored := users.users[userID].Password
			if tt.expectChanged {
				if stored == "new-pw" {
					t.Fatal("new password stored in plaintext")
				}
				if !auth.CheckPassword("new-pw", stored) {
					t.Fatal("stored digest does not verify the new password")
				}
			} else if stored != digest {
				t.Fatal("password must not change on failure")
			}
		})
	}
}

func TestChangePasswordMissingAccount(t *testing.T) {
	users := newFakeUserStore()
	w := doRequest(newUserRouter(users, primitive.NewObjectID()), http.MethodPut, "/api/change-password",
		map[string]string{"currentPassword": "a", "newPassword": "b"})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
