package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
	"backend/internal/store"
)

// ---- fake stores ----

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
	calls int
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) add(user models.User) primitive.ObjectID {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = &user
	return user.ID
}

func (f *fakeUserStore) FindByUsernameOrEmail(_ context.Context, username, email string) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, user := range f.users {
		if user.Username == username || user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	f.calls++
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return primitive.NilObjectID, store.ErrDuplicate
		}
	}
	return f.add(*user), nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, update store.ProfileUpdate) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	user.FirstName = update.FirstName
	user.LastName = update.LastName
	user.Email = update.Email
	user.Phone = update.Phone
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	user, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.Password = passwordHash
	return nil
}

type fakeAddressStore struct {
	addresses []models.Address
	calls     int
	err       error
}

func (f *fakeAddressStore) Insert(_ context.Context, address *models.Address) (primitive.ObjectID, error) {
	f.calls++
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	address.ID = primitive.NewObjectID()
	f.addresses = append(f.addresses, *address)
	return address.ID, nil
}

func (f *fakeAddressStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	owned := make([]models.Address, 0)
	for _, address := range f.addresses {
		if address.UserID == userID {
			owned = append(owned, address)
		}
	}
	return owned, nil
}

type fakeContactStore struct {
	contacts []models.Contact
	calls    int
	err      error
}

func (f *fakeContactStore) Insert(_ context.Context, contact *models.Contact) (primitive.ObjectID, error) {
	f.calls++
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	contact.ID = primitive.NewObjectID()
	f.contacts = append(f.contacts, *contact)
	return contact.ID, nil
}

// ---- helpers ----

// asUser stands in for the auth middleware and injects the userId the
// way RequireUser does.
func asUser(userID primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = strings.NewReader(string(b))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(w *httptest.ResponseRecorder) map[string]interface{} {
	out := make(map[string]interface{})
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

func init() {
	gin.SetMode(gin.TestMode)
}
