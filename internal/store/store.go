// Package store puts each collection behind a narrow repository
// interface so handlers depend on the contract, not the Mongo driver.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

var (
	// ErrNotFound is returned when no document matches the query.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when an insert or update violates a
	// unique index (username/email).
	ErrDuplicate = errors.New("duplicate key")
)

// ProfileUpdate carries the mutable profile fields of a user. Every
// field is written on update; an empty value clears the stored one.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type UserStore interface {
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	// UpdateProfile applies the update and returns the post-update document.
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

type AddressStore interface {
	Insert(ctx context.Context, address *models.Address) (primitive.ObjectID, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error)
}

type ContactStore interface {
	Insert(ctx context.Context, contact *models.Contact) (primitive.ObjectID, error)
}
