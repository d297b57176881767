package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a postal address owned by exactly one user. The owner is a
// weak reference: deleting a user does not cascade here.
type Address struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Street     string             `bson:"street" json:"street"`
	City       string             `bson:"city" json:"city"`
	State      string             `bson:"state" json:"state"`
	Country    string             `bson:"country" json:"country"`
	PostalCode string             `bson:"postalCode" json:"postalCode"`
	UserID     primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
