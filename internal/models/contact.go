package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a contact-form submission. Write-only: nothing in the API
// reads these back.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
