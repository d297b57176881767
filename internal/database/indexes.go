package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureUserIndexes creates the unique indexes that back the account
// uniqueness invariant. Two concurrent signups can both pass the
// existence check; the index is what actually rejects the second insert.
func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	models := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName("username_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true),
		},
	}

	log.Println("EnsureUserIndexes: creating username_unique and email_unique indexes")
	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureUserIndexes: index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: user indexes created")
	return nil
}

func EnsureAddressIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("addresses").Indexes()

	userIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetName("user_index"),
	}

	log.Println("EnsureAddressIndexes: creating user_index index")
	_, err := indexes.CreateOne(ctx, userIndex)
	if err != nil {
		log.Println("EnsureAddressIndexes: user index error:", err)
		return err
	}
	log.Println("EnsureAddressIndexes: user_index index created")
	return nil
}
