package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection("users")}
}

func (s *MongoUserStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}}
	return s.findOne(ctx, filter)
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.col.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (s *MongoUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) (*models.User, error) {
	set := bson.M{
		"firstname": update.FirstName,
		"lastname":  update.LastName,
		"email":     update.Email,
		"phone":     update.Phone,
		"updatedAt": time.Now(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	res, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password":  passwordHash,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MongoAddressStore struct {
	col *mongo.Collection
}

func NewMongoAddressStore(db *mongo.Database) *MongoAddressStore {
	return &MongoAddressStore{col: db.Collection("addresses")}
}

func (s *MongoAddressStore) Insert(ctx context.Context, address *models.Address) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, address)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (s *MongoAddressStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	cursor, err := s.col.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	addresses := make([]models.Address, 0)
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

type MongoContactStore struct {
	col *mongo.Collection
}

func NewMongoContactStore(db *mongo.Database) *MongoContactStore {
	return &MongoContactStore{col: db.Collection("contacts")}
}

func (s *MongoContactStore) Insert(ctx context.Context, contact *models.Contact) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, contact)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}
