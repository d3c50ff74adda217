package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/papayafresh/papaya-backend/internal/models"
)

const (
	usersCollection   = "users"
	shelfCollection   = "shelf"
	historyCollection = "history"
	scansCollection   = "scans"
)

// MongoStore implements Store on top of a MongoDB database. Shelf and history
// partitions are collections filtered by user_id.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	// Sort by _id so aggregation passes see users in a stable order.
	cursor, err := s.db.Collection(usersCollection).Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoStore) GetUser(ctx context.Context, userID string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}

	var user models.User
	err = s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *MongoStore) DeleteUser(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	result, err := s.db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *MongoStore) CountShelf(ctx context.Context, userID string) (int64, error) {
	return s.countPartition(ctx, shelfCollection, userID)
}

func (s *MongoStore) CountHistory(ctx context.Context, userID string) (int64, error) {
	return s.countPartition(ctx, historyCollection, userID)
}

func (s *MongoStore) countPartition(ctx context.Context, collection, userID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, ErrUserNotFound
	}
	return s.db.Collection(collection).CountDocuments(ctx, bson.M{"user_id": oid})
}

func (s *MongoStore) ListShelf(ctx context.Context, userID string) ([]bson.M, error) {
	return s.listPartition(ctx, shelfCollection, userID)
}

func (s *MongoStore) ListHistory(ctx context.Context, userID string) ([]bson.M, error) {
	return s.listPartition(ctx, historyCollection, userID)
}

func (s *MongoStore) listPartition(ctx context.Context, collection, userID string) ([]bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{"user_id": oid}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []bson.M
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *MongoStore) DeleteShelfRecord(ctx context.Context, userID, recordID string) error {
	return s.deletePartitionRecord(ctx, shelfCollection, userID, recordID)
}

func (s *MongoStore) DeleteHistoryRecord(ctx context.Context, userID, recordID string) error {
	return s.deletePartitionRecord(ctx, historyCollection, userID, recordID)
}

func (s *MongoStore) deletePartitionRecord(ctx context.Context, collection, userID, recordID string) error {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}
	recordOID, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return errors.New("invalid record id: " + recordID)
	}

	// Filter includes user_id so a record can never be deleted out of another
	// user's partition.
	_, err = s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": recordOID, "user_id": userOID})
	return err
}

func (s *MongoStore) InsertShelfRecord(ctx context.Context, userID string, rec bson.M) (string, error) {
	return s.insertPartitionRecord(ctx, shelfCollection, userID, rec)
}

func (s *MongoStore) InsertHistoryRecord(ctx context.Context, userID string, rec bson.M) (string, error) {
	return s.insertPartitionRecord(ctx, historyCollection, userID, rec)
}

func (s *MongoStore) insertPartitionRecord(ctx context.Context, collection, userID string, rec bson.M) (string, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", ErrUserNotFound
	}

	doc := bson.M{}
	for k, v := range rec {
		doc[k] = v
	}
	doc["user_id"] = oid

	result, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *MongoStore) InsertGlobalScan(ctx context.Context, rec bson.M) (string, error) {
	result, err := s.db.Collection(scansCollection).InsertOne(ctx, rec)
	if err != nil {
		return "", err
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}
