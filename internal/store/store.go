package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/papayafresh/papaya-backend/internal/models"
)

// ErrUserNotFound is returned when a user identifier does not resolve to a
// root user record.
var ErrUserNotFound = errors.New("user not found")

// Store is the document-store contract the services are written against.
// Shelf and history are per-user partitions: every record in them belongs to
// exactly one user, and record identifiers are only meaningful together with
// the owning user's identifier.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	DeleteUser(ctx context.Context, userID string) error

	CountShelf(ctx context.Context, userID string) (int64, error)
	CountHistory(ctx context.Context, userID string) (int64, error)

	ListShelf(ctx context.Context, userID string) ([]bson.M, error)
	ListHistory(ctx context.Context, userID string) ([]bson.M, error)

	DeleteShelfRecord(ctx context.Context, userID, recordID string) error
	DeleteHistoryRecord(ctx context.Context, userID, recordID string) error

	InsertShelfRecord(ctx context.Context, userID string, rec bson.M) (string, error)
	InsertHistoryRecord(ctx context.Context, userID string, rec bson.M) (string, error)
	InsertGlobalScan(ctx context.Context, rec bson.M) (string, error)
}
