package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/papayafresh/papaya-backend/internal/identity"
	"github.com/papayafresh/papaya-backend/internal/models"
)

// EraserStore is the slice of the document store the eraser mutates.
type EraserStore interface {
	GetUser(ctx context.Context, userID string) (models.User, error)
	ListShelf(ctx context.Context, userID string) ([]bson.M, error)
	ListHistory(ctx context.Context, userID string) ([]bson.M, error)
	DeleteShelfRecord(ctx context.Context, userID, recordID string) error
	DeleteHistoryRecord(ctx context.Context, userID, recordID string) error
	DeleteUser(ctx context.Context, userID string) error
}

// EraseResult reports what a completed erase removed.
type EraseResult struct {
	User           models.User
	ShelfDeleted   int
	HistoryDeleted int
}

// EraserService removes a user and everything the backend holds for them:
// shelf partition, history partition, root user record, and the account
// provider's record.
type EraserService struct {
	store    EraserStore
	accounts identity.Provider
}

func NewEraserService(store EraserStore, accounts identity.Provider) *EraserService {
	return &EraserService{store: store, accounts: accounts}
}

// Erase deletes all data owned by userID. The user must exist; absence
// surfaces as the store's not-found error before any delete is issued.
//
// Known non-atomicity, preserved from the original behavior: there is no
// rollback. A failure partway through leaves already-deleted records gone and
// reports the one error.
func (s *EraserService) Erase(ctx context.Context, userID string) (*EraseResult, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Shelf and history purges are independent of each other and run
	// concurrently; individual record deletes within a partition are each
	// awaited before the partition counts as deleted.
	var (
		wg                        sync.WaitGroup
		shelfDeleted, histDeleted int
		shelfErr, histErr         error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		shelfDeleted, shelfErr = s.purgePartition(ctx, userID, s.store.ListShelf, s.store.DeleteShelfRecord)
	}()
	go func() {
		defer wg.Done()
		histDeleted, histErr = s.purgePartition(ctx, userID, s.store.ListHistory, s.store.DeleteHistoryRecord)
	}()
	wg.Wait()

	if shelfErr != nil {
		return nil, shelfErr
	}
	if histErr != nil {
		return nil, histErr
	}

	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return nil, err
	}

	// Account deletion is best-effort: the document store and the account
	// store can be out of sync, so a missing account is success, not failure.
	if uid := user.AuthUID; uid != "" {
		if err := s.accounts.DeleteAccount(ctx, uid); err != nil {
			if !errors.Is(err, identity.ErrAccountNotFound) {
				return nil, err
			}
			log.Printf("account %s already absent from provider, continuing", uid)
		}
	}

	return &EraseResult{User: user, ShelfDeleted: shelfDeleted, HistoryDeleted: histDeleted}, nil
}

type listFunc func(ctx context.Context, userID string) ([]bson.M, error)
type deleteFunc func(ctx context.Context, userID, recordID string) error

// purgePartition is fetch-then-delete-all: list the partition, then delete
// each record, stopping at the first failure.
func (s *EraserService) purgePartition(ctx context.Context, userID string, list listFunc, remove deleteFunc) (int, error) {
	records, err := list(ctx, userID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, rec := range records {
		id, ok := recordID(rec)
		if !ok {
			return deleted, fmt.Errorf("record without _id in partition for user %s", userID)
		}
		if err := remove(ctx, userID, id); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func recordID(rec bson.M) (string, bool) {
	switch id := rec["_id"].(type) {
	case primitive.ObjectID:
		return id.Hex(), true
	case string:
		return id, true
	default:
		return "", false
	}
}
