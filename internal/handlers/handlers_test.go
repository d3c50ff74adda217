package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/papayafresh/papaya-backend/internal/config"
	"github.com/papayafresh/papaya-backend/internal/handlers"
	"github.com/papayafresh/papaya-backend/internal/identity"
	"github.com/papayafresh/papaya-backend/internal/models"
	"github.com/papayafresh/papaya-backend/internal/routes"
	"github.com/papayafresh/papaya-backend/internal/services"
	"github.com/papayafresh/papaya-backend/internal/store"
	"github.com/papayafresh/papaya-backend/pkg/utils"
)

// fakeStore is an in-memory implementation of store.Store.
type fakeStore struct {
	users   []models.User
	shelf   map[string][]bson.M
	history map[string][]bson.M
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		shelf:   make(map[string][]bson.M),
		history: make(map[string][]bson.M),
	}
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeStore) GetUser(ctx context.Context, userID string) (models.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == userID {
			return u, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (f *fakeStore) DeleteUser(ctx context.Context, userID string) error {
	for i, u := range f.users {
		if u.ID.Hex() == userID {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return store.ErrUserNotFound
}

func (f *fakeStore) CountShelf(ctx context.Context, userID string) (int64, error) {
	return int64(len(f.shelf[userID])), nil
}

func (f *fakeStore) CountHistory(ctx context.Context, userID string) (int64, error) {
	return int64(len(f.history[userID])), nil
}

func (f *fakeStore) ListShelf(ctx context.Context, userID string) ([]bson.M, error) {
	return f.shelf[userID], nil
}

func (f *fakeStore) ListHistory(ctx context.Context, userID string) ([]bson.M, error) {
	return f.history[userID], nil
}

func (f *fakeStore) DeleteShelfRecord(ctx context.Context, userID, recordID string) error {
	f.shelf[userID] = deleteRecord(f.shelf[userID], recordID)
	return nil
}

func (f *fakeStore) DeleteHistoryRecord(ctx context.Context, userID, recordID string) error {
	f.history[userID] = deleteRecord(f.history[userID], recordID)
	return nil
}

func deleteRecord(recs []bson.M, recordID string) []bson.M {
	for i, rec := range recs {
		if oid, ok := rec["_id"].(primitive.ObjectID); ok && oid.Hex() == recordID {
			return append(recs[:i], recs[i+1:]...)
		}
	}
	return recs
}

func (f *fakeStore) InsertShelfRecord(ctx context.Context, userID string, rec bson.M) (string, error) {
	id := primitive.NewObjectID()
	rec["_id"] = id
	f.shelf[userID] = append(f.shelf[userID], rec)
	return id.Hex(), nil
}

func (f *fakeStore) InsertHistoryRecord(ctx context.Context, userID string, rec bson.M) (string, error) {
	id := primitive.NewObjectID()
	rec["_id"] = id
	f.history[userID] = append(f.history[userID], rec)
	return id.Hex(), nil
}

func (f *fakeStore) InsertGlobalScan(ctx context.Context, rec bson.M) (string, error) {
	return primitive.NewObjectID().Hex(), nil
}

type fakeProvider struct {
	err     error
	deleted []string
}

func (f *fakeProvider) DeleteAccount(ctx context.Context, uid string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, uid)
	return nil
}

func setupRouter(fs *fakeStore, provider identity.Provider, cfg *config.Config) *chi.Mux {
	handlers.Init(cfg, fs, services.NewStatsService(fs), services.NewEraserService(fs, provider))
	r := chi.NewRouter()
	routes.SetupRoutes(r, cfg)
	return r
}

func testConfig() *config.Config {
	return &config.Config{ServerName: "papaya-backend", Version: "test"}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestHealth(t *testing.T) {
	r := setupRouter(newFakeStore(), &fakeProvider{}, testConfig())

	rec, body := doJSON(t, r, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "papaya-backend", body["server"])
	assert.Equal(t, "test", body["version"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestGetAllUsers(t *testing.T) {
	fs := newFakeStore()
	alice := models.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
	fs.users = []models.User{alice}
	fs.shelf[alice.ID.Hex()] = []bson.M{{"_id": primitive.NewObjectID(), "ripeness": "ripe"}}
	fs.history[alice.ID.Hex()] = []bson.M{
		{"_id": primitive.NewObjectID()},
		{"_id": primitive.NewObjectID()},
	}
	r := setupRouter(fs, &fakeProvider{}, testConfig())

	rec, body := doJSON(t, r, http.MethodGet, "/api/users/all", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["totalUsers"])

	users := body["users"].([]interface{})
	user := users[0].(map[string]interface{})
	assert.Equal(t, alice.ID.Hex(), user["id"])
	assert.Equal(t, float64(1), user["shelfCount"])
	assert.Equal(t, float64(2), user["historyCount"])
	assert.Equal(t, float64(3), user["totalScans"])
}

func TestGetUserShelfNormalizesIDs(t *testing.T) {
	fs := newFakeStore()
	user := models.User{ID: primitive.NewObjectID()}
	fs.users = []models.User{user}
	recID := primitive.NewObjectID()
	fs.shelf[user.ID.Hex()] = []bson.M{{"_id": recID, "ripeness": "green", "user_id": user.ID}}
	r := setupRouter(fs, &fakeProvider{}, testConfig())

	rec, body := doJSON(t, r, http.MethodGet, "/api/users/"+user.ID.Hex()+"/shelf", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["shelfCount"])

	shelf := body["shelf"].([]interface{})
	first := shelf[0].(map[string]interface{})
	assert.Equal(t, recID.Hex(), first["id"])
	assert.Equal(t, user.ID.Hex(), first["userId"])
	assert.Equal(t, "green", first["ripeness"])
}

func TestDashboardStatsEndpointZeroUsers(t *testing.T) {
	r := setupRouter(newFakeStore(), &fakeProvider{}, testConfig())

	rec, body := doJSON(t, r, http.MethodGet, "/api/dashboard/stats", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["totalUsers"])
	assert.Equal(t, float64(0), body["averageScansPerUser"])

	activity := body["recentActivity"].([]interface{})
	require.Len(t, activity, 1)
	assert.Equal(t, "No scans yet", activity[0].(map[string]interface{})["action"])
}

func TestDeleteUserNotFound(t *testing.T) {
	r := setupRouter(newFakeStore(), &fakeProvider{}, testConfig())

	rec, body := doJSON(t, r, http.MethodDelete, "/api/users/delete/"+primitive.NewObjectID().Hex(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestDeleteUserWithMissingAccountSucceeds(t *testing.T) {
	fs := newFakeStore()
	user := models.User{ID: primitive.NewObjectID(), Email: "gone@example.com", AuthUID: "abc-123"}
	fs.users = []models.User{user}
	fs.shelf[user.ID.Hex()] = []bson.M{
		{"_id": primitive.NewObjectID()},
		{"_id": primitive.NewObjectID()},
		{"_id": primitive.NewObjectID()},
	}
	fs.history[user.ID.Hex()] = []bson.M{
		{"_id": primitive.NewObjectID()},
		{"_id": primitive.NewObjectID()},
	}
	r := setupRouter(fs, &fakeProvider{err: identity.ErrAccountNotFound}, testConfig())

	rec, body := doJSON(t, r, http.MethodDelete, "/api/users/delete/"+user.ID.Hex(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	deleted := body["deletedUser"].(map[string]interface{})
	assert.Equal(t, user.ID.Hex(), deleted["id"])
	assert.Equal(t, float64(3), deleted["shelfDeleted"])
	assert.Equal(t, float64(2), deleted["historyDeleted"])
	assert.Empty(t, fs.users)
}

func TestDeleteUserRequiresAdminKeyWhenConfigured(t *testing.T) {
	hash, err := utils.HashAPIKey("let-me-in")
	require.NoError(t, err)

	cfg := testConfig()
	cfg.AdminKeyHash = hash

	fs := newFakeStore()
	user := models.User{ID: primitive.NewObjectID()}
	fs.users = []models.User{user}
	r := setupRouter(fs, &fakeProvider{}, cfg)

	// Missing key
	rec, body := doJSON(t, r, http.MethodDelete, "/api/users/delete/"+user.ID.Hex(), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["success"])

	// Correct key
	req := httptest.NewRequest(http.MethodDelete, "/api/users/delete/"+user.ID.Hex(), nil)
	req.Header.Set("X-Admin-Key", "let-me-in")
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRecordScan(t *testing.T) {
	fs := newFakeStore()
	user := models.User{ID: primitive.NewObjectID()}
	fs.users = []models.User{user}
	r := setupRouter(fs, &fakeProvider{}, testConfig())

	payload, _ := json.Marshal(map[string]interface{}{
		"userId": user.ID.Hex(),
		"scan":   map[string]interface{}{"ripeness": "green", "variety": "Sunrise Solo"},
	})

	rec, body := doJSON(t, r, http.MethodPost, "/api/scan", payload)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["shelfId"])
	assert.NotEmpty(t, body["historyId"])
	assert.NotEmpty(t, body["globalScanId"])

	// One shelf record and one history record written, server stamped a time.
	require.Len(t, fs.shelf[user.ID.Hex()], 1)
	require.Len(t, fs.history[user.ID.Hex()], 1)
	assert.Contains(t, fs.shelf[user.ID.Hex()][0], "scannedAt")
	assert.Equal(t, "scan", fs.history[user.ID.Hex()][0]["action"])
}

func TestRecordScanValidation(t *testing.T) {
	r := setupRouter(newFakeStore(), &fakeProvider{}, testConfig())

	rec, body := doJSON(t, r, http.MethodPost, "/api/scan", []byte(`{"scan":{}}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])

	payload, _ := json.Marshal(map[string]interface{}{
		"userId": primitive.NewObjectID().Hex(),
		"scan":   map[string]interface{}{},
	})
	rec, body = doJSON(t, r, http.MethodPost, "/api/scan", payload)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}
