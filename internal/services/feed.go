package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/papayafresh/papaya-backend/internal/database"
)

const feedChannel = "scans:feed"

// ScanEvent is the payload broadcast over Redis and WebSocket whenever a new
// scan is recorded.
type ScanEvent struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id,omitempty"`
	ScanID    string    `json:"scan_id,omitempty"`
	Ripeness  string    `json:"ripeness,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// FeedConn is the minimal interface our WebSocket implementation must satisfy.
type FeedConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// feedHub is a registry of dashboard WebSocket connections. The feed is
// global: every connection receives every event.
type feedHub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]FeedConn
}

var (
	hub          = &feedHub{connections: make(map[uuid.UUID]FeedConn)}
	redisStarted sync.Once
)

// RegisterFeedConnection adds a connection and returns its handle for
// unregistering.
func RegisterFeedConnection(conn FeedConn) uuid.UUID {
	id := uuid.New()
	hub.mu.Lock()
	hub.connections[id] = conn
	hub.mu.Unlock()
	return id
}

// UnregisterFeedConnection removes a connection.
func UnregisterFeedConnection(id uuid.UUID) {
	hub.mu.Lock()
	delete(hub.connections, id)
	hub.mu.Unlock()
}

// FanOutScanEvent sends an event to all local connections.
func FanOutScanEvent(event ScanEvent) {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	for _, conn := range hub.connections {
		// Non-blocking best-effort send.
		go func(c FeedConn) {
			if err := c.WriteJSON(event); err != nil {
				log.Printf("error writing scan event to websocket: %v", err)
			}
		}(conn)
	}
}

// StartFeedSubscriber ensures a single shared Redis listener per instance.
// Events published by any instance fan out to the local connections.
func StartFeedSubscriber(ctx context.Context) {
	redisStarted.Do(func() {
		go runFeedSubscriber(ctx)
	})
}

func runFeedSubscriber(ctx context.Context) {
	client := database.RedisClient
	if client == nil {
		log.Println("Redis client not initialized; scan feed subscriber not started")
		return
	}

	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := client.Subscribe(ctx, feedChannel)
			defer pubsub.Close()

			log.Printf("✅ Scan feed Redis subscriber started (channel: %s)", feedChannel)

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					log.Printf("Redis subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event ScanEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal scan event: %v", err)
					continue
				}

				FanOutScanEvent(event)
			}
		}()
	}
}

// PublishScanEvent publishes an event to Redis; called after a scan is
// durably written.
func PublishScanEvent(ctx context.Context, event ScanEvent) error {
	if database.RedisClient == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return database.RedisClient.Publish(ctx, feedChannel, data).Err()
}
