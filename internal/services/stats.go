package services

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/papayafresh/papaya-backend/internal/models"
)

const maxRecentActivities = 6

// StatsStore is the slice of the document store the aggregator reads.
type StatsStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListShelf(ctx context.Context, userID string) ([]bson.M, error)
	ListHistory(ctx context.Context, userID string) ([]bson.M, error)
}

// StatsService computes the dashboard summary. Read-only: it never mutates
// the store.
type StatsService struct {
	store StatsStore
	now   func() time.Time
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store, now: time.Now}
}

type userRecords struct {
	shelf   []bson.M
	history []bson.M
	err     error
}

// DashboardStats recomputes the full summary. Per-user shelf/history fetches
// fan out concurrently as a latency optimization; results are reassembled by
// user index so totals and the activity feed never depend on arrival order.
// Any single read failure aborts the whole pass — no partial summary.
func (s *StatsService) DashboardStats(ctx context.Context) (*models.DashboardSummary, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	results := make([]userRecords, len(users))
	var wg sync.WaitGroup
	for i, user := range users {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			shelf, err := s.store.ListShelf(ctx, userID)
			if err != nil {
				results[i].err = err
				return
			}
			history, err := s.store.ListHistory(ctx, userID)
			if err != nil {
				results[i].err = err
				return
			}
			results[i].shelf = shelf
			results[i].history = history
		}(i, user.ID.Hex())
	}
	wg.Wait()

	summary := &models.DashboardSummary{TotalUsers: len(users)}

	var labels []string
	var scanTimes []time.Time
	var activities []models.ActivityEntry

	for i, user := range users {
		if results[i].err != nil {
			return nil, results[i].err
		}
		shelf, history := results[i].shelf, results[i].history

		summary.TotalShelfItems += len(shelf)
		summary.TotalHistoryItems += len(history)
		summary.TotalScans += len(shelf) + len(history)

		// Only shelf records feed classification, the weekly trend and the
		// activity feed; history records contribute to totals alone.
		for _, rec := range shelf {
			scanTime, ok := RecordScanTime(rec)
			if !ok {
				scanTime = now
			}

			label := ScanLabel(rec)
			labels = append(labels, label)
			scanTimes = append(scanTimes, scanTime)

			if label == "" {
				label = "Unknown"
			}
			activities = append(activities, models.ActivityEntry{
				User:     user.DisplayName(),
				Action:   "Scanned Papaya - " + label,
				Time:     TimeAgo(scanTime, now),
				SortTime: scanTime,
			})
		}
	}

	summary.RipenessDistribution = RipenessDistribution(labels)
	summary.WeeklyTrend = WeeklyTrend(scanTimes, now)

	// Best-effort recency ordering: SortTime is the record's scan time, or
	// the now-fallback when the record carried none.
	sort.SliceStable(activities, func(a, b int) bool {
		return activities[a].SortTime.After(activities[b].SortTime)
	})
	if len(activities) > maxRecentActivities {
		activities = activities[:maxRecentActivities]
	}
	if len(activities) == 0 {
		activities = []models.ActivityEntry{{User: "System", Action: "No scans yet", Time: "Recent"}}
	}
	summary.RecentActivity = activities

	if summary.TotalUsers > 0 {
		avg := float64(summary.TotalScans) / float64(summary.TotalUsers)
		summary.AverageScansPerUser = math.Round(avg*10) / 10
	}

	return summary, nil
}
