package models

import "time"

// RipenessDistribution is the three-bucket breakdown shown on the dashboard
// pie chart.
type RipenessDistribution struct {
	Unripe   int `json:"unripe"`
	Ripe     int `json:"ripe"`
	Overripe int `json:"overripe"`
}

// ActivityEntry is one row of the recent-activity feed.
type ActivityEntry struct {
	User   string `json:"user"`
	Action string `json:"action"`
	Time   string `json:"time"`

	// SortTime orders the feed newest-first. Not part of the response body.
	SortTime time.Time `json:"-"`
}

// DashboardSummary is recomputed from scratch on every stats request; nothing
// here is persisted.
type DashboardSummary struct {
	TotalUsers           int                  `json:"totalUsers"`
	TotalScans           int                  `json:"totalScans"`
	TotalShelfItems      int                  `json:"totalShelfItems"`
	TotalHistoryItems    int                  `json:"totalHistoryItems"`
	AverageScansPerUser  float64              `json:"averageScansPerUser"`
	RipenessDistribution RipenessDistribution `json:"ripenessDistribution"`
	WeeklyTrend          []int                `json:"weeklyTrend"`
	RecentActivity       []ActivityEntry      `json:"recentActivity"`
}
