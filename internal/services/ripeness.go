package services

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/papayafresh/papaya-backend/internal/models"
)

// RipenessBucket is one of the three fixed dashboard buckets.
type RipenessBucket string

const (
	BucketUnripe   RipenessBucket = "unripe"
	BucketRipe     RipenessBucket = "ripe"
	BucketOverripe RipenessBucket = "overripe"
)

// ClassifyRipeness maps a free-text ripeness/variety label to a bucket.
// "unripe" must be checked before "overripe" would ever match, and any
// unrecognized or empty label counts as ripe.
func ClassifyRipeness(label string) RipenessBucket {
	normalized := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.Contains(normalized, "unripe") || normalized == "green":
		return BucketUnripe
	case strings.Contains(normalized, "overripe") || normalized == "rotten":
		return BucketOverripe
	default:
		return BucketRipe
	}
}

// ScanLabel extracts the ripeness label from a scan record, falling back to
// the variety field. Missing fields yield "".
func ScanLabel(rec bson.M) string {
	if s, ok := rec["ripeness"].(string); ok && s != "" {
		return s
	}
	if s, ok := rec["variety"].(string); ok {
		return s
	}
	return ""
}

// RipenessDistribution buckets every label and returns the three counts.
// When all three counts are zero (no scans) it substitutes {1,1,1} so the
// dashboard pie chart never renders all-zero data. That substitution is a
// presentation policy, not a classification rule.
func RipenessDistribution(labels []string) models.RipenessDistribution {
	var dist models.RipenessDistribution
	for _, label := range labels {
		switch ClassifyRipeness(label) {
		case BucketUnripe:
			dist.Unripe++
		case BucketOverripe:
			dist.Overripe++
		default:
			dist.Ripe++
		}
	}

	if dist.Unripe == 0 && dist.Ripe == 0 && dist.Overripe == 0 {
		return models.RipenessDistribution{Unripe: 1, Ripe: 1, Overripe: 1}
	}
	return dist
}
