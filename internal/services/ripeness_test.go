package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/papayafresh/papaya-backend/internal/models"
)

func TestClassifyRipeness(t *testing.T) {
	tests := []struct {
		label string
		want  RipenessBucket
	}{
		{"Green", BucketUnripe},
		{"green", BucketUnripe},
		{"UNRIPE-ish", BucketUnripe},
		{"slightly unripe", BucketUnripe},
		{"rotten", BucketOverripe},
		{"Rotten", BucketOverripe},
		{"Overripe", BucketOverripe},
		{"very overripe", BucketOverripe},
		{"Ripe", BucketRipe},
		{"", BucketRipe},
		{"Sunrise Solo", BucketRipe},
		{"greenish", BucketRipe}, // only exact "green" means unripe
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRipeness(tt.label), "label %q", tt.label)
	}
}

func TestRipenessDistributionCountsSumToInputLength(t *testing.T) {
	labels := []string{"green", "Ripe", "rotten", "unripe papaya", "overripe", "", "weird"}

	dist := RipenessDistribution(labels)

	assert.Equal(t, len(labels), dist.Unripe+dist.Ripe+dist.Overripe)
	assert.Equal(t, 2, dist.Unripe)
	assert.Equal(t, 3, dist.Ripe)
	assert.Equal(t, 2, dist.Overripe)
}

func TestRipenessDistributionEmptyFallback(t *testing.T) {
	dist := RipenessDistribution(nil)

	assert.Equal(t, models.RipenessDistribution{Unripe: 1, Ripe: 1, Overripe: 1}, dist)
}
