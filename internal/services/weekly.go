package services

import "time"

const weeklyBuckets = 4

// weeklyPlaceholder is returned for an empty scan set. It is documented
// stand-in chart data the mobile dashboard has always rendered, kept for
// output compatibility even though real zeros would be more honest.
var weeklyPlaceholder = []int{2, 5, 8, 12}

// WeeklyTrend buckets scan times into the last four calendar weeks, ordered
// oldest first: [week-3-ago, week-2-ago, week-1-ago, this-week]. Scans older
// than three whole weeks and scans without a usable time (zero value) are
// dropped silently. In the non-empty path every bucket is floored at 1, so
// the output is deliberately not a faithful histogram when a true count is
// zero; the chart renderer depends on that distortion.
func WeeklyTrend(times []time.Time, now time.Time) []int {
	if len(times) == 0 {
		out := make([]int, weeklyBuckets)
		copy(out, weeklyPlaceholder)
		return out
	}

	counts := make([]int, weeklyBuckets)
	for _, t := range times {
		if t.IsZero() {
			continue
		}
		days := int(now.Sub(t).Hours() / 24)
		if days < 0 {
			days = 0
		}
		weeks := days / 7
		if weeks >= weeklyBuckets {
			continue
		}
		counts[weeklyBuckets-1-weeks]++
	}

	for i := range counts {
		if counts[i] < 1 {
			counts[i] = 1
		}
	}
	return counts
}
