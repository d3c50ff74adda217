package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// scanTimeFields are checked in order when looking for a record's scan time.
var scanTimeFields = []string{"scannedAt", "addedAt", "createdAt", "timestamp"}

// ParseScanTime normalizes the timestamp shapes the mobile client has written
// over time: a native datetime, an ISO-8601 string, a {seconds: n} epoch
// wrapper, or a raw epoch number. ok is false when the value is absent or not
// parseable in any of those shapes.
func ParseScanTime(v interface{}) (t time.Time, ok bool) {
	switch value := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return value, true
	case primitive.DateTime:
		return value.Time(), true
	case primitive.Timestamp:
		return time.Unix(int64(value.T), 0), true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, value); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case bson.M:
		return secondsWrapper(map[string]interface{}(value))
	case map[string]interface{}:
		return secondsWrapper(value)
	case float64:
		return time.Unix(int64(value), 0), true
	case int64:
		return time.Unix(value, 0), true
	case int32:
		return time.Unix(int64(value), 0), true
	case int:
		return time.Unix(int64(value), 0), true
	default:
		return time.Time{}, false
	}
}

func secondsWrapper(m map[string]interface{}) (time.Time, bool) {
	secs, present := m["seconds"]
	if !present {
		return time.Time{}, false
	}
	switch s := secs.(type) {
	case float64:
		return time.Unix(int64(s), 0), true
	case int64:
		return time.Unix(s, 0), true
	case int32:
		return time.Unix(int64(s), 0), true
	case int:
		return time.Unix(int64(s), 0), true
	default:
		return time.Time{}, false
	}
}

// RecordScanTime finds the first usable timestamp field on a scan record.
func RecordScanTime(rec bson.M) (time.Time, bool) {
	for _, field := range scanTimeFields {
		if v, present := rec[field]; present {
			if t, ok := ParseScanTime(v); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
