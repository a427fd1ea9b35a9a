package dataobject

import (
	"math"
	"time"

	"github.com/spf13/cast"
)

// toDateTime converts v, stored under key, to a time.Time:
//   - time.Time values are returned unchanged
//   - integers are Unix seconds, UTC
//   - floats are Unix seconds with the fraction rounded to microseconds, UTC
//   - strings are parsed with a flexible layout list, UTC unless zoned
func toDateTime(key string, v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case *time.Time:
		if x != nil {
			return *x, nil
		}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return time.Unix(cast.ToInt64(x), 0).UTC(), nil
	case float32:
		return fromUnixFloat(float64(x)), nil
	case float64:
		return fromUnixFloat(x), nil
	case string:
		t, err := cast.ToTimeInDefaultLocationE(x, time.UTC)
		if err != nil {
			return time.Time{}, &DateTimeParseError{Key: key, Value: x, Err: err}
		}
		return t, nil
	}
	return time.Time{}, &UnsupportedTemporalSourceError{Key: key, Value: v}
}

// fromUnixFloat keeps the time of day of the whole-second timestamp and
// refines it with the fraction as microseconds.
func fromUnixFloat(f float64) time.Time {
	sec := math.Floor(f)
	micro := math.Round((f - sec) * 1e6)
	return time.Unix(int64(sec), int64(micro)*int64(time.Microsecond)).UTC()
}
