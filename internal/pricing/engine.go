package pricing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// MaxRentalDays caps a rental window at 14 inclusive days.
const MaxRentalDays = 14

// Overrides maps a day count ("1".."14") to the absolute price for renting
// one unit for exactly that many days.
type Overrides map[string]float64

// Truncate drops the time component so duration math works on calendar days.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Days returns the inclusive day count between two calendar dates. A
// single-day rental (start == end) yields 1. Callers must guarantee
// end >= start; ordering is not validated here.
func Days(start, end time.Time) int {
	s := Truncate(start)
	e := Truncate(end)
	diff := e.Sub(s).Hours() / 24
	return int(math.Ceil(diff)) + 1
}

// ClampWindow normalizes a proposed rental window. An end before start is
// pulled up to start, and a span longer than MaxRentalDays is silently
// shortened so the window covers exactly MaxRentalDays inclusive days.
func ClampWindow(start, end time.Time) (time.Time, time.Time) {
	s := Truncate(start)
	e := Truncate(end)
	if e.Before(s) {
		e = s
	}
	if Days(s, e) > MaxRentalDays {
		e = s.AddDate(0, 0, MaxRentalDays-1)
	}
	return s, e
}

// Resolve computes the price for one unit rented for the given day count.
// Missing or unparseable override data falls back to linear pricing
// (base * days); the parse error is never surfaced because a broken
// override table must not break customer-facing pricing. The returned
// bool reports whether malformed data forced the fallback.
func Resolve(base float64, days int, overridesRaw string) (float64, bool) {
	if days < 1 {
		return 0, false
	}
	raw := strings.TrimSpace(overridesRaw)
	if raw == "" {
		return base * float64(days), false
	}
	overrides, err := ParseOverrides(raw)
	if err != nil {
		return base * float64(days), true
	}
	if price, ok := overrides[strconv.Itoa(days)]; ok {
		return price, false
	}
	return base * float64(days), false
}

// ParseOverrides decodes a serialized override table.
func ParseOverrides(raw string) (Overrides, error) {
	var overrides Overrides
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

// IsValidOverrides strictly validates a serialized override table for admin
// writes: a JSON object whose keys are integer strings in [1, MaxRentalDays]
// and whose values are finite non-negative numbers. Read-time resolution
// stays lenient; this guards the write path only.
func IsValidOverrides(raw string) bool {
	overrides, err := ParseOverrides(raw)
	if err != nil || overrides == nil {
		return false
	}
	for key, value := range overrides {
		day, err := strconv.Atoi(key)
		if err != nil || day < 1 || day > MaxRentalDays {
			return false
		}
		if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
			return false
		}
	}
	return true
}

// GenerateDefaultOverrides pre-seeds a linear override table
// {1: base, 2: base*2, ...} up to maxDays for a manager to edit.
func GenerateDefaultOverrides(base float64, maxDays int) Overrides {
	overrides := make(Overrides, maxDays)
	for day := 1; day <= maxDays; day++ {
		overrides[strconv.Itoa(day)] = base * float64(day)
	}
	return overrides
}
