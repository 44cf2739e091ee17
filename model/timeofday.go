package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time in whole seconds since midnight.
type TimeOfDay int

// ErrInvalidTime is returned when a clock value is out of range or malformed.
var ErrInvalidTime = errors.New("invalid time of day")

// NewTimeOfDay builds a TimeOfDay from its components.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("%w: %d:%d:%d", ErrInvalidTime, hour, minute, second)
	}
	return TimeOfDay(hour*3600 + minute*60 + second), nil
}

// ParseClock parses H:MM:SS. Each component must be numeric and in range.
func ParseClock(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || p == "" || p[0] == '+' || p[0] == '-' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
		n[i] = v
	}
	return NewTimeOfDay(n[0], n[1], n[2])
}

// Hour returns the hour component (0-23).
func (t TimeOfDay) Hour() int { return int(t) / 3600 }

// Minute returns the minute component (0-59).
func (t TimeOfDay) Minute() int { return int(t) / 60 % 60 }

// Second returns the second component (0-59).
func (t TimeOfDay) Second() int { return int(t) % 60 }

// String formats the time as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
