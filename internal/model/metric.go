package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMetric is returned when a metric name is not recognised.
var ErrUnknownMetric = errors.New("unknown metric")

// Metric identifies one numeric field of a Reading.
type Metric string

const (
	Steps       Metric = "steps"
	HeartRate   Metric = "heart_rate"
	OxygenLevel Metric = "oxygen_level"
	Hydration   Metric = "hydration"
	SleepHours  Metric = "sleep_hours"
)

// Metrics lists every metric in display order.
var Metrics = []Metric{Steps, HeartRate, OxygenLevel, Hydration, SleepHours}

// ParseMetric accepts the JSON field name, case-insensitively.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Metrics {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// Value returns the metric's value in r.
func (m Metric) Value(r Reading) float64 {
	switch m {
	case Steps:
		return float64(r.Steps)
	case HeartRate:
		return float64(r.HeartRate)
	case OxygenLevel:
		return float64(r.OxygenLevel)
	case Hydration:
		return float64(r.Hydration)
	case SleepHours:
		return r.SleepHours
	}
	return 0
}

// Unit is the display unit.
func (m Metric) Unit() string {
	switch m {
	case Steps:
		return "steps"
	case HeartRate:
		return "BPM"
	case OxygenLevel:
		return "%"
	case Hydration:
		return "ml"
	case SleepHours:
		return "hours"
	}
	return ""
}

// Label is the human readable name, e.g. "heart rate".
func (m Metric) Label() string {
	return strings.ReplaceAll(string(m), "_", " ")
}

// Fractional reports whether the metric carries fractional values.
// Averages of fractional metrics keep one decimal place.
func (m Metric) Fractional() bool {
	return m == SleepHours
}
