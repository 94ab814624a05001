// Package stats computes aggregate values over a reading series.
//
// All functions are total: an empty series yields zero values.
package stats

import (
	"math"

	"healthdash/internal/model"
)

// Stats aggregates one metric over a series.
type Stats struct {
	Metric  model.Metric `json:"metric"`
	Unit    string       `json:"unit"`
	Count   int          `json:"count"`
	Current float64      `json:"current"`
	Min     float64      `json:"min"`
	Max     float64      `json:"max"`
	Avg     float64      `json:"avg"`

	// Only set for metrics measured against a single target.
	Goal          *float64 `json:"goal,omitempty"`
	PercentOfGoal *int     `json:"percent_of_goal,omitempty"`
}

// Compute aggregates m over readings, which are ordered most recent first.
func Compute(m model.Metric, readings []model.Reading, goals model.Goals) Stats {
	s := Stats{
		Metric: m,
		Unit:   m.Unit(),
		Count:  len(readings),
	}

	if target, ok := goals.Target(m); ok {
		s.Goal = &target
	}

	if len(readings) == 0 {
		if s.Goal != nil {
			zero := 0
			s.PercentOfGoal = &zero
		}
		return s
	}

	var sum float64
	s.Current = m.Value(readings[0])
	s.Min = s.Current
	s.Max = s.Current

	for _, r := range readings {
		v := m.Value(r)
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}

	s.Avg = RoundAverage(m, sum/float64(len(readings)))

	if s.Goal != nil {
		pct := PercentOfGoal(s.Current, *s.Goal)
		s.PercentOfGoal = &pct
	}
	return s
}

// RoundAverage rounds to a whole number, or to one decimal place for
// fractional metrics.
func RoundAverage(m model.Metric, avg float64) float64 {
	if m.Fractional() {
		return math.Round(avg*10) / 10
	}
	return math.Round(avg)
}

// PercentOfGoal is round(value / goal * 100). It is not clamped, so
// exceeding a goal reports more than 100.
func PercentOfGoal(value, goal float64) int {
	if goal <= 0 {
		return 0
	}
	return int(math.Round(value / goal * 100))
}

// ProgressPercent is PercentOfGoal clamped to [0, 100] for progress bars.
func ProgressPercent(value, goal float64) int {
	pct := PercentOfGoal(value, goal)
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
