package insight

import (
	"fmt"
	"math"

	"healthdash/internal/model"
)

const noMetricData = "No data available"

// MetricInsight describes the latest value of m against its goal or
// normal range.
func MetricInsight(m model.Metric, readings []model.Reading, goals model.Goals) string {
	if len(readings) == 0 {
		return noMetricData
	}

	value := m.Value(readings[0])
	unit := m.Unit()

	if goal, ok := goals.Target(m); ok {
		pct := value / goal * 100
		g := formatNumber(goal)
		switch {
		case pct >= 100:
			return fmt.Sprintf("Excellent! You've exceeded your %s %s goal. Keep up the great work!", g, unit)
		case pct >= 80:
			return fmt.Sprintf("Good progress! You're at %.0f%% of your %s %s goal.", math.Round(pct), g, unit)
		case pct >= 50:
			return fmt.Sprintf("You're halfway there! Currently at %.0f%% of your %s %s goal.", math.Round(pct), g, unit)
		default:
			return fmt.Sprintf("Keep working on it! You're at %.0f%% of your %s %s goal.", math.Round(pct), g, unit)
		}
	}

	if lo, hi, ok := goals.Range(m); ok {
		bounds := fmt.Sprintf("(%s-%s %s)", formatNumber(lo), formatNumber(hi), unit)
		switch {
		case value < lo:
			return fmt.Sprintf("Your %s is below the normal range %s. Consider consulting a healthcare provider.", m.Label(), bounds)
		case value > hi:
			return fmt.Sprintf("Your %s is above the normal range %s. Consider consulting a healthcare provider.", m.Label(), bounds)
		default:
			return fmt.Sprintf("Your %s is within the normal range %s.", m.Label(), bounds)
		}
	}

	var sum float64
	for _, r := range readings {
		sum += m.Value(r)
	}
	return fmt.Sprintf("Your average %s is %.0f %s.", m.Label(), math.Round(sum/float64(len(readings))), unit)
}

// MetricInsights returns MetricInsight for every metric.
func MetricInsights(readings []model.Reading, goals model.Goals) map[model.Metric]string {
	out := make(map[model.Metric]string, len(model.Metrics))
	for _, m := range model.Metrics {
		out[m] = MetricInsight(m, readings, goals)
	}
	return out
}

// Status labels shown next to a metric's current value.
const (
	StatusLow          = "Low"
	StatusModerate     = "Moderate"
	StatusActive       = "Active"
	StatusBelowNormal  = "Below normal"
	StatusNormal       = "Normal"
	StatusAboveNormal  = "Above normal"
	StatusInsufficient = "Insufficient"
	StatusBelowGoal    = "Below goal"
	StatusAdequate     = "Adequate"
)

// Status classifies value for m. Metrics without a status (hydration)
// return "".
func Status(m model.Metric, value float64, goals model.Goals) string {
	switch m {
	case model.Steps:
		goal := float64(goals.StepsGoal)
		switch {
		case value < goal*0.5:
			return StatusLow
		case value < goal:
			return StatusModerate
		default:
			return StatusActive
		}
	case model.SleepHours:
		switch {
		case value < goals.SleepHoursGoal*0.7:
			return StatusInsufficient
		case value < goals.SleepHoursGoal:
			return StatusBelowGoal
		default:
			return StatusAdequate
		}
	case model.HeartRate, model.OxygenLevel:
		lo, hi, _ := goals.Range(m)
		switch {
		case value < lo:
			return StatusBelowNormal
		case value > hi:
			return StatusAboveNormal
		default:
			return StatusNormal
		}
	}
	return ""
}
