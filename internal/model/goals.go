package model

// Goals holds the fixed targets and ranges used to classify readings.
type Goals struct {
	StepsGoal      int     `json:"steps_goal"`
	HeartRateMin   int     `json:"heart_rate_min"`
	HeartRateMax   int     `json:"heart_rate_max"`
	OxygenLevelMin int     `json:"oxygen_level_min"`
	HydrationGoal  int     `json:"hydration_goal"`
	SleepHoursGoal float64 `json:"sleep_hours_goal"`
}

// DefaultGoals are the dashboard's targets. They are constants, not user settings.
var DefaultGoals = Goals{
	StepsGoal:      10000,
	HeartRateMin:   60,
	HeartRateMax:   100,
	OxygenLevelMin: 95,
	HydrationGoal:  3000,
	SleepHoursGoal: 8,
}

// Target returns the goal for metrics measured against a single target.
// ok is false for range metrics (heart rate, oxygen).
func (g Goals) Target(m Metric) (target float64, ok bool) {
	switch m {
	case Steps:
		return float64(g.StepsGoal), true
	case Hydration:
		return float64(g.HydrationGoal), true
	case SleepHours:
		return g.SleepHoursGoal, true
	}
	return 0, false
}

// Range returns the acceptable range for range metrics.
func (g Goals) Range(m Metric) (lo, hi float64, ok bool) {
	switch m {
	case HeartRate:
		return float64(g.HeartRateMin), float64(g.HeartRateMax), true
	case OxygenLevel:
		return float64(g.OxygenLevelMin), 100, true
	}
	return 0, 0, false
}
