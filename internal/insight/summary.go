package insight

import (
	"fmt"

	"healthdash/internal/model"
	"healthdash/internal/stats"
)

// Severity ranks how urgently a tip should be acted on.
type Severity string

const (
	SeverityOK        Severity = "OK"
	SeverityAttention Severity = "ATTENTION"
	SeverityConsult   Severity = "CONSULT"
)

// RuleResult is the outcome of a single summary rule.
type RuleResult struct {
	Triggered bool
	Tip       string
	Severity  Severity
}

// Rule evaluates the latest reading against the goals.
type Rule func(r model.Reading, g model.Goals) RuleResult

// ---------- RULES ----------

// LowStepsRule fires below half of the step goal.
func LowStepsRule(r model.Reading, g model.Goals) RuleResult {
	if float64(r.Steps) < float64(g.StepsGoal)*0.5 {
		return RuleResult{
			Triggered: true,
			Tip:       fmt.Sprintf("Try to increase your daily steps to at least %d", g.StepsGoal),
			Severity:  SeverityAttention,
		}
	}
	return RuleResult{}
}

// LowHydrationRule fires below 70% of the hydration goal.
func LowHydrationRule(r model.Reading, g model.Goals) RuleResult {
	if float64(r.Hydration) < float64(g.HydrationGoal)*0.7 {
		return RuleResult{
			Triggered: true,
			Tip:       fmt.Sprintf("Drink more water to reach the recommended %d ml", g.HydrationGoal),
			Severity:  SeverityAttention,
		}
	}
	return RuleResult{}
}

// ShortSleepRule fires below 90% of the sleep goal.
func ShortSleepRule(r model.Reading, g model.Goals) RuleResult {
	if r.SleepHours < g.SleepHoursGoal*0.9 {
		return RuleResult{
			Triggered: true,
			Tip:       fmt.Sprintf("Aim for %s hours of sleep for better health", formatNumber(g.SleepHoursGoal)),
			Severity:  SeverityAttention,
		}
	}
	return RuleResult{}
}

// LowOxygenRule fires below the minimum oxygen level.
func LowOxygenRule(r model.Reading, g model.Goals) RuleResult {
	if r.OxygenLevel < g.OxygenLevelMin {
		return RuleResult{
			Triggered: true,
			Tip:       "Your oxygen level is below normal, consider consulting a doctor",
			Severity:  SeverityConsult,
		}
	}
	return RuleResult{}
}

// DefaultRules are evaluated by Summarize, in tip order.
var DefaultRules = []Rule{
	LowStepsRule,
	LowHydrationRule,
	ShortSleepRule,
	LowOxygenRule,
}

const (
	allGoodTip    = "Great job! Your health metrics are looking good"
	noSummaryData = "No health data available. Please add your health metrics to see a summary."
)

// Summary is the dashboard's progress card.
type Summary struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`

	Date              string   `json:"date,omitempty"`
	StepsProgress     int      `json:"steps_progress"`
	HydrationProgress int      `json:"hydration_progress"`
	SleepProgress     int      `json:"sleep_progress"`
	HeartRateStatus   string   `json:"heart_rate_status,omitempty"`
	OxygenStatus      string   `json:"oxygen_status,omitempty"`
	OverallSeverity   Severity `json:"overall_severity,omitempty"`
	Tips              []string `json:"tips"`

	Latest *model.Reading `json:"latest,omitempty"`
}

// Summarize evaluates DefaultRules against the latest reading.
func Summarize(readings []model.Reading, goals model.Goals) Summary {
	return SummarizeWith(readings, goals, DefaultRules)
}

// SummarizeWith evaluates rules against the latest reading.
func SummarizeWith(readings []model.Reading, goals model.Goals, rules []Rule) Summary {
	if len(readings) == 0 {
		return Summary{
			Available: false,
			Message:   noSummaryData,
			Tips:      []string{},
		}
	}

	latest := readings[0]
	summary := Summary{
		Available:         true,
		Date:              latest.Date.Format("Monday, January 2, 2006"),
		StepsProgress:     stats.ProgressPercent(float64(latest.Steps), float64(goals.StepsGoal)),
		HydrationProgress: stats.ProgressPercent(float64(latest.Hydration), float64(goals.HydrationGoal)),
		SleepProgress:     stats.ProgressPercent(latest.SleepHours, goals.SleepHoursGoal),
		HeartRateStatus:   Status(model.HeartRate, float64(latest.HeartRate), goals),
		OxygenStatus:      Status(model.OxygenLevel, float64(latest.OxygenLevel), goals),
		OverallSeverity:   SeverityOK,
		Tips:              []string{},
		Latest:            &latest,
	}

	for _, rule := range rules {
		result := rule(latest, goals)
		if !result.Triggered {
			continue
		}

		summary.Tips = append(summary.Tips, result.Tip)

		// Escalate severity
		if result.Severity == SeverityConsult {
			summary.OverallSeverity = SeverityConsult
		} else if result.Severity == SeverityAttention && summary.OverallSeverity == SeverityOK {
			summary.OverallSeverity = SeverityAttention
		}
	}

	if len(summary.Tips) == 0 {
		summary.Tips = append(summary.Tips, allGoodTip)
	}
	return summary
}
