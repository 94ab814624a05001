package insight

import (
	"fmt"
	"strconv"

	"healthdash/internal/model"
)

// Topic is the subject a question is routed to.
type Topic string

const (
	TopicActivity    Topic = "activity"
	TopicCardiac     Topic = "cardiac"
	TopicRespiratory Topic = "respiratory"
	TopicHydration   Topic = "hydration"
	TopicSleep       Topic = "sleep"
	TopicComposite   Topic = "composite"
	TopicNone        Topic = ""
)

// keywordRoute maps question keywords to a topic. Routes are checked in
// order and the first route with a matching keyword wins.
type keywordRoute struct {
	topic    Topic
	keywords []string
}

var keywordRoutes = []keywordRoute{
	{TopicActivity, []string{"steps", "walking"}},
	{TopicCardiac, []string{"heart", "bpm"}},
	{TopicRespiratory, []string{"oxygen", "spo2"}},
	{TopicHydration, []string{"water", "hydration"}},
	{TopicSleep, []string{"sleep", "rest"}},
	{TopicComposite, []string{"health", "overall"}},
}

// band selects a response template for values below limit (or at limit
// when inclusive). The last band of a table has no limit and always matches.
type band struct {
	limit     float64
	inclusive bool
	open      bool
	template  string
}

func (b band) matches(v float64) bool {
	switch {
	case b.open:
		return true
	case b.inclusive:
		return v <= b.limit
	default:
		return v < b.limit
	}
}

// topicTable is the threshold table answering a single-metric topic.
type topicTable struct {
	metric model.Metric
	bands  []band
}

func (t topicTable) answer(r model.Reading) string {
	v := t.metric.Value(r)
	for _, b := range t.bands {
		if b.matches(v) {
			return fmt.Sprintf(b.template, formatNumber(v))
		}
	}
	return ""
}

var topicTables = map[Topic]topicTable{
	TopicActivity: {model.Steps, []band{
		{limit: 5000, template: "You've walked %s steps today, which is below the recommended 10,000 steps. Try to incorporate more walking into your day, perhaps by taking the stairs instead of the elevator or going for a short walk during your lunch break."},
		{limit: 10000, template: "You've walked %s steps today, which is good but still below the recommended 10,000 steps. You're on the right track! Try to add a short evening walk to reach your goal."},
		{open: true, template: "Great job! You've walked %s steps today, exceeding the recommended 10,000 steps. Keep up the good work!"},
	}},
	TopicCardiac: {model.HeartRate, []band{
		{limit: 60, template: "Your heart rate is %s BPM, which is below the normal resting range (60-100 BPM). This could be normal for athletes, but if you're experiencing symptoms like dizziness or fatigue, consider consulting a healthcare professional."},
		{limit: 100, inclusive: true, template: "Your heart rate is %s BPM, which is within the normal resting range (60-100 BPM). This indicates good cardiovascular health."},
		{open: true, template: "Your heart rate is %s BPM, which is above the normal resting range (60-100 BPM). This could be due to recent physical activity, stress, or caffeine intake. If it persists at rest, consider consulting a healthcare professional."},
	}},
	TopicRespiratory: {model.OxygenLevel, []band{
		{limit: 95, template: "Your oxygen level is %s%%, which is below the normal range (95-100%%). If this reading is accurate and consistent, consider consulting a healthcare professional."},
		{open: true, template: "Your oxygen level is %s%%, which is within the normal range (95-100%%). This indicates good respiratory function."},
	}},
	TopicHydration: {model.Hydration, []band{
		{limit: 1500, template: "You've consumed %s ml of water today, which is below the recommended daily intake (2000-3000 ml). Try to drink more water throughout the day to stay properly hydrated."},
		{limit: 2500, template: "You've consumed %s ml of water today, which is good but could be improved. Aim for at least 2500 ml daily for optimal hydration."},
		{open: true, template: "Great job! You've consumed %s ml of water today, which meets or exceeds the recommended daily intake. Staying well-hydrated supports overall health and cognitive function."},
	}},
	TopicSleep: {model.SleepHours, []band{
		{limit: 6, template: "You slept for %s hours last night, which is below the recommended 7-9 hours for adults. Chronic sleep deprivation can affect your health and cognitive function. Try to establish a regular sleep schedule and create a relaxing bedtime routine."},
		{limit: 7, template: "You slept for %s hours last night, which is slightly below the recommended 7-9 hours for adults. Try to get to bed a bit earlier tonight."},
		{open: true, template: "You slept for %s hours last night, which is within the recommended 7-9 hours for adults. Good quality sleep is essential for physical and mental health."},
	}},
}

// compositeCheck classifies one metric for the overall answer. A value
// may be a concern, a positive, or neither.
type compositeCheck struct {
	concern      func(r model.Reading) bool
	concernText  string
	positive     func(r model.Reading) bool
	positiveText string
}

var compositeChecks = []compositeCheck{
	{
		concern:      func(r model.Reading) bool { return r.Steps < 5000 },
		concernText:  "low step count",
		positive:     func(r model.Reading) bool { return r.Steps >= 10000 },
		positiveText: "excellent step count",
	},
	{
		concern:      func(r model.Reading) bool { return r.HeartRate < 60 || r.HeartRate > 100 },
		concernText:  "heart rate outside normal range",
		positiveText: "healthy heart rate",
	},
	{
		concern:      func(r model.Reading) bool { return r.OxygenLevel < 95 },
		concernText:  "oxygen level below recommended range",
		positiveText: "good oxygen levels",
	},
	{
		concern:      func(r model.Reading) bool { return r.Hydration < 2000 },
		concernText:  "insufficient hydration",
		positiveText: "good hydration",
	},
	{
		concern:      func(r model.Reading) bool { return r.SleepHours < 7 },
		concernText:  "insufficient sleep",
		positiveText: "healthy sleep duration",
	},
}

// classify returns the concern or positive phrase for r. A check without
// a positive predicate treats every non-concern as positive.
func (c compositeCheck) classify(r model.Reading) (concern, positive string) {
	if c.concern(r) {
		return c.concernText, ""
	}
	if c.positive == nil || c.positive(r) {
		return "", c.positiveText
	}
	return "", ""
}

const (
	noDataAnswer = "I don't have any health data to analyze yet. Please add your health metrics first."

	fallbackAnswer = "I'm your AI health assistant. I can provide insights based on your health metrics and answer questions about steps, heart rate, oxygen levels, hydration, and sleep. How can I help you today?"

	// Greeting opens every assistant session.
	Greeting = "Hello! I'm your AI health assistant. I can provide insights based on your health metrics and answer questions about steps, heart rate, oxygen levels, hydration, and sleep. How can I help you today?"

	compositeExcellent = "Your overall health metrics look excellent! You're maintaining %s. Keep up the great work and continue with your healthy habits."
	compositeImprove   = "I've noticed several areas for improvement in your health metrics: %s. Consider focusing on these areas to improve your overall health."
	compositeMixed     = "Your health metrics show some strengths and areas for improvement. Positives: %s. Areas to focus on: %s. Small improvements in these areas can lead to significant health benefits."
)

// formatNumber prints v without trailing zeros: 8 stays "8", 7.5 stays "7.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
