// Package insight turns readings into templated sentences: answers to
// assistant questions, per-metric insights, the progress summary and the
// status labels shown next to each metric.
package insight

import (
	"fmt"
	"strings"

	"healthdash/internal/logs"
	"healthdash/internal/metrics"
	"healthdash/internal/model"
)

// Generator answers free-text questions about the latest reading.
type Generator struct {
	metrics *metrics.Registry
	logger  *logs.Logger
}

// NewGenerator creates a generator. Both dependencies are required.
func NewGenerator(reg *metrics.Registry, logger *logs.Logger) *Generator {
	return &Generator{
		metrics: reg,
		logger:  logger,
	}
}

// Route returns the topic a question is about. Matching is case
// insensitive and the first route in table order wins.
func Route(question string) Topic {
	q := strings.ToLower(question)
	for _, route := range keywordRoutes {
		for _, kw := range route.keywords {
			if strings.Contains(q, kw) {
				return route.topic
			}
		}
	}
	return TopicNone
}

// Answer replies to question using the most recent reading of readings.
// It never fails: an empty series and unknown questions get fixed replies.
func (g *Generator) Answer(question string, readings []model.Reading) string {
	if len(readings) == 0 {
		g.metrics.Inc(metrics.InsightsNoDataTotal)
		return noDataAnswer
	}

	topic := Route(question)
	g.logger.Debugf("question routed to %q", topic)

	switch topic {
	case TopicNone:
		g.metrics.Inc(metrics.InsightsFallbackTotal)
		return fallbackAnswer
	case TopicComposite:
		g.metrics.Inc(metrics.InsightsGeneratedTotal)
		return Composite(readings[0])
	}

	g.metrics.Inc(metrics.InsightsGeneratedTotal)
	return topicTables[topic].answer(readings[0])
}

// Composite summarizes every metric of r in one sentence.
func Composite(r model.Reading) string {
	concerns, positives := Assess(r)

	switch {
	case len(concerns) == 0:
		return fmt.Sprintf(compositeExcellent, strings.Join(positives, ", "))
	case len(positives) == 0:
		return fmt.Sprintf(compositeImprove, strings.Join(concerns, ", "))
	default:
		return fmt.Sprintf(compositeMixed, strings.Join(positives, ", "), strings.Join(concerns, ", "))
	}
}

// Assess returns the concern and positive phrases for r, in metric order.
func Assess(r model.Reading) (concerns, positives []string) {
	concerns = []string{}
	positives = []string{}
	for _, check := range compositeChecks {
		c, p := check.classify(r)
		if c != "" {
			concerns = append(concerns, c)
		}
		if p != "" {
			positives = append(positives, p)
		}
	}
	return concerns, positives
}
