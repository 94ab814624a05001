// Package form validates manually entered readings.
package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"healthdash/internal/model"
)

// Submission is a manually entered reading. Nil fields take the form
// defaults.
type Submission struct {
	Steps       *float64 `json:"steps"`
	HeartRate   *float64 `json:"heart_rate"`
	OxygenLevel *float64 `json:"oxygen_level"`
	Hydration   *float64 `json:"hydration"`
	SleepHours  *float64 `json:"sleep_hours"`
}

// bound is the accepted range of one field.
type bound struct {
	metric   model.Metric
	min, max float64
	whole    bool
	def      float64
}

var bounds = []bound{
	{metric: model.Steps, min: 0, max: 100000, whole: true, def: 0},
	{metric: model.HeartRate, min: 40, max: 220, whole: true, def: 70},
	{metric: model.OxygenLevel, min: 80, max: 100, whole: true, def: 98},
	{metric: model.Hydration, min: 0, max: 5000, whole: true, def: 2000},
	{metric: model.SleepHours, min: 0, max: 24, def: 8},
}

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every invalid field of a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "invalid reading: " + strings.Join(msgs, "; ")
}

func (s Submission) field(m model.Metric) *float64 {
	switch m {
	case model.Steps:
		return s.Steps
	case model.HeartRate:
		return s.HeartRate
	case model.OxygenLevel:
		return s.OxygenLevel
	case model.Hydration:
		return s.Hydration
	case model.SleepHours:
		return s.SleepHours
	}
	return nil
}

func (s Submission) value(b bound) float64 {
	if v := s.field(b.metric); v != nil {
		return *v
	}
	return b.def
}

// Validate checks every field and reports all violations at once.
func (s Submission) Validate() error {
	var fields []FieldError

	for _, b := range bounds {
		v := s.value(b)
		label := titleLabel(b.metric)

		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			fields = append(fields, FieldError{string(b.metric), label + " must be a number"})
		case b.whole && v != math.Trunc(v):
			fields = append(fields, FieldError{string(b.metric), label + " must be a whole number"})
		case v < b.min:
			fields = append(fields, FieldError{string(b.metric), fmt.Sprintf("%s must be at least %s", label, formatBound(b.min))})
		case v > b.max:
			fields = append(fields, FieldError{string(b.metric), fmt.Sprintf("%s must be at most %s", label, formatBound(b.max))})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Build validates s and returns the reading it describes, dated now.
func (s Submission) Build(now time.Time) (model.Reading, error) {
	if err := s.Validate(); err != nil {
		return model.Reading{}, err
	}

	value := func(m model.Metric) float64 {
		for _, b := range bounds {
			if b.metric == m {
				return s.value(b)
			}
		}
		return 0
	}

	return model.Reading{
		ID:          model.NewID(now),
		Date:        now,
		Steps:       int(value(model.Steps)),
		HeartRate:   int(value(model.HeartRate)),
		OxygenLevel: int(value(model.OxygenLevel)),
		Hydration:   int(value(model.Hydration)),
		SleepHours:  value(model.SleepHours),
		CreatedAt:   now,
	}, nil
}

// Defaults returns the values an empty form starts with.
func Defaults() Submission {
	var s Submission
	for _, b := range bounds {
		v := b.def
		switch b.metric {
		case model.Steps:
			s.Steps = &v
		case model.HeartRate:
			s.HeartRate = &v
		case model.OxygenLevel:
			s.OxygenLevel = &v
		case model.Hydration:
			s.Hydration = &v
		case model.SleepHours:
			s.SleepHours = &v
		}
	}
	return s
}

func titleLabel(m model.Metric) string {
	l := m.Label()
	return strings.ToUpper(l[:1]) + l[1:]
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
