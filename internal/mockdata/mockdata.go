// Package mockdata generates the random reading series the dashboard
// starts with.
package mockdata

import (
	"math/rand"
	"time"

	"healthdash/internal/model"
)

// Ranges are half-open [Min, Max) bounds for generated values.
type Ranges struct {
	StepsMin      int
	StepsMax      int
	HeartRateMin  int
	HeartRateMax  int
	OxygenMin     int
	OxygenMax     int
	HydrationMin  int
	HydrationMax  int
	SleepHoursMin int
	SleepHoursMax int
}

// DefaultRanges produce plausible, mostly healthy values.
var DefaultRanges = Ranges{
	StepsMin: 5000, StepsMax: 12000,
	HeartRateMin: 60, HeartRateMax: 100,
	OxygenMin: 95, OxygenMax: 100,
	HydrationMin: 1500, HydrationMax: 3000,
	SleepHoursMin: 5, SleepHoursMax: 10,
}

// Generator produces reading series from a seeded source.
type Generator struct {
	rng    *rand.Rand
	ranges Ranges
	now    func() time.Time
}

// NewGenerator returns a generator; equal seeds yield equal values.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		ranges: DefaultRanges,
		now:    time.Now,
	}
}

// WithClock overrides the reference time used to date readings.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Series returns one reading per day for the last days days, today first.
func (g *Generator) Series(days int) []model.Reading {
	if days <= 0 {
		return []model.Reading{}
	}

	now := g.now()
	out := make([]model.Reading, 0, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -i)
		out = append(out, model.Reading{
			ID:          model.NewID(date),
			Date:        date,
			Steps:       g.between(g.ranges.StepsMin, g.ranges.StepsMax),
			HeartRate:   g.between(g.ranges.HeartRateMin, g.ranges.HeartRateMax),
			OxygenLevel: g.between(g.ranges.OxygenMin, g.ranges.OxygenMax),
			Hydration:   g.between(g.ranges.HydrationMin, g.ranges.HydrationMax),
			SleepHours:  float64(g.between(g.ranges.SleepHoursMin, g.ranges.SleepHoursMax)),
			CreatedAt:   date,
		})
	}
	return out
}

func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo)
}
