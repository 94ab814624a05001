package stats

import (
	"time"

	"healthdash/internal/model"
)

// ChartLabelLayout formats chart point labels, e.g. "Mar 07".
const ChartLabelLayout = "Jan 02"

// ChartPoint is one value of a chart series.
type ChartPoint struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
	Value float64   `json:"value"`
}

// Series returns m's values ordered oldest to newest, the order charts
// are drawn in.
func Series(m model.Metric, readings []model.Reading) []ChartPoint {
	points := make([]ChartPoint, 0, len(readings))
	for i := len(readings) - 1; i >= 0; i-- {
		r := readings[i]
		points = append(points, ChartPoint{
			Date:  r.Date,
			Label: r.Date.Format(ChartLabelLayout),
			Value: m.Value(r),
		})
	}
	return points
}

// Averages are the per-metric means shown on the reports page.
type Averages struct {
	Steps       float64 `json:"steps"`
	HeartRate   float64 `json:"heart_rate"`
	OxygenLevel float64 `json:"oxygen_level"`
	Hydration   float64 `json:"hydration"`
	SleepHours  float64 `json:"sleep_hours"`
}

// ComputeAverages averages every metric over readings.
func ComputeAverages(readings []model.Reading) Averages {
	avg := func(m model.Metric) float64 {
		return Compute(m, readings, model.Goals{}).Avg
	}
	return Averages{
		Steps:       avg(model.Steps),
		HeartRate:   avg(model.HeartRate),
		OxygenLevel: avg(model.OxygenLevel),
		Hydration:   avg(model.Hydration),
		SleepHours:  avg(model.SleepHours),
	}
}

// Report bundles the reports page data: averages plus the charted metrics.
type Report struct {
	Days     int                           `json:"days"`
	Averages Averages                      `json:"averages"`
	Charts   map[model.Metric][]ChartPoint `json:"charts"`
}

// ReportCharts are the metrics the reports page charts.
var ReportCharts = []model.Metric{model.Steps, model.HeartRate, model.Hydration, model.SleepHours}

// BuildReport assembles a Report over readings.
func BuildReport(readings []model.Reading) Report {
	charts := make(map[model.Metric][]ChartPoint, len(ReportCharts))
	for _, m := range ReportCharts {
		charts[m] = Series(m, readings)
	}
	return Report{
		Days:     len(readings),
		Averages: ComputeAverages(readings),
		Charts:   charts,
	}
}
