package store

import (
	"errors"
	"sync"

	"healthdash/internal/metrics"
	"healthdash/internal/model"
)

// ErrNoReadings is returned by operations that need a latest reading.
var ErrNoReadings = errors.New("no readings")

// Store owns the in-memory reading series.
//
// The series is ordered most recent first and never grows beyond the
// window it was created with: Prepend drops the oldest reading once
// the window is full. Readers always receive copies.
type Store struct {
	mu       sync.RWMutex
	readings []model.Reading
	window   int
	metrics  *metrics.Registry
}

// NewStore creates a store holding a copy of initial, truncated to window.
// A non-positive window means "the length of initial".
func NewStore(metricsRegistry *metrics.Registry, window int, initial []model.Reading) *Store {
	if window <= 0 {
		window = len(initial)
	}
	if len(initial) > window {
		initial = initial[:window]
	}

	readings := make([]model.Reading, len(initial), window)
	copy(readings, initial)

	s := &Store{
		readings: readings,
		window:   window,
		metrics:  metricsRegistry,
	}
	s.metrics.Set(metrics.ReadingsStored, int64(len(readings)))
	return s
}

// Window is the maximum series length.
func (s *Store) Window() int {
	return s.window
}

// Len returns the number of stored readings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}

// List returns a snapshot of the series, most recent first.
func (s *Store) List() []model.Reading {
	return s.Recent(0)
}

// Recent returns up to n of the most recent readings. n <= 0 means all.
func (s *Store) Recent(n int) []model.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.readings) {
		n = len(s.readings)
	}
	out := make([]model.Reading, n)
	copy(out, s.readings[:n])
	return out
}

// Latest returns the most recent reading.
func (s *Store) Latest() (model.Reading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.readings) == 0 {
		return model.Reading{}, false
	}
	return s.readings[0], true
}

// Prepend inserts r as the most recent reading.
//
// When the window is full the oldest reading is dropped and returned
// with evicted set to true.
func (s *Store) Prepend(r model.Reading) (dropped model.Reading, evicted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.Inc(metrics.ReadingsSubmittedTotal)

	if s.window > 0 && len(s.readings) >= s.window {
		dropped = s.readings[len(s.readings)-1]
		evicted = true
		s.readings = s.readings[:len(s.readings)-1]
		s.metrics.Inc(metrics.ReadingsEvictedTotal)
	}

	s.readings = append(s.readings, model.Reading{})
	copy(s.readings[1:], s.readings[:len(s.readings)-1])
	s.readings[0] = r

	s.metrics.Set(metrics.ReadingsStored, int64(len(s.readings)))
	return dropped, evicted
}

// AddHydration adds amount millilitres to the most recent reading and
// returns the updated reading.
func (s *Store) AddHydration(amount int) (model.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.readings) == 0 {
		return model.Reading{}, ErrNoReadings
	}

	s.readings[0].Hydration += amount
	s.metrics.Inc(metrics.HydrationQuickAddsTotal)
	return s.readings[0], nil
}
