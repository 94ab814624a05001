// Package model defines the health dashboard's core data types.
package model

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Reading is one day's set of health metric values.
type Reading struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Steps       int       `json:"steps"`
	HeartRate   int       `json:"heart_rate"`
	OxygenLevel int       `json:"oxygen_level"`
	Hydration   int       `json:"hydration"`
	SleepHours  float64   `json:"sleep_hours"`
	CreatedAt   time.Time `json:"created_at"`
}

var (
	entropyMu sync.Mutex
	entropy   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// NewID returns a time-ordered ULID string.
func NewID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
