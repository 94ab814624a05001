package hub

import "time"

// HealthPolicy defines when a client is considered healthy, recovered or gone
type HealthPolicy struct {
	FailureThreshold int // consecutive failures to mark unhealthy
	SuccessThreshold int // consecutive successes to mark healthy again
	EvictThreshold   int // consecutive failures to disconnect
}

type HeartbeatPolicy struct {
	Interval     time.Duration
	WriteTimeout time.Duration
}

type Config struct {
	Health    HealthPolicy
	Heartbeat HeartbeatPolicy

	// ClientBuffer is the number of queued events per client.
	ClientBuffer int
	// PongWait is how long a client may stay silent before its read fails.
	PongWait time.Duration
}

func DefaultConfig() Config {
	return Config{
		Health: HealthPolicy{
			FailureThreshold: 3,
			SuccessThreshold: 2,
			EvictThreshold:   6,
		},
		Heartbeat: HeartbeatPolicy{
			Interval:     30 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		ClientBuffer: 64,
		PongWait:     90 * time.Second,
	}
}
