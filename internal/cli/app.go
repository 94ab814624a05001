package cli

import (
	"os"

	"healthdash/internal/assistant"
	"healthdash/internal/config"
	"healthdash/internal/hub"
	"healthdash/internal/insight"
	"healthdash/internal/logs"
	"healthdash/internal/metrics"
	"healthdash/internal/mockdata"
	"healthdash/internal/store"
)

// app wires the in-process components.
type app struct {
	cfg       *config.Config
	logger    *logs.Logger
	metrics   *metrics.Registry
	store     *store.Store
	generator *insight.Generator
	assistant *assistant.Manager
	hub       *hub.Hub
	hubConfig hub.Config
}

func newApp(cfg *config.Config, mirrorLogs bool) *app {
	logger := logs.NewLogger(cfg.LogBuffer, logs.ParseLevel(cfg.LogLevel))
	if mirrorLogs {
		logger.SetOutput(os.Stderr)
	}

	reg := metrics.NewRegistry()

	series := mockdata.NewGenerator(cfg.Seed).Series(cfg.WindowDays)
	st := store.NewStore(reg, cfg.WindowDays, series)
	logger.With("store").Infof("generated %d readings (seed %d)", st.Len(), cfg.Seed)

	gen := insight.NewGenerator(reg, logger.With("insight"))
	asst := assistant.NewManager(st, gen, assistant.Config{
		ThinkDelay: cfg.ThinkDelay,
		SessionTTL: cfg.SessionTTL,
	}, reg, logger.With("assistant"))

	hubCfg := hub.DefaultConfig()
	hubCfg.Heartbeat.Interval = cfg.HeartbeatInterval
	hubCfg.Health.FailureThreshold = cfg.FailureThreshold
	hubCfg.Health.EvictThreshold = 2 * cfg.FailureThreshold
	hubCfg.ClientBuffer = cfg.ClientBuffer

	return &app{
		cfg:       cfg,
		logger:    logger,
		metrics:   reg,
		store:     st,
		generator: gen,
		assistant: asst,
		hub:       hub.New(hubCfg, reg, logger.With("hub")),
		hubConfig: hubCfg,
	}
}
