package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"fulfillment/internal/adapters/out/memory/orderrepo"
	"fulfillment/internal/adapters/out/memory/restaurantregistry"
	"fulfillment/internal/adapters/out/memory/riderpool"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/sysclock"
	"fulfillment/internal/core/application/pipeline"
	"fulfillment/internal/jobs"
)

// CompositionRoot wires every adapter and stage of the engine explicitly.
// There are no package-level singletons; everything a component needs is
// handed to it here.
type CompositionRoot struct {
	logger       *slog.Logger
	registry     *restaurantregistry.Registry
	repo         *orderrepo.Repository
	pool         *riderpool.Pool
	orchestrator *pipeline.Orchestrator
	jobManager   *jobs.JobManager
}

func NewCompositionRoot(configs Config) (*CompositionRoot, error) {
	prepTime, err := time.ParseDuration(configs.KitchenPrepTime)
	if err != nil {
		return nil, fmt.Errorf("invalid KITCHEN_PREP_TIME: %w", err)
	}
	transitLeg, err := time.ParseDuration(configs.TransitLegTime)
	if err != nil {
		return nil, fmt.Errorf("invalid TRANSIT_LEG_TIME: %w", err)
	}
	redispatchMaxAge, err := time.ParseDuration(configs.RedispatchMaxAge)
	if err != nil {
		return nil, fmt.Errorf("invalid REDISPATCH_MAX_AGE: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	registry := restaurantregistry.NewRegistry()
	repo := orderrepo.NewRepository()
	pool := riderpool.NewPool(nil)
	notifier := notify.NewSMSNotifier(logger)
	clock := sysclock.New()

	kitchen, err := pipeline.NewKitchen(clock, prepTime, logger)
	if err != nil {
		return nil, err
	}
	delivery, err := pipeline.NewDelivery(pool, notifier, clock, transitLeg, logger)
	if err != nil {
		return nil, err
	}
	orchestrator, err := pipeline.NewOrchestrator(registry, repo, notifier, kitchen, delivery, logger)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		logger:       logger,
		registry:     registry,
		repo:         repo,
		pool:         pool,
		orchestrator: orchestrator,
		jobManager:   jobs.NewJobManager(orchestrator, redispatchMaxAge, logger),
	}, nil
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) Registry() *restaurantregistry.Registry {
	return c.registry
}

func (c *CompositionRoot) Pool() *riderpool.Pool {
	return c.pool
}

func (c *CompositionRoot) Orchestrator() *pipeline.Orchestrator {
	return c.orchestrator
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}
