package main

import (
	"context"
	"fmt"

	auction "auction-marketplace/internal/auctionService"
	"auction-marketplace/internal/config"
	"auction-marketplace/internal/events"
	"auction-marketplace/internal/repository"
	"auction-marketplace/internal/shops"
	"auction-marketplace/utils"
)

const (
	storeMemory     = "memory"
	ownershipRemote = "remote"
	eventsRedis     = "redis"
	eventsNATS      = "nats"
)

type auctionStore interface {
	repository.AuctionDB
	repository.Seeder
}

// openStore opens the configured store; SQL stores are migrated on open
func openStore(ctx context.Context, cfg config.StoreConfig) (auctionStore, func(), error) {
	if cfg.Driver == storeMemory {
		return repository.NewMemoryRepo(), func() {}, nil
	}

	repo, err := repository.OpenSQLRepo(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.Migrate(ctx); err != nil {
		_ = repo.Close()
		return nil, nil, err
	}
	closeFn := func() {
		if err := repo.Close(); err != nil {
			utils.Warn("failed to close store", map[string]any{"error": err.Error()})
		}
	}
	return repo, closeFn, nil
}

// newPublisher builds the auction event publisher for the configured driver
func newPublisher(cfg config.EventsConfig) (events.Publisher, error) {
	switch cfg.Driver {
	case eventsRedis:
		return events.NewRedisPublisher(events.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Stream:   cfg.Stream,
			MaxLen:   cfg.MaxLen,
		}), nil
	case eventsNATS:
		p, err := events.NewNATSPublisher(cfg.NATSURL, cfg.SubjectPrefix)
		if err != nil {
			return nil, fmt.Errorf("connect to nats: %w", err)
		}
		return p, nil
	default:
		return events.NopPublisher{}, nil
	}
}

// newOwnershipChecker returns the remote shop service client, or nil when
// ownership is answered by the store itself.
func newOwnershipChecker(cfg config.OwnershipConfig) (auction.OwnershipChecker, func()) {
	if cfg.Source != ownershipRemote {
		return nil, nil
	}
	client := shops.NewClient(cfg.BaseURL, cfg.Timeout)
	return client, func() {
		if err := client.Close(); err != nil {
			utils.Warn("failed to close shop client", map[string]any{"error": err.Error()})
		}
	}
}
