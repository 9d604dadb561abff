package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/decentraland/thirdparty-registry/src/backend"
	"github.com/decentraland/thirdparty-registry/src/registry"
	"github.com/decentraland/thirdparty-registry/src/store"
	"github.com/decentraland/thirdparty-registry/src/utils/config"
	"github.com/decentraland/thirdparty-registry/src/utils/eth"
	"github.com/decentraland/thirdparty-registry/src/utils/logger"
	"github.com/decentraland/thirdparty-registry/src/utils/model"
	"github.com/decentraland/thirdparty-registry/src/utils/monitoring"
	monitor_registry "github.com/decentraland/thirdparty-registry/src/utils/monitoring/registry"
	"github.com/decentraland/thirdparty-registry/src/utils/publisher"
	"github.com/decentraland/thirdparty-registry/src/utils/task"
)

type Controller struct {
	*task.Task
}

// Main class that orchestrates the registry service.
// Setups storage, external contracts, the API and event publishing.
func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)

	self.Task = task.NewTask(config, "controller")

	monitor := monitor_registry.NewMonitor()

	restServer := monitoring.NewServer(config).
		WithMonitor(monitor)

	reg, err := NewRegistry(self.Ctx, config)
	if err != nil {
		return
	}
	reg = reg.WithMonitor(monitor)

	err = initialize(self.Ctx, config, reg)
	if err != nil {
		return
	}

	server := NewServer(config).
		WithMonitor(monitor).
		WithRegistry(reg)

	self.Task = self.Task.
		WithSubtask(monitor.Task).
		WithSubtask(restServer.Task).
		WithSubtask(server.Task)

	if config.Redis.Enabled {
		redisPublisher := publisher.NewRedisPublisher[*model.Event](config, config.Redis, "redis-publisher").
			WithMonitor(monitor)

		reg.WithEventListener(func(events []*model.Event) {
			redisPublisher.Push(events...)
		})

		self.Task = self.Task.WithSubtask(redisPublisher.Task)
	}

	return
}

// Store selected in the configuration
func NewStore(ctx context.Context, cfg *config.Config) (out store.Store, err error) {
	switch cfg.Store.Kind {
	case config.StoreKindMemory:
		return store.NewMemory(), nil
	case config.StoreKindPostgres:
		db, err := model.NewConnection(ctx, cfg, "registry")
		if err != nil {
			return nil, err
		}
		return store.NewGorm(db).WithIsolation(sql.LevelSerializable), nil
	}
	return nil, fmt.Errorf("unknown store kind: %q", cfg.Store.Kind)
}

// Registry with storage and external contracts selected in the configuration
func NewRegistry(ctx context.Context, config *config.Config) (out *registry.Registry, err error) {
	log := logger.NewSublogger("setup")

	st, err := NewStore(ctx, config)
	if err != nil {
		return
	}

	resolver := backend.NewBackend(config)
	if needsEthClient(config) {
		client, err := eth.GetEthClient(log, &config.Eth)
		if err != nil {
			return nil, err
		}
		resolver = resolver.WithEthClient(client)
	}

	domain, err := eth.NewDomain(&config.Registry.Domain)
	if err != nil {
		return
	}

	out = registry.NewRegistry(st, resolver, domain).
		WithOracleTimeout(config.Oracle.CallTimeout)
	return
}

func needsEthClient(cfg *config.Config) bool {
	return cfg.Oracle.Kind == config.OracleKindChainlink ||
		cfg.Committee.Kind == config.CommitteeKindContract ||
		cfg.Token.Kind == config.TokenKindErc20
}

// Stores the configured settings if the registry has none
func initialize(ctx context.Context, config *config.Config, reg *registry.Registry) (err error) {
	log := logger.NewSublogger("setup")

	_, err = reg.GetSettings(ctx)
	if err == nil {
		log.Info("Registry already initialized")
		return
	}
	if !errors.Is(err, registry.ErrNotInitialized) {
		return
	}

	settings, err := registry.SettingsFromConfig(&config.Registry)
	if err != nil {
		return
	}

	err = reg.Initialize(ctx, settings)
	if err != nil {
		return
	}

	log.WithField("owner", settings.Owner.Hex()).Info("Registry initialized")
	return
}
