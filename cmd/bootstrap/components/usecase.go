package components

import (
	"context"

	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/config"
	"academy-booking/internal/usecase"
	"academy-booking/internal/usecase/flow"
	"academy-booking/internal/usecase/identity"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewTokenValidator,
		NewManagerConfig,
		flow.NewManager,
	),
	fx.Invoke(registerFlowLifecycle),
)

func NewManagerConfig(cfg config.Config) (flow.ManagerConfig, error) {
	mode, err := identity.ParseMode(cfg.Flow.DefaultMode)
	if err != nil {
		return flow.ManagerConfig{}, err
	}
	return flow.ManagerConfig{
		DefaultMode:  mode,
		IdleTTL:      cfg.Flow.IdleTTL,
		WriteTimeout: cfg.Storage.WriteTimeout,
	}, nil
}

// registerFlowLifecycle runs the idle sweeper and closes every flow on shutdown.
func registerFlowLifecycle(lc fx.Lifecycle, manager *flow.Manager, cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go manager.RunSweeper(ctx, cfg.Flow.SweepInterval)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			manager.CloseAll(stopCtx)
			return nil
		},
	})
}
