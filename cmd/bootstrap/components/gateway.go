package components

import (
	"log/slog"

	"academy-booking/internal/infra/backend"
	"academy-booking/internal/pkg/config"
	"academy-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewBackendClient,
		fx.Annotate(
			backend.NewCatalog,
			fx.As(new(shared.CatalogGateway)),
		),
		fx.Annotate(
			backend.NewRegistration,
			fx.As(new(shared.RegistrationGateway)),
		),
		fx.Annotate(
			backend.NewBookings,
			fx.As(new(shared.BookingGateway)),
		),
	),
)

func NewBackendClient(cfg config.Config, logger *slog.Logger) *backend.Client {
	return backend.NewClient(cfg.Backend, logger.With("component", "backend"))
}
