package bootstrap

import (
	"academy-booking/internal/infra/continuation"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/config"
	"academy-booking/internal/pkg/jwt"
	"academy-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		fx.Annotate(
			NewContinuationIssuer,
			fx.As(new(shared.AuthRedirector)),
			fx.As(new(shared.ResumeVerifier)),
		),
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.SessionTokenTTL)
}

func NewContinuationIssuer(cfg config.Config, clk clock.Clock) *continuation.Issuer {
	if cfg.JWT.ResumeTokenTTL <= 0 {
		panic("invalid JWT_RESUME_TOKEN_TTL: must be positive")
	}
	return continuation.NewIssuer(cfg.JWT.ResumeSigningKey(), cfg.JWT.ResumeTokenTTL, clk)
}
