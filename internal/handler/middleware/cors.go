package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"academy-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always allows the device header; no flow route works without it.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowHeaders := slices.Clone(cfg.AllowHeaders)
	if !slices.ContainsFunc(allowHeaders, func(h string) bool {
		return http.CanonicalHeaderKey(h) == http.CanonicalHeaderKey(DeviceIDHeader)
	}) {
		allowHeaders = append(allowHeaders, DeviceIDHeader)
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     allowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		"allow_origins", cfg.AllowOrigins,
		"allow_headers", allowHeaders)
	return cors.New(corsCfg)
}
