//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"academy-booking/internal/pkg/config"
	"academy-booking/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

// JWTHelper mints session tokens the way the academy backend does.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, clientID string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.SessionTokenTTL)
	token, err := service.GenerateToken(clientID)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, clientID string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, time.Millisecond)
	token, err := service.GenerateToken(clientID)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
