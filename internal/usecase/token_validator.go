package usecase

import (
	"academy-booking/internal/domain/client"
	"academy-booking/internal/pkg/jwt"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (client.Acting, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

// ValidateToken maps a backend session token to the registered client it names.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (client.Acting, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return client.NoClient(), err
	}
	return client.RegisteredClient(claims.ClientID), nil
}
