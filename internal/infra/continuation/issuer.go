package continuation

import (
	"context"
	"errors"
	"time"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/usecase/shared"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "booking-flow"

var (
	ErrInvalidContinuation = errors.New("invalid continuation token")
	ErrExpiredContinuation = errors.New("continuation token expired")
)

type claims struct {
	DeviceID string        `json:"device_id"`
	Draft    booking.Draft `json:"draft"`
	jwt.RegisteredClaims
}

// Issuer signs the draft into a resume token handed out at an authentication
// redirect. Evidence bytes stay in the device's draft slot, not in the token.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewIssuer(secret string, ttl time.Duration, clock clock.Clock) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock,
	}
}

func (i *Issuer) RequireAuthentication(_ context.Context, deviceID string, d booking.Draft) (*shared.Continuation, error) {
	now := i.clock.Now()
	expiresAt := now.Add(i.ttl)

	carried := booking.Draft{
		VenueID:   d.VenueID,
		Selection: d.Selection.Clone(),
		SavedAt:   d.SavedAt,
	}
	carried.Selection.CliqEvidence = nil

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		DeviceID: deviceID,
		Draft:    carried,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   deviceID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return nil, err
	}

	return &shared.Continuation{
		Token:     signed,
		ExpiresAt: expiresAt,
		Draft:     d,
	}, nil
}

func (i *Issuer) OpenContinuation(tokenString string) (string, booking.Draft, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidContinuation
		}
		return i.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(i.clock.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", booking.Draft{}, ErrExpiredContinuation
		}
		return "", booking.Draft{}, ErrInvalidContinuation
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.DeviceID == "" || c.Draft.VenueID == "" {
		return "", booking.Draft{}, ErrInvalidContinuation
	}
	return c.DeviceID, c.Draft, nil
}
