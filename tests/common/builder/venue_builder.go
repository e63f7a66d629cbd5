//go:build unit || e2e

package builder

import (
	"testing"

	"academy-booking/internal/domain/venue"

	"github.com/stretchr/testify/require"
)

type VenueBuilder struct {
	ID               string
	AcademyProfileID string
	ActivityID       string
	Name             string
	MinPlayers       int
	MaxPlayers       int
	AllowCash        bool
	AllowCliq        bool
	AllowCashOnDate  bool
}

func NewVenueBuilder() *VenueBuilder {
	return &VenueBuilder{
		ID:               "venue-1",
		AcademyProfileID: "academy-7",
		ActivityID:       "activity-3",
		Name:             "Court 1",
		MinPlayers:       2,
		MaxPlayers:       4,
		AllowCash:        true,
		AllowCliq:        true,
		AllowCashOnDate:  true,
	}
}

func (v *VenueBuilder) With(mutate func(*VenueBuilder)) *VenueBuilder {
	mutate(v)
	return v
}

func (v *VenueBuilder) WithPlayers(minPlayers, maxPlayers int) *VenueBuilder {
	v.MinPlayers = minPlayers
	v.MaxPlayers = maxPlayers
	return v
}

func (v *VenueBuilder) CashOnly() *VenueBuilder {
	v.AllowCash = true
	v.AllowCliq = false
	return v
}

func (v *VenueBuilder) CliqOnly() *VenueBuilder {
	v.AllowCash = false
	v.AllowCliq = true
	v.AllowCashOnDate = false
	return v
}

// Build methods
func (v *VenueBuilder) BuildDomain() (*venue.Venue, error) {
	return venue.NewVenue(v.ID, v.AcademyProfileID, v.ActivityID, v.Name, v.MinPlayers, v.MaxPlayers, venue.PaymentOptions{
		AllowCash:       v.AllowCash,
		AllowCliq:       v.AllowCliq,
		AllowCashOnDate: v.AllowCashOnDate,
	})
}

func (v *VenueBuilder) MustBuild(t *testing.T) *venue.Venue {
	t.Helper()
	out, err := v.BuildDomain()
	require.NoError(t, err)
	return out
}

// BuildPayload is the backend's GET /venues/{id} body.
func (v *VenueBuilder) BuildPayload() map[string]any {
	return map[string]any{
		"venue": map[string]any{
			"id":                 v.ID,
			"academy_profile_id": v.AcademyProfileID,
			"activity_id":        v.ActivityID,
			"name":               v.Name,
			"min_players":        v.MinPlayers,
			"max_players":        v.MaxPlayers,
			"allow_cash":         v.AllowCash,
			"allow_cliq":         v.AllowCliq,
			"allow_cash_on_date": v.AllowCashOnDate,
		},
	}
}

// Durations is a 60 minute default and a 90 minute alternative.
func Durations() []venue.Duration {
	price60, price90 := 20.0, 28.0
	return []venue.Duration{
		{ID: "d60", Minutes: 60, BasePrice: &price60, IsDefault: true},
		{ID: "d90", Minutes: 90, BasePrice: &price90},
	}
}

func Slots() []venue.Slot {
	return []venue.Slot{
		{StartTime: "18:00", EndTime: "19:00"},
		{StartTime: "19:00", EndTime: "20:00"},
	}
}
