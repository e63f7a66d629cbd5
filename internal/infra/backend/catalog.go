package backend

import (
	"context"
	"net/url"
	"strconv"

	"academy-booking/internal/domain/venue"
	"academy-booking/internal/infra"
)

type venueDTO struct {
	ID               flexibleID `json:"id"`
	AcademyProfileID flexibleID `json:"academy_profile_id"`
	ActivityID       flexibleID `json:"activity_id"`
	Name             string     `json:"name"`
	MinPlayers       int        `json:"min_players"`
	MaxPlayers       int        `json:"max_players"`
	AllowCash        bool       `json:"allow_cash"`
	AllowCliq        bool       `json:"allow_cliq"`
	AllowCashOnDate  bool       `json:"allow_cash_on_date"`
}

type durationDTO struct {
	ID        flexibleID `json:"id"`
	Minutes   int        `json:"minutes"`
	BasePrice *float64   `json:"base_price"`
	IsDefault bool       `json:"is_default"`
	Note      string     `json:"note"`
}

type slotDTO struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Catalog reads venues, durations and slots. A missing list is a decode
// failure; an empty one is a valid answer.
type Catalog struct {
	client *Client
}

func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

func (c *Catalog) FetchVenue(ctx context.Context, venueID string) (*venue.Venue, error) {
	var payload struct {
		Venue *venueDTO `json:"venue"`
	}
	if err := c.client.getJSON(ctx, "/venues/"+url.PathEscape(venueID), nil, &payload); err != nil {
		return nil, err
	}
	if payload.Venue == nil {
		return nil, infra.WrapErr(c.client.logger, infra.KindDecode, "venue payload has no venue", nil)
	}

	dto := payload.Venue
	id := string(dto.ID)
	if id == "" {
		id = venueID
	}
	v, err := venue.NewVenue(id, string(dto.AcademyProfileID), string(dto.ActivityID), dto.Name,
		dto.MinPlayers, dto.MaxPlayers, venue.PaymentOptions{
			AllowCash:       dto.AllowCash,
			AllowCliq:       dto.AllowCliq,
			AllowCashOnDate: dto.AllowCashOnDate,
		})
	if err != nil {
		return nil, infra.WrapErr(c.client.logger, infra.KindDecode, "invalid venue payload", err)
	}
	return v, nil
}

func (c *Catalog) FetchDurations(ctx context.Context, venueID string) ([]venue.Duration, error) {
	var payload struct {
		Durations *[]durationDTO `json:"durations"`
	}
	if err := c.client.getJSON(ctx, "/venues/"+url.PathEscape(venueID)+"/durations", nil, &payload); err != nil {
		return nil, err
	}
	if payload.Durations == nil {
		return nil, infra.WrapErr(c.client.logger, infra.KindDecode, "durations payload has no durations", nil)
	}

	out := make([]venue.Duration, 0, len(*payload.Durations))
	for _, d := range *payload.Durations {
		out = append(out, venue.Duration{
			ID:        string(d.ID),
			Minutes:   d.Minutes,
			BasePrice: d.BasePrice,
			IsDefault: d.IsDefault,
			Note:      d.Note,
		})
	}
	return out, nil
}

func (c *Catalog) FetchSlots(ctx context.Context, venueID, date string, durationMinutes int) ([]venue.Slot, error) {
	query := url.Values{}
	query.Set("date", date)
	query.Set("duration_minutes", strconv.Itoa(durationMinutes))

	var payload struct {
		Slots *[]slotDTO `json:"slots"`
	}
	if err := c.client.getJSON(ctx, "/venues/"+url.PathEscape(venueID)+"/slots", query, &payload); err != nil {
		return nil, err
	}
	if payload.Slots == nil {
		return nil, infra.WrapErr(c.client.logger, infra.KindDecode, "slots payload has no slots", nil)
	}

	out := make([]venue.Slot, 0, len(*payload.Slots))
	for _, s := range *payload.Slots {
		out = append(out, venue.Slot{StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return out, nil
}
