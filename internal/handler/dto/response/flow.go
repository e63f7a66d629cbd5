package response

import (
	"time"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/venue"
	"academy-booking/internal/usecase/flow"
	"academy-booking/internal/usecase/resolver"
	"academy-booking/internal/usecase/shared"
)

type VenueResponse struct {
	ID               string   `json:"id"`
	AcademyProfileID string   `json:"academy_profile_id"`
	Name             string   `json:"name,omitempty"`
	MinPlayers       int      `json:"min_players"`
	MaxPlayers       int      `json:"max_players"`
	PaymentMethods   []string `json:"payment_methods"`
	AllowCashOnDate  bool     `json:"allow_cash_on_date"`
}

type EvidenceResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type SelectionResponse struct {
	DurationID   string            `json:"duration_id,omitempty"`
	BookingDate  string            `json:"booking_date,omitempty"`
	Players      int               `json:"players"`
	SelectedSlot *venue.Slot       `json:"selected_slot,omitempty"`
	PaymentType  string            `json:"payment_type,omitempty"`
	CashOnDate   bool              `json:"cash_on_date"`
	CliqEvidence *EvidenceResponse `json:"cliq_evidence,omitempty"`
}

type DurationsResponse struct {
	Status string           `json:"status"`
	Items  []venue.Duration `json:"items"`
	Error  string           `json:"error,omitempty"`
}

type SlotsResponse struct {
	Status     string       `json:"status"`
	Date       string       `json:"date,omitempty"`
	DurationID string       `json:"duration_id,omitempty"`
	Items      []venue.Slot `json:"items"`
	Error      string       `json:"error,omitempty"`
}

type ContinuationResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type OutcomeResponse struct {
	Kind         string                `json:"kind"`
	Reason       string                `json:"reason,omitempty"`
	Confirmation *shared.Confirmation  `json:"confirmation,omitempty"`
	Continuation *ContinuationResponse `json:"continuation,omitempty"`
}

type FlowResponse struct {
	ID         string            `json:"id"`
	Mode       string            `json:"mode"`
	Step       string            `json:"step"`
	StepIndex  int               `json:"step_index"`
	Venue      VenueResponse     `json:"venue"`
	Selection  SelectionResponse `json:"selection"`
	Durations  DurationsResponse `json:"durations"`
	Slots      SlotsResponse     `json:"slots"`
	Gates      booking.Gates     `json:"gates"`
	Identity   string            `json:"identity"`
	Submitting bool              `json:"submitting"`
	Completed  bool              `json:"completed"`
	Outcome    *OutcomeResponse  `json:"outcome,omitempty"`
}

func FromSnapshot(s flow.Snapshot) *FlowResponse {
	return &FlowResponse{
		ID:         s.ID.String(),
		Mode:       s.Mode.String(),
		Step:       s.Step.String(),
		StepIndex:  int(s.Step),
		Venue:      fromVenue(s.Venue),
		Selection:  fromSelection(s.Selection),
		Durations:  fromDurations(s.Durations),
		Slots:      fromSlots(s.Slots),
		Gates:      s.Gates,
		Identity:   s.Identity.String(),
		Submitting: s.Submitting,
		Completed:  s.Completed,
		Outcome:    FromOutcome(s.Outcome),
	}
}

func FromOutcome(o *flow.Outcome) *OutcomeResponse {
	if o == nil {
		return nil
	}
	out := &OutcomeResponse{
		Kind:         string(o.Kind),
		Reason:       o.Reason,
		Confirmation: o.Confirmation,
	}
	if o.Continuation != nil {
		out.Continuation = &ContinuationResponse{
			Token:     o.Continuation.Token,
			ExpiresAt: o.Continuation.ExpiresAt,
		}
	}
	return out
}

func fromVenue(v *venue.Venue) VenueResponse {
	methods := make([]string, 0, 2)
	for _, m := range v.AllowedMethods() {
		methods = append(methods, m.String())
	}
	return VenueResponse{
		ID:               v.ID(),
		AcademyProfileID: v.AcademyProfileID(),
		Name:             v.Name(),
		MinPlayers:       v.MinPlayers(),
		MaxPlayers:       v.MaxPlayers(),
		PaymentMethods:   methods,
		AllowCashOnDate:  v.AllowsCashOnDate(),
	}
}

func fromSelection(s booking.Selection) SelectionResponse {
	out := SelectionResponse{
		DurationID:   s.DurationID,
		BookingDate:  s.BookingDate,
		Players:      s.Players,
		SelectedSlot: s.SelectedSlot,
		PaymentType:  s.PaymentType.String(),
		CashOnDate:   s.CashOnDate,
	}
	if ev := s.CliqEvidence; ev != nil {
		out.CliqEvidence = &EvidenceResponse{
			Filename:    ev.Filename,
			ContentType: ev.ContentType,
			Size:        len(ev.Data),
		}
	}
	return out
}

func fromDurations(d resolver.DurationsState) DurationsResponse {
	out := DurationsResponse{
		Status: string(d.Status),
		Items:  d.Items,
	}
	if out.Items == nil {
		out.Items = []venue.Duration{}
	}
	if d.Err != nil {
		out.Error = "Could not load durations"
	}
	return out
}

func fromSlots(s resolver.SlotsState) SlotsResponse {
	out := SlotsResponse{
		Status:     string(s.Status),
		Date:       s.Key.Date,
		DurationID: s.Key.DurationID,
		Items:      s.Items,
	}
	if out.Items == nil {
		out.Items = []venue.Slot{}
	}
	if s.Err != nil {
		out.Error = "Could not load slots"
	}
	return out
}
