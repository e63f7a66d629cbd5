//go:build unit || e2e

package builder

import (
	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/venue"
)

// SelectionBuilder starts from a selection that passes every gate of the
// default venue with cash payment.
type SelectionBuilder struct {
	DurationID  string
	BookingDate string
	Players     int
	Slot        *venue.Slot
	PaymentType venue.PaymentMethod
	CashOnDate  bool
	Evidence    *booking.Attachment
	Step        booking.Step
}

func NewSelectionBuilder() *SelectionBuilder {
	return &SelectionBuilder{
		DurationID:  "d60",
		BookingDate: "2026-10-20",
		Players:     2,
		Slot:        &venue.Slot{StartTime: "18:00", EndTime: "19:00"},
		PaymentType: venue.PaymentCash,
		Step:        booking.StepReview,
	}
}

func (s *SelectionBuilder) With(mutate func(*SelectionBuilder)) *SelectionBuilder {
	mutate(s)
	return s
}

func (s *SelectionBuilder) WithCliqEvidence() *SelectionBuilder {
	s.PaymentType = venue.PaymentCliq
	s.CashOnDate = false
	s.Evidence = Evidence()
	return s
}

func (s *SelectionBuilder) AtStep(step booking.Step) *SelectionBuilder {
	s.Step = step
	return s
}

func (s *SelectionBuilder) Build() booking.Selection {
	out := booking.Selection{
		DurationID:       s.DurationID,
		BookingDate:      s.BookingDate,
		Players:          s.Players,
		PaymentType:      s.PaymentType,
		CashOnDate:       s.CashOnDate,
		CurrentStepIndex: s.Step,
	}
	if s.Slot != nil {
		slot := *s.Slot
		out.SelectedSlot = &slot
	}
	if s.Evidence != nil {
		ev := *s.Evidence
		ev.Data = append([]byte(nil), s.Evidence.Data...)
		out.CliqEvidence = &ev
	}
	return out
}

func Evidence() *booking.Attachment {
	return &booking.Attachment{
		Filename:    "transfer.png",
		ContentType: "image/png",
		Data:        []byte("\x89PNG\r\n\x1a\nevidence"),
	}
}
