package booking

import (
	"errors"
	"strings"
	"time"

	"academy-booking/internal/domain/venue"

	"github.com/jinzhu/copier"
)

const (
	BookingDateLayout = "2006-01-02"
	MaxEvidenceBytes  = 5 << 20
)

var (
	ErrInvalidBookingDate = errors.New("booking date must be YYYY-MM-DD")
	ErrEmptyEvidence      = errors.New("evidence attachment is empty")
	ErrEvidenceTooLarge   = errors.New("evidence attachment is too large")
)

// Attachment is an opaque binary payload (CliQ transfer evidence).
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

func NewAttachment(filename, contentType string, data []byte) (*Attachment, error) {
	if len(data) == 0 {
		return nil, ErrEmptyEvidence
	}
	if len(data) > MaxEvidenceBytes {
		return nil, ErrEvidenceTooLarge
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Attachment{
		Filename:    strings.TrimSpace(filename),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Selection is the mutable in-progress state of one booking flow.
type Selection struct {
	DurationID       string              `json:"duration_id,omitempty"`
	BookingDate      string              `json:"booking_date,omitempty"`
	Players          int                 `json:"players"`
	SelectedSlot     *venue.Slot         `json:"selected_slot,omitempty"`
	PaymentType      venue.PaymentMethod `json:"payment_type,omitempty"`
	CashOnDate       bool                `json:"cash_on_date"`
	CliqEvidence     *Attachment         `json:"cliq_evidence,omitempty"`
	CurrentStepIndex Step                `json:"current_step_index"`
}

// NewSelection starts at the schedule step with the venue's minimum player count
// and the first allowed payment method.
func NewSelection(v *venue.Venue) Selection {
	s := Selection{
		Players:          v.MinPlayers(),
		CurrentStepIndex: StepSchedule,
	}
	s.CoercePayment(v)
	return s
}

func (s Selection) Key() venue.SlotKey {
	return venue.SlotKey{Date: s.BookingDate, DurationID: s.DurationID}
}

func (s Selection) HasSlot() bool {
	return s.SelectedSlot != nil && !s.SelectedSlot.IsZero()
}

func (s Selection) HasEvidence() bool {
	return s.CliqEvidence != nil && len(s.CliqEvidence.Data) > 0
}

// CoercePayment keeps the payment fields consistent with what the venue allows.
// It reports whether anything changed.
func (s *Selection) CoercePayment(v *venue.Venue) bool {
	changed := false

	if !v.Allows(s.PaymentType) {
		next := venue.PaymentMethod("")
		if allowed := v.AllowedMethods(); len(allowed) > 0 {
			next = allowed[0]
		}
		if next != s.PaymentType {
			s.PaymentType = next
			changed = true
		}
	}

	if s.CashOnDate && (s.PaymentType != venue.PaymentCash || !v.AllowsCashOnDate()) {
		s.CashOnDate = false
		changed = true
	}

	if s.CliqEvidence != nil && s.PaymentType != venue.PaymentCliq {
		s.CliqEvidence = nil
		changed = true
	}

	return changed
}

// Clone returns a deep copy so snapshots never alias the live selection.
func (s Selection) Clone() Selection {
	var out Selection
	if err := copier.CopyWithOption(&out, &s, copier.Option{DeepCopy: true}); err != nil {
		out = s
		if s.SelectedSlot != nil {
			slot := *s.SelectedSlot
			out.SelectedSlot = &slot
		}
		if s.CliqEvidence != nil {
			ev := *s.CliqEvidence
			ev.Data = append([]byte(nil), s.CliqEvidence.Data...)
			out.CliqEvidence = &ev
		}
	}
	return out
}

// ParseBookingDate normalises an ISO calendar date.
func ParseBookingDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	t, err := time.Parse(BookingDateLayout, value)
	if err != nil {
		return "", ErrInvalidBookingDate
	}
	return t.Format(BookingDateLayout), nil
}
