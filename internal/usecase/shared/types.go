package shared

import (
	"errors"
	"time"

	"academy-booking/internal/domain/booking"
)

var ErrKeyNotFound = errors.New("key not found")

// BookingRequest carries every field of the multipart create call.
type BookingRequest struct {
	AcademyProfileID  string
	UserID            string
	ActivityID        string
	VenueID           string
	DurationID        string
	BookingDate       string
	StartTime         string
	NumberOfPlayers   int
	PaymentType       string
	CashPaymentOnDate bool
	CliqImage         *booking.Attachment
}

type Confirmation struct {
	BookingID   string   `json:"booking_id"`
	Status      string   `json:"status,omitempty"`
	BookingDate string   `json:"booking_date,omitempty"`
	StartTime   string   `json:"start_time,omitempty"`
	EndTime     string   `json:"end_time,omitempty"`
	TotalPrice  *float64 `json:"total_price,omitempty"`
}

type Continuation struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Draft     booking.Draft `json:"-"`
}

// RegistrationRejection is a quick-registration refusal reported by the backend.
type RegistrationRejection struct {
	Code    string
	Message string
}

func (e *RegistrationRejection) Error() string {
	if e.Code != "" {
		return "registration rejected (" + e.Code + "): " + e.Message
	}
	return "registration rejected: " + e.Message
}
