package request

import (
	"strings"

	"academy-booking/internal/domain/client"
	"academy-booking/internal/domain/venue"
	"academy-booking/internal/usecase/identity"
)

type CreateFlowRequest struct {
	VenueID string `json:"venue_id" binding:"required"`
	Mode    string `json:"mode,omitempty" binding:"omitempty,oneof=guest_checkout auth_required"`
}

// GetMode returns the requested mode, or "" to use the service default.
func (r CreateFlowRequest) GetMode() identity.Mode {
	return identity.Mode(strings.TrimSpace(r.Mode))
}

type ResumeFlowRequest struct {
	Token string `json:"token" binding:"required"`
	Mode  string `json:"mode,omitempty" binding:"omitempty,oneof=guest_checkout auth_required"`
}

func (r ResumeFlowRequest) GetMode() identity.Mode {
	return identity.Mode(strings.TrimSpace(r.Mode))
}

type SelectDurationRequest struct {
	DurationID string `json:"duration_id" binding:"required"`
}

// SelectDateRequest clears the date when Date is empty.
type SelectDateRequest struct {
	Date string `json:"date"`
}

type SelectSlotRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (r SelectSlotRequest) ToDomain() venue.Slot {
	return venue.Slot{StartTime: r.StartTime, EndTime: r.EndTime}
}

type SetPlayersRequest struct {
	Players *int `json:"players" binding:"required"`
}

// SetPaymentRequest only changes the fields it carries.
type SetPaymentRequest struct {
	PaymentType *string `json:"payment_type,omitempty" binding:"omitempty,oneof=cash cliq"`
	CashOnDate  *bool   `json:"cash_on_date,omitempty"`
}

func (r SetPaymentRequest) GetPaymentType() *venue.PaymentMethod {
	if r.PaymentType == nil {
		return nil
	}
	m := venue.PaymentMethod(*r.PaymentType)
	return &m
}

type RetryRequest struct {
	Resource string `json:"resource" binding:"required,oneof=durations slots"`
}

type GuestCheckoutRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

func (r GuestCheckoutRequest) ToDomain() client.GuestProfile {
	return client.GuestProfile{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
	}.Normalize()
}
