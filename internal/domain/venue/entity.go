package venue

import (
	"errors"
	"strings"
)

var (
	ErrEmptyVenueID       = errors.New("venue id cannot be empty")
	ErrInvalidPlayerRange = errors.New("player range is invalid")
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCliq PaymentMethod = "cliq"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCliq:
		return true
	default:
		return false
	}
}

// PaymentOptions are the academy-level payment capabilities of a venue.
type PaymentOptions struct {
	AllowCash       bool
	AllowCliq       bool
	AllowCashOnDate bool
}

// Venue is the read-only bookable resource a flow is opened for.
type Venue struct {
	id               string
	academyProfileID string
	activityID       string
	name             string
	minPlayers       int
	maxPlayers       int
	payment          PaymentOptions
}

func NewVenue(id, academyProfileID, activityID, name string, minPlayers, maxPlayers int, payment PaymentOptions) (*Venue, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyVenueID
	}
	if minPlayers < 1 || maxPlayers < minPlayers {
		return nil, ErrInvalidPlayerRange
	}

	return &Venue{
		id:               id,
		academyProfileID: strings.TrimSpace(academyProfileID),
		activityID:       strings.TrimSpace(activityID),
		name:             strings.TrimSpace(name),
		minPlayers:       minPlayers,
		maxPlayers:       maxPlayers,
		payment:          payment,
	}, nil
}

// AllowedMethods lists the enabled payment methods, cash first.
func (v *Venue) AllowedMethods() []PaymentMethod {
	methods := make([]PaymentMethod, 0, 2)
	if v.payment.AllowCash {
		methods = append(methods, PaymentCash)
	}
	if v.payment.AllowCliq {
		methods = append(methods, PaymentCliq)
	}
	return methods
}

func (v *Venue) Allows(m PaymentMethod) bool {
	switch m {
	case PaymentCash:
		return v.payment.AllowCash
	case PaymentCliq:
		return v.payment.AllowCliq
	default:
		return false
	}
}

func (v *Venue) AllowsPlayers(n int) bool {
	return n >= v.minPlayers && n <= v.maxPlayers
}

func (v *Venue) ID() string               { return v.id }
func (v *Venue) AcademyProfileID() string { return v.academyProfileID }
func (v *Venue) ActivityID() string       { return v.activityID }
func (v *Venue) Name() string             { return v.name }
func (v *Venue) MinPlayers() int          { return v.minPlayers }
func (v *Venue) MaxPlayers() int          { return v.maxPlayers }
func (v *Venue) Payment() PaymentOptions  { return v.payment }
func (v *Venue) AllowsCashOnDate() bool   { return v.payment.AllowCash && v.payment.AllowCashOnDate }
