//go:build unit || e2e

package builder

import (
	"academy-booking/internal/domain/client"
	"academy-booking/internal/handler/dto/request"
)

type GuestBuilder struct {
	FirstName string
	LastName  string
	Phone     string
}

func NewGuestBuilder() *GuestBuilder {
	return &GuestBuilder{
		FirstName: "Lina",
		LastName:  "Haddad",
		Phone:     "+962791234567",
	}
}

func (g *GuestBuilder) With(mutate func(*GuestBuilder)) *GuestBuilder {
	mutate(g)
	return g
}

func (g *GuestBuilder) BuildDomain() client.GuestProfile {
	return client.GuestProfile{
		FirstName: g.FirstName,
		LastName:  g.LastName,
		Phone:     g.Phone,
	}
}

func (g *GuestBuilder) BuildDTO() request.GuestCheckoutRequest {
	return request.GuestCheckoutRequest{
		FirstName: g.FirstName,
		LastName:  g.LastName,
		Phone:     g.Phone,
	}
}
