package backend

import (
	"context"
	"encoding/json"
	"strconv"

	"academy-booking/internal/domain/client"
	"academy-booking/internal/infra"
	"academy-booking/internal/usecase/shared"
)

type quickRegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type quickRegisterResponse struct {
	errorEnvelope
	User *struct {
		ID flexibleID `json:"id"`
	} `json:"user"`
}

type Registration struct {
	client *Client
}

func NewRegistration(client *Client) *Registration {
	return &Registration{client: client}
}

// QuickRegister creates a guest account. A refusal carrying an error message
// is returned as a KindRejected error wrapping *shared.RegistrationRejection.
func (r *Registration) QuickRegister(ctx context.Context, profile client.GuestProfile) (string, error) {
	status, body, err := r.client.postJSON(ctx, "/auth/quick-register", quickRegisterRequest{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Phone:     profile.Phone,
	})
	if err != nil {
		return "", err
	}

	var resp quickRegisterResponse
	decodeErr := json.Unmarshal(body, &resp)

	if msg := resp.text(); decodeErr == nil && msg != "" {
		rej := &shared.RegistrationRejection{Code: resp.Code, Message: msg}
		return "", infra.StatusErr(r.client.logger, infra.KindRejected, status, "quick registration rejected", rej)
	}
	if !isSuccess(status) {
		return "", infra.StatusErr(r.client.logger, infra.KindStatus, status, "quick registration returned "+strconv.Itoa(status), nil)
	}
	if decodeErr != nil {
		return "", infra.WrapErr(r.client.logger, infra.KindDecode, "failed to decode quick registration response", decodeErr)
	}
	if resp.User == nil || resp.User.ID == "" {
		return "", infra.WrapErr(r.client.logger, infra.KindDecode, "quick registration response has no user id", nil)
	}
	return string(resp.User.ID), nil
}
