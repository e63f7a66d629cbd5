package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"academy-booking/internal/infra"
	"academy-booking/internal/usecase/shared"
)

type bookingDTO struct {
	ID          flexibleID `json:"id"`
	Status      string     `json:"status"`
	BookingDate string     `json:"booking_date"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	TotalPrice  *float64   `json:"total_price"`
}

type createBookingResponse struct {
	errorEnvelope
	Booking *bookingDTO `json:"booking"`
}

type Bookings struct {
	client *Client
}

func NewBookings(client *Client) *Bookings {
	return &Bookings{client: client}
}

// CreateBooking sends one multipart create call. Booleans travel as "1"/"0".
func (b *Bookings) CreateBooking(ctx context.Context, req shared.BookingRequest) (*shared.Confirmation, error) {
	body, contentType, err := encodeBooking(req)
	if err != nil {
		return nil, infra.WrapErr(b.client.logger, infra.KindDecode, "failed to encode booking form", err)
	}

	httpReq, err := b.client.newRequest(ctx, http.MethodPost, "/bookings", nil, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", contentType)

	status, raw, err := b.client.do(httpReq)
	if err != nil {
		return nil, err
	}

	var resp createBookingResponse
	decodeErr := json.Unmarshal(raw, &resp)

	if msg := resp.text(); decodeErr == nil && msg != "" {
		return nil, infra.StatusErr(b.client.logger, infra.KindRejected, status, "booking rejected: "+msg, nil)
	}
	if !isSuccess(status) {
		return nil, infra.StatusErr(b.client.logger, infra.KindStatus, status, "create booking returned "+strconv.Itoa(status), nil)
	}
	if decodeErr != nil {
		return nil, infra.WrapErr(b.client.logger, infra.KindDecode, "failed to decode booking response", decodeErr)
	}
	if resp.Booking == nil {
		return nil, infra.WrapErr(b.client.logger, infra.KindDecode, "booking response has no booking", nil)
	}

	return &shared.Confirmation{
		BookingID:   string(resp.Booking.ID),
		Status:      resp.Booking.Status,
		BookingDate: resp.Booking.BookingDate,
		StartTime:   resp.Booking.StartTime,
		EndTime:     resp.Booking.EndTime,
		TotalPrice:  resp.Booking.TotalPrice,
	}, nil
}

func encodeBooking(req shared.BookingRequest) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []struct{ name, value string }{
		{"academy_profile_id", req.AcademyProfileID},
		{"user_id", req.UserID},
		{"activity_id", req.ActivityID},
		{"venue_id", req.VenueID},
		{"duration_id", req.DurationID},
		{"booking_date", req.BookingDate},
		{"start_time", req.StartTime},
		{"number_of_players", strconv.Itoa(req.NumberOfPlayers)},
		{"payment_type", req.PaymentType},
		{"cash_payment_on_date", formBool(req.CashPaymentOnDate)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if img := req.CliqImage; img != nil {
		filename := img.Filename
		if filename == "" {
			filename = "cliq-evidence"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="cliq_image"; filename=%q`, filename))
		h.Set("Content-Type", img.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func formBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
