//go:build unit

package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"academy-booking/internal/domain/venue"
	"academy-booking/internal/handler"
	"academy-booking/internal/handler/api"
	resdto "academy-booking/internal/handler/dto/response"
	"academy-booking/internal/handler/middleware"
	"academy-booking/internal/infra"
	"academy-booking/internal/infra/continuation"
	"academy-booking/internal/infra/kvstore"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/config"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/pkg/jwt"
	"academy-booking/internal/usecase"
	"academy-booking/internal/usecase/flow"
	"academy-booking/internal/usecase/identity"
	"academy-booking/internal/usecase/shared"
	"academy-booking/tests/common/authtest"
	"academy-booking/tests/common/builder"
	"academy-booking/tests/common/httptest"
	sharedmock "academy-booking/tests/mock/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	deviceID    = "device-0001"
	otherDevice = "device-0002"
	bookingDate = "2026-10-20"
)

type FlowHandlerTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockCatalog   *sharedmock.MockCatalogGateway
	mockRegistrar *sharedmock.MockRegistrationGateway
	mockBookings  *sharedmock.MockBookingGateway
	manager       *flow.Manager
	router        *gin.Engine
	jwtHelper     *authtest.JWTHelper
	venue         *venue.Venue
}

func TestFlowHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(FlowHandlerTestSuite))
}

func (s *FlowHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *FlowHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCatalog = sharedmock.NewMockCatalogGateway(s.mockCtrl)
	s.mockRegistrar = sharedmock.NewMockRegistrationGateway(s.mockCtrl)
	s.mockBookings = sharedmock.NewMockBookingGateway(s.mockCtrl)
	s.venue = builder.NewVenueBuilder().MustBuild(s.T())

	cfg := config.NewTestConfig()
	clk := clock.NewMockClock(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer := continuation.NewIssuer(cfg.JWT.ResumeSigningKey(), cfg.JWT.ResumeTokenTTL, clk)

	s.manager = flow.NewManager(s.mockCatalog, s.mockRegistrar, s.mockBookings, kvstore.NewMemory(),
		issuer, issuer, clk, logger, flow.ManagerConfig{
			DefaultMode: identity.ModeGuestCheckout,
			IdleTTL:     cfg.Flow.IdleTTL,
		})

	validator := usecase.NewTokenValidator(jwt.NewService(cfg.JWT.Secret, cfg.JWT.SessionTokenTTL))
	s.router = gin.New()
	handler.NewRouter(s.router, cfg, api.NewFlowHandler(s.manager), middleware.NewAuthMiddleware(validator))
	s.jwtHelper = authtest.NewJWTHelper(cfg.JWT)
}

func (s *FlowHandlerTestSuite) TearDownTest() {
	s.manager.CloseAll(context.Background())
	s.mockCtrl.Finish()
}

func (s *FlowHandlerTestSuite) serveCatalog() {
	s.mockCatalog.EXPECT().FetchVenue(gomock.Any(), s.venue.ID()).Return(s.venue, nil).AnyTimes()
	s.mockCatalog.EXPECT().FetchDurations(gomock.Any(), s.venue.ID()).Return(builder.Durations(), nil).AnyTimes()
	s.mockCatalog.EXPECT().FetchSlots(gomock.Any(), s.venue.ID(), gomock.Any(), gomock.Any()).Return(builder.Slots(), nil).AnyTimes()
}

func headers(device, token string) map[string]string {
	h := map[string]string{}
	if device != "" {
		h[middleware.DeviceIDHeader] = device
	}
	if token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

func (s *FlowHandlerTestSuite) do(method, path string, body any, token string) (int, *resdto.FlowResponse) {
	w := httptest.PerformRequestWithHeaders(s.T(), s.router, method, path, body, headers(deviceID, token))
	if w.Code >= 300 {
		return w.Code, nil
	}
	var resp resdto.FlowResponse
	httptest.AssertSuccessResponse(s.T(), w, w.Code, &resp)
	return w.Code, &resp
}

func (s *FlowHandlerTestSuite) create(mode string) *resdto.FlowResponse {
	body := map[string]string{"venue_id": s.venue.ID()}
	if mode != "" {
		body["mode"] = mode
	}
	w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/flows", body, headers(deviceID, ""))

	var resp resdto.FlowResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
	s.awaitLoaded(resp.ID, func(r *resdto.FlowResponse) bool { return r.Durations.Status != "loading" })
	return &resp
}

func (s *FlowHandlerTestSuite) awaitLoaded(id string, cond func(*resdto.FlowResponse) bool) *resdto.FlowResponse {
	var last *resdto.FlowResponse
	s.Require().Eventually(func() bool {
		_, last = s.do(http.MethodGet, "/api/flows/"+id, nil, "")
		return last != nil && cond(last)
	}, 2*time.Second, 5*time.Millisecond)
	return last
}

func (s *FlowHandlerTestSuite) toReview(id string) {
	path := "/api/flows/" + id
	status, _ := s.do(http.MethodPut, path+"/date", map[string]string{"date": bookingDate}, "")
	s.Require().Equal(http.StatusOK, status)
	s.awaitLoaded(id, func(r *resdto.FlowResponse) bool {
		return r.Slots.Status == "loaded" && r.Slots.Date == bookingDate
	})

	slot := builder.Slots()[0]
	status, _ = s.do(http.MethodPut, path+"/slot", map[string]string{"start_time": slot.StartTime, "end_time": slot.EndTime}, "")
	s.Require().Equal(http.StatusOK, status)

	var resp *resdto.FlowResponse
	for i := 0; i < 3; i++ {
		status, resp = s.do(http.MethodPost, path+"/next", nil, "")
		s.Require().Equal(http.StatusOK, status)
	}
	s.Require().Equal("review", resp.Step)
}

func (s *FlowHandlerTestSuite) TestCreateFlow() {
	s.Run("success", func() {
		s.serveCatalog()
		resp := s.create("")

		s.Equal("schedule", resp.Step)
		s.Equal("guest_checkout", resp.Mode)
		s.Equal(s.venue.ID(), resp.Venue.ID)
		s.Equal([]string{"cash", "cliq"}, resp.Venue.PaymentMethods)

		got := s.awaitLoaded(resp.ID, func(r *resdto.FlowResponse) bool { return r.Durations.Status == "loaded" })
		s.Equal("d60", got.Selection.DurationID)
		s.Len(got.Durations.Items, 2)
	})

	s.Run("error: missing device header", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/flows",
			map[string]string{"venue_id": s.venue.ID()}, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "X-Device-ID header is required")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "device_id_required")
	})

	s.Run("error: malformed device header", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/flows",
			map[string]string{"venue_id": s.venue.ID()}, headers("a:b", ""))
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "X-Device-ID header is required")
	})

	s.Run("error: validation", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/flows",
			map[string]string{"mode": "everyone"}, headers(deviceID, ""))
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "bad_request")
	})

	s.Run("error: venue unavailable", func() {
		s.mockCatalog.EXPECT().FetchVenue(gomock.Any(), "missing").
			Return(nil, infra.InfraError{Kind: infra.KindStatus, Status: http.StatusNotFound})

		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/flows",
			map[string]string{"venue_id": "missing"}, headers(deviceID, ""))
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadGateway, "Venue could not be loaded")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadGateway, "venue_unavailable")
	})
}

func (s *FlowHandlerTestSuite) TestCORSAllowsDeviceHeader() {
	cfg := config.NewTestConfig()
	cfg.CORS.AllowHeaders = []string{"Content-Type"}
	validator := usecase.NewTokenValidator(jwt.NewService(cfg.JWT.Secret, cfg.JWT.SessionTokenTTL))
	router := gin.New()
	handler.NewRouter(router, cfg, api.NewFlowHandler(s.manager), middleware.NewAuthMiddleware(validator))

	w := httptest.PerformRequestWithHeaders(s.T(), router, http.MethodOptions, "/api/flows", nil, map[string]string{
		"Origin":                         "http://localhost:3000",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "Content-Type, X-Device-ID",
	})
	httptest.AssertHeaders(s.T(), w, map[string]string{"Access-Control-Allow-Origin": "http://localhost:3000"})
	httptest.AssertHeaderLists(s.T(), w, "Access-Control-Allow-Headers", middleware.DeviceIDHeader)
}

func (s *FlowHandlerTestSuite) TestFlowOwnership() {
	s.serveCatalog()
	resp := s.create("")

	s.Run("other device sees not found", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/flows/"+resp.ID, nil, headers(otherDevice, ""))
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking flow not found")
		httptest.AssertErrorCode(s.T(), w, http.StatusNotFound, "flow_not_found")
	})

	s.Run("invalid flow id", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/flows/not-a-uuid", nil, headers(deviceID, ""))
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid flow ID format")
	})

	s.Run("delete then get", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodDelete, "/api/flows/"+resp.ID+"?discard=true", nil, headers(deviceID, ""))
		s.Equal(http.StatusNoContent, w.Code)

		w = httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/flows/"+resp.ID, nil, headers(deviceID, ""))
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking flow not found")
	})
}

func (s *FlowHandlerTestSuite) TestStepRules() {
	s.serveCatalog()
	resp := s.create("")
	path := "/api/flows/" + resp.ID

	s.Run("next is blocked without a schedule", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, path+"/next", nil, headers(deviceID, ""))
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Step requirements are not met")
		httptest.AssertErrorCode(s.T(), w, http.StatusConflict, "step_blocked")
	})

	s.Run("slot outside the loaded list", func() {
		status, _ := s.do(http.MethodPut, path+"/date", map[string]string{"date": bookingDate}, "")
		s.Require().Equal(http.StatusOK, status)
		s.awaitLoaded(resp.ID, func(r *resdto.FlowResponse) bool { return r.Slots.Status == "loaded" })

		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, path+"/slot",
			map[string]string{"start_time": "06:00", "end_time": "07:00"}, headers(deviceID, ""))
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "Slot is not available")
		httptest.AssertErrorCode(s.T(), w, http.StatusUnprocessableEntity, "slot_unavailable")
	})

	s.Run("players outside the venue range", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, path+"/players",
			map[string]int{"players": 9}, headers(deviceID, ""))
		s.Equal(http.StatusOK, w.Code, "the players gate blocks advancing, not editing")

		var got resdto.FlowResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.False(got.Gates.Players)
	})

	s.Run("invalid retry resource", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, path+"/retry",
			map[string]string{"resource": "venues"}, headers(deviceID, ""))
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *FlowHandlerTestSuite) TestSubmitRegisteredClient() {
	s.serveCatalog()
	resp := s.create("")
	s.toReview(resp.ID)

	s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req shared.BookingRequest) (*shared.Confirmation, error) {
			s.Equal("42", req.UserID)
			s.Equal("cash", req.PaymentType)
			return &shared.Confirmation{BookingID: "9001", Status: "pending"}, nil
		})

	token := s.jwtHelper.GenerateToken(s.T(), "42")
	status, got := s.do(http.MethodPost, "/api/flows/"+resp.ID+"/submit", nil, token)
	s.Require().Equal(http.StatusOK, status)
	s.True(got.Completed)
	s.Require().NotNil(got.Outcome)
	s.Equal("confirmed", got.Outcome.Kind)
	s.Equal("9001", got.Outcome.Confirmation.BookingID)
	s.Equal("resolved", got.Identity)
}

func (s *FlowHandlerTestSuite) TestGuestCheckout() {
	s.serveCatalog()
	resp := s.create("")
	s.toReview(resp.ID)
	path := "/api/flows/" + resp.ID

	status, got := s.do(http.MethodPost, path+"/submit", nil, s.jwtHelper.CreateExpiredToken(s.T(), "42"))
	s.Require().Equal(http.StatusOK, status)
	s.Require().NotNil(got.Outcome)
	s.Equal("guest_details_required", got.Outcome.Kind, "an expired session counts as anonymous")

	s.Run("invalid phone", func() {
		body := builder.NewGuestBuilder().With(func(g *builder.GuestBuilder) { g.Phone = "12" }).BuildDTO()
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, path+"/guest", body, headers(deviceID, ""))
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "Phone number is invalid")
	})

	s.Run("success", func() {
		s.mockRegistrar.EXPECT().QuickRegister(gomock.Any(), builder.NewGuestBuilder().BuildDomain()).Return("501", nil)
		s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req shared.BookingRequest) (*shared.Confirmation, error) {
				s.Equal("501", req.UserID)
				return &shared.Confirmation{BookingID: "9002"}, nil
			})

		status, got := s.do(http.MethodPost, path+"/guest", builder.NewGuestBuilder().BuildDTO(), "")
		s.Require().Equal(http.StatusOK, status)
		s.Equal("confirmed", got.Outcome.Kind)
		s.True(got.Completed)
	})
}

func (s *FlowHandlerTestSuite) TestSubmitRejected() {
	s.serveCatalog()
	resp := s.create("")
	s.toReview(resp.ID)

	s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
		Return(nil, infra.InfraError{Kind: infra.KindRejected, Status: http.StatusConflict})

	token := s.jwtHelper.GenerateToken(s.T(), "42")
	w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/flows/"+resp.ID+"/submit", nil, headers(deviceID, token))
	httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "Booking was rejected by the academy")
	httptest.AssertErrorCode(s.T(), w, http.StatusUnprocessableEntity, "booking_rejected")

	_, got := s.do(http.MethodGet, "/api/flows/"+resp.ID, nil, token)
	s.Require().NotNil(got)
	s.Equal("review", got.Step, "the selection survives a failed submit")
	s.False(got.Completed)
}

func (s *FlowHandlerTestSuite) TestAuthRequiredResume() {
	s.serveCatalog()
	resp := s.create("auth_required")
	s.toReview(resp.ID)

	status, got := s.do(http.MethodPost, "/api/flows/"+resp.ID+"/submit", nil, "")
	s.Require().Equal(http.StatusOK, status)
	s.Require().NotNil(got.Outcome)
	s.Equal("auth_required", got.Outcome.Kind)
	s.Require().NotNil(got.Outcome.Continuation)

	s.Run("error: garbage token", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/flows/resume",
			map[string]string{"token": "garbage"}, headers(deviceID, ""))
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid or expired resume token")
	})

	s.Run("error: other device", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/flows/resume",
			map[string]string{"token": got.Outcome.Continuation.Token}, headers(otherDevice, ""))
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid or expired resume token")
	})

	s.Run("success", func() {
		token := s.jwtHelper.GenerateToken(s.T(), "42")
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/flows/resume",
			map[string]string{"token": got.Outcome.Continuation.Token}, headers(deviceID, token))

		var resumed resdto.FlowResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resumed)
		s.NotEqual(resp.ID, resumed.ID)
		s.Equal(bookingDate, resumed.Selection.BookingDate)
		s.Equal("resolved", resumed.Identity)
	})
}

func (s *FlowHandlerTestSuite) TestEvidenceUpload() {
	s.serveCatalog()
	resp := s.create("")
	path := "/api/flows/" + resp.ID
	evidence := builder.Evidence()

	status, _ := s.do(http.MethodPut, path+"/payment", map[string]string{"payment_type": "cliq"}, "")
	s.Require().Equal(http.StatusOK, status)

	s.Run("error: missing file", func() {
		w := httptest.PerformMultipart(s.T(), s.router, http.MethodPut, path+"/evidence", "other", evidence.Filename,
			evidence.ContentType, evidence.Data, headers(deviceID, ""))
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Evidence file is required")
	})

	s.Run("success", func() {
		w := httptest.PerformMultipart(s.T(), s.router, http.MethodPut, path+"/evidence", "file", evidence.Filename,
			evidence.ContentType, evidence.Data, headers(deviceID, ""))

		var got resdto.FlowResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Equal("cliq", got.Selection.PaymentType)
		s.Require().NotNil(got.Selection.CliqEvidence)
		s.Equal(len(evidence.Data), got.Selection.CliqEvidence.Size)
		s.True(got.Gates.Payment)
	})

	s.Run("remove", func() {
		status, got := s.do(http.MethodDelete, path+"/evidence", nil, "")
		s.Require().Equal(http.StatusOK, status)
		s.Nil(got.Selection.CliqEvidence)
		s.False(got.Gates.Payment)
	})
}

func (s *FlowHandlerTestSuite) TestRetry() {
	gomock.InOrder(
		s.mockCatalog.EXPECT().FetchVenue(gomock.Any(), s.venue.ID()).Return(s.venue, nil),
		s.mockCatalog.EXPECT().FetchDurations(gomock.Any(), s.venue.ID()).Return(nil, errs.New("timeout")),
		s.mockCatalog.EXPECT().FetchDurations(gomock.Any(), s.venue.ID()).Return(builder.Durations(), nil),
	)

	resp := s.create("")
	got := s.awaitLoaded(resp.ID, func(r *resdto.FlowResponse) bool { return r.Durations.Status == "failed" })
	s.Equal("Could not load durations", got.Durations.Error)

	status, _ := s.do(http.MethodPost, "/api/flows/"+resp.ID+"/retry", map[string]string{"resource": "durations"}, "")
	s.Require().Equal(http.StatusOK, status)

	got = s.awaitLoaded(resp.ID, func(r *resdto.FlowResponse) bool { return r.Durations.Status == "loaded" })
	s.Equal("d60", got.Selection.DurationID)
}
