//go:build e2e

package e2e

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"academy-booking/tests/common/builder"

	"github.com/gin-gonic/gin"
)

const takenPhone = "+962790000000"

// ReceivedBooking is one create-booking form as the backend saw it.
type ReceivedBooking struct {
	Fields   map[string]string
	Image    []byte
	ImageCT  string
	ImageKey string
}

// FakeBackend stands in for the academy API the service talks to.
type FakeBackend struct {
	srv   *httptest.Server
	venue *builder.VenueBuilder

	mu            sync.Mutex
	bookings      []ReceivedBooking
	registrations int
}

func NewFakeBackend(t *testing.T) *FakeBackend {
	b := &FakeBackend{venue: builder.NewVenueBuilder()}

	engine := gin.New()
	engine.GET("/venues/:id", b.getVenue)
	engine.GET("/venues/:id/durations", b.getDurations)
	engine.GET("/venues/:id/slots", b.getSlots)
	engine.POST("/auth/quick-register", b.quickRegister)
	engine.POST("/bookings", b.createBooking)

	b.srv = httptest.NewServer(engine)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *FakeBackend) URL() string {
	return b.srv.URL
}

func (b *FakeBackend) VenueID() string {
	return b.venue.ID
}

func (b *FakeBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bookings = nil
	b.registrations = 0
}

func (b *FakeBackend) Bookings() []ReceivedBooking {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ReceivedBooking(nil), b.bookings...)
}

func (b *FakeBackend) Registrations() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registrations
}

func (b *FakeBackend) getVenue(c *gin.Context) {
	if c.Param("id") != b.venue.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
		return
	}
	c.JSON(http.StatusOK, b.venue.BuildPayload())
}

func (b *FakeBackend) getDurations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"durations": builder.Durations()})
}

func (b *FakeBackend) getSlots(c *gin.Context) {
	if c.Query("date") == "" || c.Query("duration_minutes") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and duration_minutes are required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": builder.Slots()})
}

func (b *FakeBackend) quickRegister(c *gin.Context) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Phone == takenPhone {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Phone already registered", "code": "phone_already_registered"})
		return
	}

	b.mu.Lock()
	b.registrations++
	id := 500 + b.registrations
	b.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"user": gin.H{"id": id}})
}

func (b *FakeBackend) createBooking(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(8 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}

	got := ReceivedBooking{Fields: map[string]string{}}
	for k, v := range c.Request.MultipartForm.Value {
		got.Fields[k] = v[0]
	}
	if file, header, err := c.Request.FormFile("cliq_image"); err == nil {
		got.Image, _ = io.ReadAll(file)
		got.ImageCT = header.Header.Get("Content-Type")
		got.ImageKey = header.Filename
		_ = file.Close()
	}

	b.mu.Lock()
	b.bookings = append(b.bookings, got)
	id := 9000 + len(b.bookings)
	b.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"booking": gin.H{
		"id":           id,
		"status":       "pending",
		"booking_date": got.Fields["booking_date"],
		"start_time":   got.Fields["start_time"],
	}})
}
