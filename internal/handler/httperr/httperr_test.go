//go:build unit

package httperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"academy-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := map[int]string{
		http.StatusBadRequest:            "bad_request",
		http.StatusBadGateway:            "bad_gateway",
		http.StatusRequestEntityTooLarge: "request_entity_too_large",
		http.StatusTeapot:                "im_a_teapot",
		799:                              "error",
	}
	for status, want := range tests {
		assert.Equal(t, want, httperr.StatusCode(status), "status %d", status)
	}
}

func TestAbortWithCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	cause := errors.New("slot taken")

	httperr.AbortWithCode(c, http.StatusUnprocessableEntity, "slot_unavailable", cause, "Slot is not available", map[string]string{"step": "schedule"})

	assert.True(t, c.IsAborted())
	require.Len(t, c.Errors, 1)
	assert.ErrorIs(t, c.Errors[0].Err, cause)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		Detail map[string]string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "slot_unavailable", body.Error.Code)
	assert.Equal(t, "Slot is not available", body.Error.Message)
	assert.Equal(t, "schedule", body.Detail["step"])

	assert.Panics(t, func() { httperr.AbortWithCode(c, http.StatusBadRequest, "x", nil, "", nil) })
}
