package middleware

import (
	"errors"
	"net/http"
	"regexp"

	"academy-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const (
	DeviceIDHeader  = "X-Device-ID"
	ctxDeviceIDKey  = "device_id"
	deviceIDPattern = `^[A-Za-z0-9._-]{8,128}$`
)

var (
	deviceIDRegex      = regexp.MustCompile(deviceIDPattern)
	errMissingDeviceID = errors.New("missing or malformed device id")
)

// RequireDevice scopes the request to the calling device. Drafts and cached
// guest clients live in that device's storage namespace.
func RequireDevice() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(DeviceIDHeader)
		if !deviceIDRegex.MatchString(deviceID) {
			httperr.AbortWithCode(c, http.StatusBadRequest, "device_id_required", errMissingDeviceID,
				"X-Device-ID header is required", nil)
			return
		}
		c.Set(ctxDeviceIDKey, deviceID)
		c.Next()
	}
}

func GetDeviceID(c *gin.Context) string {
	if v, exists := c.Get(ctxDeviceIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
