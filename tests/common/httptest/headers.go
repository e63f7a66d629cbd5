//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertHeaderLists checks that a comma separated header such as
// Access-Control-Allow-Headers names want, ignoring case.
func AssertHeaderLists(t *testing.T, w *httptest.ResponseRecorder, header, want string) {
	t.Helper()
	got := w.Header().Get(header)
	for _, v := range strings.Split(got, ",") {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return
		}
	}
	assert.Failf(t, "header value missing", "%s %q does not list %s", header, got, want)
}
