package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-allotment/backend/foundation/web"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", Result(nil))
	assert.Equal(t, "409", Result(web.NewRequestError(errors.New("redundant"), http.StatusConflict)))
	assert.Equal(t, "500", Result(errors.New("boom")))
}

func TestHandler(t *testing.T) {
	before := testutil.ToFloat64(Logins.WithLabelValues("ok"))
	Logins.WithLabelValues("ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Logins.WithLabelValues("ok")))

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `auth_logins_total{result="ok"}`)
}
