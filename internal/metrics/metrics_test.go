package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatheredValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metric:
		for _, m := range family.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metric
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			}
		}
	}
	return 0
}

func TestRegisterMetricsIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		RegisterMetrics()
		RegisterMetrics()
	})
}

func TestRecordConnection(t *testing.T) {
	labels := map[string]string{"endpoint": "test-main", "outcome": ConnectionAborted}
	before := gatheredValue(t, "secmsg_directory_connections_total", labels)

	RecordConnection("test-main", ConnectionAborted)
	RecordConnection("test-main", ConnectionAborted)

	assert.Equal(t, before+2, gatheredValue(t, "secmsg_directory_connections_total", labels))
}

func TestRecordRequest(t *testing.T) {
	labels := map[string]string{"endpoint": "test-main", "kind": "login", "outcome": "user"}
	before := gatheredValue(t, "secmsg_directory_requests_total", labels)

	RecordRequest("test-main", "login", "user", 3*time.Millisecond)

	assert.Equal(t, before+1, gatheredValue(t, "secmsg_directory_requests_total", labels))
}

func TestSetDirectorySize(t *testing.T) {
	SetDirectorySize(func() int { return 7 })
	assert.Equal(t, float64(7), gatheredValue(t, "secmsg_directory_users", nil))

	SetDirectorySize(func() int { return 8 })
	assert.Equal(t, float64(8), gatheredValue(t, "secmsg_directory_users", nil))
}

func TestHandlerServesRegistry(t *testing.T) {
	RecordConnection("test-bootstrap", ConnectionHandled)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "secmsg_directory_connections_total")
}
