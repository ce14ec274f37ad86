// AngelaMos | 2026
// metrics_test.go

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordImportCountsOutcomes(t *testing.T) {
	before := testutil.ToFloat64(importRows.WithLabelValues("created"))

	RecordImport(3, 1, 2)

	assert.Equal(t, before+3, testutil.ToFloat64(importRows.WithLabelValues("created")))
}

func TestRecordMembershipTransition(t *testing.T) {
	before := testutil.ToFloat64(membershipTransitions.WithLabelValues("RESUME"))

	RecordMembershipTransition("RESUME")

	assert.Equal(t, before+1, testutil.ToFloat64(membershipTransitions.WithLabelValues("RESUME")))
}

func TestHandlerExposesNamespace(t *testing.T) {
	RecordHTTPRequest(http.MethodGet, "/v1/members", http.StatusOK, 12*time.Millisecond)
	RecordCacheLookup(true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `dojo_http_requests_total{method="GET",route="/v1/members",status="200"}`)
	assert.Contains(t, string(body), `dojo_dashboard_cache_lookups_total{result="hit"}`)
}
