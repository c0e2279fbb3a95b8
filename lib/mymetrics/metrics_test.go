package mymetrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	RegisterDefault()
	RegisterDefault()

	CheckoutOutcomes.WithLabelValues("wallet", "create", "success").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(CheckoutOutcomes.WithLabelValues("wallet", "create", "success")))

	request, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	response := httptest.NewRecorder()
	Handler().ServeHTTP(response, request)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `checkout_outcomes_total{flow="wallet",outcome="success",step="create"} 1`)
}
