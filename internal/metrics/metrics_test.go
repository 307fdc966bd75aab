package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/", "/"},
		{"/api/products", "/api/products"},
		{"/api/products/6f1c2d3e-4b5a-4c6d-8e7f-0a1b2c3d4e5f", "/api/products/{id}"},
		{"/api/products/42", "/api/products/{id}"},
		{"/reset-password/abcDEF_-123", "/reset-password/{token}"},
		{"/pages/envios", "/pages/envios"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePath(tt.in), tt.in)
	}
}

func TestRecordAuth(t *testing.T) {
	before := testutil.ToFloat64(AuthEvents.WithLabelValues("login", OutcomeFailure))
	RecordAuth("login", OutcomeFailure)
	RecordAuth("login", OutcomeFailure)
	after := testutil.ToFloat64(AuthEvents.WithLabelValues("login", OutcomeFailure))
	assert.Equal(t, before+2, after)
}

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/api/products/{id}", "404"))
	RecordRequest("GET", "/api/products/7", 404, 0.01)
	after := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/api/products/{id}", "404"))
	assert.Equal(t, before+1, after)
}
