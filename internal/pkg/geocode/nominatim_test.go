package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name": "Jl. Sudirman No.1, Jakarta Pusat, Indonesia"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-agent")
	address, err := c.ReverseGeocode(context.Background(), -6.2088, 106.8456)
	require.NoError(t, err)
	assert.Equal(t, "Jl. Sudirman No.1, Jakarta Pusat, Indonesia", address)
}

func TestReverseGeocode_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-agent")
	_, err := c.ReverseGeocode(context.Background(), -6.2088, 106.8456)
	assert.Error(t, err)
}

func TestReverseGeocode_EmptyDisplayName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"display_name": ""}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-agent")
	_, err := c.ReverseGeocode(context.Background(), -6.2088, 106.8456)
	assert.Error(t, err)
}

func TestFallbackAddress(t *testing.T) {
	assert.Equal(t, "Lat: -6.208800, Long: 106.845600", FallbackAddress(-6.2088, 106.8456))
}
