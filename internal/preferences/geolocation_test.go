package preferences

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harborbank/internal/platform/config"
	"harborbank/pkg/platform/circuit"
)

func newGeoClient(url string) *GeoClient {
	return NewGeoClient(config.GeolocationConfig{URL: url, Timeout: time.Second}, nil)
}

func TestGeoClientLocate(t *testing.T) {
	t.Run("maps country to language", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"city":"Lisbon","country_name":"Portugal","country_code":"PT"}`))
		}))
		defer server.Close()

		loc := newGeoClient(server.URL+"/{ip}/json/").Locate(context.Background(), "81.92.200.1")
		require.NotNil(t, loc)
		assert.Equal(t, "/81.92.200.1/json/", gotPath)
		assert.Equal(t, "Lisbon", loc.City)
		assert.Equal(t, "Portugal", loc.Country)
		assert.Equal(t, "pt", loc.SuggestedLanguage)
		assert.Empty(t, loc.Message)
	})

	t.Run("private address resolves the caller", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(`{"city":"Austin","country_name":"United States","country_code":"US"}`))
		}))
		defer server.Close()

		loc := newGeoClient(server.URL+"/{ip}/json/").Locate(context.Background(), "192.168.1.10")
		assert.Equal(t, "/json/", gotPath)
		assert.Equal(t, DefaultLanguage, loc.SuggestedLanguage)
	})

	failures := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"malformed body": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		},
		"provider error": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error":true,"reason":"RateLimited"}`))
		},
	}
	for name, fn := range failures {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(fn)
			defer server.Close()

			loc := newGeoClient(server.URL).Locate(context.Background(), "")
			assert.Equal(t, &Location{Message: locationUnavailable}, loc)
		})
	}

	t.Run("unreachable endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		loc := newGeoClient(url).Locate(context.Background(), "")
		assert.Equal(t, locationUnavailable, loc.Message)
	})

	t.Run("no endpoint configured", func(t *testing.T) {
		assert.Equal(t, locationUnavailable, newGeoClient("").Locate(context.Background(), "").Message)
	})
}

func TestGeoClientCircuitBreaker(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewGeoClient(config.GeolocationConfig{URL: server.URL, Timeout: time.Second}, nil,
		circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))

	for range 4 {
		assert.Equal(t, locationUnavailable, client.Locate(context.Background(), "").Message)
	}
	assert.Equal(t, int32(2), hits.Load(), "open circuit skips the provider")
}

func TestSuggestLanguage(t *testing.T) {
	assert.Equal(t, "es", SuggestLanguage("mx"))
	assert.Equal(t, "de", SuggestLanguage("AT"))
	assert.Equal(t, "fr", SuggestLanguage("FR"))
	assert.Equal(t, DefaultLanguage, SuggestLanguage("JP"))
	assert.Equal(t, DefaultLanguage, SuggestLanguage(""))
}
