package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"harborbank/internal/platform/config"
	"harborbank/pkg/platform/circuit"
)

const (
	locationUnavailable = "unable to detect location"
	maxLocationBody     = 64 * 1024
	defaultLookupTime   = 3 * time.Second
)

// Location is an approximate client location with a language hint.
// Message is set only when the lookup failed.
type Location struct {
	City              string `json:"city,omitempty"`
	Country           string `json:"country,omitempty"`
	CountryCode       string `json:"country_code,omitempty"`
	SuggestedLanguage string `json:"suggested_language,omitempty"`
	Message           string `json:"message,omitempty"`
}

func unknownLocation() *Location {
	return &Location{Message: locationUnavailable}
}

// languageByCountry maps ISO country codes to a supported language.
// Countries not listed fall back to DefaultLanguage.
var languageByCountry = map[string]string{
	"ES": "es", "MX": "es", "AR": "es", "CO": "es", "CL": "es", "PE": "es",
	"FR": "fr", "BE": "fr", "LU": "fr", "MC": "fr",
	"DE": "de", "AT": "de", "CH": "de", "LI": "de",
	"PT": "pt", "BR": "pt", "AO": "pt", "MZ": "pt",
}

func SuggestLanguage(countryCode string) string {
	if lang, ok := languageByCountry[strings.ToUpper(countryCode)]; ok {
		return lang
	}
	return DefaultLanguage
}

type lookupResponse struct {
	City        string `json:"city"`
	CountryName string `json:"country_name"`
	CountryCode string `json:"country_code"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

// GeoClient looks up locations over HTTP. The configured URL may contain
// an {ip} placeholder; private and empty addresses are omitted so the
// provider resolves the caller instead. Repeated failures open a breaker
// and lookups short-circuit until it cools down.
type GeoClient struct {
	url     string
	client  *http.Client
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGeoClient(cfg config.GeolocationConfig, logger *slog.Logger, opts ...circuit.Option) *GeoClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultLookupTime
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GeoClient{
		url:     cfg.URL,
		client:  &http.Client{Timeout: timeout},
		breaker: circuit.New("geolocation", append([]circuit.Option{circuit.WithSuccessThreshold(1)}, opts...)...),
		logger:  logger,
	}
}

func (g *GeoClient) Locate(ctx context.Context, ip string) *Location {
	if g.url == "" {
		return unknownLocation()
	}
	if !g.breaker.Allow() {
		g.logger.DebugContext(ctx, "geolocation: circuit open, skipping lookup")
		return unknownLocation()
	}

	loc, err := g.lookup(ctx, ip)
	if err != nil {
		g.logger.WarnContext(ctx, "geolocation lookup failed", "error", err)
		if _, change := g.breaker.RecordFailure(); change.Opened {
			g.logger.WarnContext(ctx, "geolocation: circuit opened")
		}
		return unknownLocation()
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "geolocation: circuit closed")
	}
	return loc
}

func (g *GeoClient) lookup(ctx context.Context, ip string) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.lookupURL(ip), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxLocationBody)).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if body.Error || body.CountryCode == "" {
		return nil, fmt.Errorf("lookup rejected: %q", body.Reason)
	}

	return &Location{
		City:              body.City,
		Country:           body.CountryName,
		CountryCode:       body.CountryCode,
		SuggestedLanguage: SuggestLanguage(body.CountryCode),
	}, nil
}

func (g *GeoClient) lookupURL(ip string) string {
	if !strings.Contains(g.url, "{ip}") {
		return g.url
	}
	if !isPublicIP(ip) {
		return strings.NewReplacer("{ip}/", "", "{ip}", "").Replace(g.url)
	}
	return strings.ReplaceAll(g.url, "{ip}", ip)
}

func isPublicIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return !parsed.IsLoopback() && !parsed.IsPrivate() && !parsed.IsUnspecified() && !parsed.IsLinkLocalUnicast()
}
