package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
)

// DefaultGoogleEndpoint is the Google Maps Geocoding API endpoint.
const DefaultGoogleEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleConfig configures a GoogleClient.
type GoogleConfig struct {
	// APIKey is the Maps API key. Required.
	APIKey string

	// Endpoint overrides DefaultGoogleEndpoint (used by tests).
	Endpoint string

	// Timeout bounds a single request (default 10s). Ignored with HTTPClient.
	Timeout time.Duration

	// Region biases results to a ccTLD region code, e.g. "in".
	Region string

	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// GoogleClient resolves addresses with the Google Maps Geocoding API.
// The first result's geometry location is used.
type GoogleClient struct {
	apiKey     string
	endpoint   string
	region     string
	httpClient *http.Client
}

// googleResponse is the subset of the API response we read.
type googleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// NewGoogleClient creates a client. It fails when no API key is configured.
func NewGoogleClient(cfg GoogleConfig) (*GoogleClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing api key", ErrRequestDenied)
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultGoogleEndpoint
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &GoogleClient{
		apiKey:     cfg.APIKey,
		endpoint:   endpoint,
		region:     cfg.Region,
		httpClient: client,
	}, nil
}

// Resolve geocodes address.
func (c *GoogleClient) Resolve(ctx context.Context, address string) (geo.GeoPoint, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return geo.GeoPoint{}, ErrEmptyAddress
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)
	if c.region != "" {
		params.Set("region", c.region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return geo.GeoPoint{}, fmt.Errorf("build geocoding request: %w", stripURL(err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return geo.GeoPoint{}, ctx.Err()
		}
		return geo.GeoPoint{}, fmt.Errorf("%w: %v", ErrUnavailable, stripURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		kind := ErrRequestDenied
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			kind = ErrUnavailable
		}
		return geo.GeoPoint{}, fmt.Errorf("%w: status %d: %s", kind, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return geo.GeoPoint{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	switch result.Status {
	case "OK":
	case "ZERO_RESULTS":
		return geo.GeoPoint{}, fmt.Errorf("%w for %q", ErrNoResults, address)
	case "OVER_QUERY_LIMIT", "UNKNOWN_ERROR":
		return geo.GeoPoint{}, fmt.Errorf("%w: %s %s", ErrUnavailable, result.Status, result.ErrorMessage)
	default:
		return geo.GeoPoint{}, fmt.Errorf("%w: %s %s", ErrRequestDenied, result.Status, result.ErrorMessage)
	}

	if len(result.Results) == 0 {
		return geo.GeoPoint{}, fmt.Errorf("%w for %q", ErrNoResults, address)
	}

	loc := result.Results[0].Geometry.Location
	p := geo.GeoPoint{Latitude: loc.Lat, Longitude: loc.Lng}
	if err := p.Validate(); err != nil {
		return geo.GeoPoint{}, fmt.Errorf("geocoding result: %w", err)
	}
	return p, nil
}

// stripURL drops the request URL from transport errors. It carries the API key.
func stripURL(err error) error {
	var uErr *url.Error
	if errors.As(err, &uErr) {
		return fmt.Errorf("%s geocoding endpoint: %w", uErr.Op, uErr.Err)
	}
	return err
}

var _ Geocoder = (*GoogleClient)(nil)
