package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"swapwise/internal/domain"
)

// GoogleClient implementa Geocoder contra la Geocoding API de Google Maps.
type GoogleClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewGoogleClient construye el cliente. La API key llega por configuracion.
func NewGoogleClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *GoogleClient {
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *GoogleClient) Lookup(ctx context.Context, address string) (domain.Coordinate, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)
	endpoint := c.baseURL + "/maps/api/geocode/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("geocoding http error",
			zap.Int("status", resp.StatusCode),
			zap.String("address", address),
		)
		return domain.Coordinate{}, fmt.Errorf("geocoding http error: status=%d", resp.StatusCode)
	}

	var gr geocodeResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return domain.Coordinate{}, fmt.Errorf("unmarshal response: %w", err)
	}

	switch gr.Status {
	case "OK":
	case "ZERO_RESULTS":
		return domain.Coordinate{}, ErrAddressNotFound
	default:
		c.logger.Warn("geocoding api error",
			zap.String("status", gr.Status),
			zap.String("message", gr.ErrorMessage),
			zap.String("address", address),
		)
		return domain.Coordinate{}, fmt.Errorf("geocoding api error: %s", gr.Status)
	}

	if len(gr.Results) == 0 {
		return domain.Coordinate{}, ErrAddressNotFound
	}
	loc := gr.Results[0].Geometry.Location
	return domain.Coordinate{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}
