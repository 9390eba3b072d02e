package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"location-api/internal/models"

	"github.com/rs/zerolog/log"
)

// GeocodeError is a geocoding provider failure. The resolve service absorbs
// it and continues with blank coordinates.
type GeocodeError struct {
	Status  int
	Message string
}

func (e *GeocodeError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("geocoding: transport failure, status %d", e.Status)
	}
	return fmt.Sprintf("geocoding: %s", e.Message)
}

type geocodeEnvelope struct {
	CoordinateInfo *models.GeocodeResult `json:"coordinateInfo"`
	Error          *struct {
		ID      string `json:"id"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GeocodingClient is the HTTP client for the geocoding provider.
type GeocodingClient struct {
	httpClient *http.Client
	baseURL    string
	appKey     string
}

// NewGeocodingClient creates a geocoding client for the given endpoint and
// app key.
func NewGeocodingClient(baseURL, appKey string) *GeocodingClient {
	return &GeocodingClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		appKey:     appKey,
	}
}

// Lookup geocodes a city/district/neighborhood triple. A nil result with a
// nil error means the provider had no coordinates for the address; callers
// must treat that as "no result", not as a failure.
func (c *GeocodingClient) Lookup(ctx context.Context, cityDo, guGun, dong string) (*models.GeocodeResult, error) {
	params := url.Values{}
	params.Set("version", "1")
	params.Set("city_do", cityDo)
	params.Set("gu_gun", guGun)
	params.Set("dong", dong)
	params.Set("addressFlag", "F00")
	params.Set("coordType", "WGS84GEO")

	reqURL := c.baseURL + "?" + params.Encode()
	log.Info().Str("url", c.baseURL).Str("city_do", cityDo).Str("gu_gun", guGun).Str("dong", dong).Msg("calling geocoding API")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("appKey", c.appKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GeocodeError{Message: err.Error()}
	}
	defer resp.Body.Close()

	var envelope geocodeEnvelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&envelope)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && envelope.Error != nil {
			log.Error().Int("status", resp.StatusCode).Str("code", envelope.Error.Code).Str("message", envelope.Error.Message).Msg("geocoding API error response")
		}
		return nil, &GeocodeError{Status: resp.StatusCode}
	}
	if decodeErr != nil {
		return nil, &GeocodeError{Message: decodeErr.Error()}
	}

	// Absent coordinate payload is a legitimate empty answer.
	if envelope.CoordinateInfo == nil {
		return nil, nil
	}
	return envelope.CoordinateInfo, nil
}
