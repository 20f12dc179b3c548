package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// IGeocodingService resolves free-text locations to coordinates.
type IGeocodingService interface {
	Geocode(ctx context.Context, location string) (*Coordinates, error)
}

type geocodingService struct {
	apiKey string
	client *http.Client
	cache  *gocache.Cache
}

func NewGeocodingService(apiKey string) IGeocodingService {
	return &geocodingService{
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  gocache.New(24*time.Hour, time.Hour),
	}
}

// Geocode queries Geoapify forward geocoding. Results are cached by the
// raw location string; venues do not move, so a long TTL is fine.
// Returns (nil, nil) when the location cannot be resolved; an event
// without coordinates is still valid.
func (s *geocodingService) Geocode(ctx context.Context, location string) (*Coordinates, error) {
	if s.apiKey == "" || location == "" {
		return nil, nil
	}

	if cached, ok := s.cache.Get(location); ok {
		coords := cached.(Coordinates)
		return &coords, nil
	}

	params := url.Values{}
	params.Add("text", location)
	params.Add("limit", "1")
	params.Add("apiKey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://api.geoapify.com/v1/geocode/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result struct {
		Features []struct {
			Properties struct {
				Lat float64 `json:"lat"`
				Lon float64 `json:"lon"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	if len(result.Features) == 0 {
		return nil, nil
	}

	coords := Coordinates{
		Latitude:  result.Features[0].Properties.Lat,
		Longitude: result.Features[0].Properties.Lon,
	}
	s.cache.Set(location, coords, gocache.DefaultExpiration)

	return &coords, nil
}
