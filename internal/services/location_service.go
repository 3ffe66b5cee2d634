package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/lostnfound/backend/internal/config"
)

// ErrLocationUnavailable is returned when the upstream location API cannot
// be reached or answers with an error status.
var ErrLocationUnavailable = errors.New("location service unavailable")

// ErrLocationNotFound is returned for an unknown country or state.
var ErrLocationNotFound = errors.New("location not found")

// Place is one entry from the upstream location catalog. The upstream
// payload varies per endpoint, so unknown fields ride along in Extra.
type Place map[string]interface{}

// LocationService proxies the external country/state/city catalog with an
// in-memory TTL cache so the selector dropdowns do not re-hit the upstream
// on every page load.
type LocationService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	ttl     time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	places  []Place
	expires time.Time
}

func NewLocationService(cfg *config.Config) *LocationService {
	return &LocationService{
		baseURL: cfg.LocationAPIBaseURL,
		apiKey:  cfg.LocationAPIKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		ttl:     cfg.LocationCacheTTL,
		cache:   make(map[string]cacheEntry),
	}
}

func (s *LocationService) Countries(ctx context.Context) ([]Place, error) {
	return s.fetch(ctx, "/countrieslist", nil)
}

func (s *LocationService) States(ctx context.Context, country string) ([]Place, error) {
	if country == "" {
		return nil, invalid("country", "is required")
	}
	states, err := s.fetch(ctx, "/getstatesincountry", url.Values{"country": {country}})
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, ErrLocationNotFound
	}
	return states, nil
}

func (s *LocationService) Cities(ctx context.Context, country, state string) ([]Place, error) {
	if country == "" {
		return nil, invalid("country", "is required")
	}
	if state == "" {
		return nil, invalid("state", "is required")
	}
	cities, err := s.fetch(ctx, "/getcitiesinstate", url.Values{"country": {country}, "state": {state}})
	if err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return nil, ErrLocationNotFound
	}
	return cities, nil
}

func (s *LocationService) fetch(ctx context.Context, endpoint string, params url.Values) ([]Place, error) {
	key := endpoint + "?" + params.Encode()

	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.places, nil
	}

	reqURL := s.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build location request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error("location API request failed", "endpoint", endpoint, "error", err)
		return nil, ErrLocationUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("location API error status", "endpoint", endpoint, "status", resp.StatusCode)
		return nil, ErrLocationUnavailable
	}

	var places []Place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		slog.Error("location API bad payload", "endpoint", endpoint, "error", err)
		return nil, ErrLocationUnavailable
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{places: places, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return places, nil
}
