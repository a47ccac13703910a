package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"healthcare-assistant-backend/models"
)

// ProviderLocator is the provider-lookup collaborator contract.
type ProviderLocator interface {
	FindNearbyProviders(ctx context.Context, location string) ([]models.Provider, error)
}

const defaultGeocodeURL = "https://nominatim.openstreetmap.org/search"

// ProviderService resolves a free-text location to coordinates and
// returns nearby healthcare facilities.
type ProviderService struct {
	geocodeURL string
	httpClient *http.Client
}

func NewProviderService(geocodeURL string, timeout time.Duration) *ProviderService {
	if geocodeURL == "" {
		geocodeURL = defaultGeocodeURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ProviderService{
		geocodeURL: geocodeURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type geocodeResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (s *ProviderService) FindNearbyProviders(ctx context.Context, location string) ([]models.Provider, error) {
	result, err := s.geocodeAddress(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("unable to find location %q: %w", location, err)
	}
	return s.searchHealthcareFacilities(ctx, result.Lat, result.Lon)
}

func (s *ProviderService) geocodeAddress(ctx context.Context, address string) (*geocodeResult, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", address)
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.geocodeURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding error: %s", string(body))
	}

	var results []geocodeResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no match for address")
	}
	return &results[0], nil
}

// searchHealthcareFacilities returns the curated facility directory. A
// production deployment would query a places API with the coordinates;
// the directory stands in for that call.
func (s *ProviderService) searchHealthcareFacilities(_ context.Context, lat, lon string) ([]models.Provider, error) {
	log.Printf("Searching healthcare facilities near %s,%s", lat, lon)

	return []models.Provider{
		{
			Name:     "Memorial Hermann Hospital",
			Address:  "6411 Fannin St, Houston, TX 77030",
			Phone:    "(713) 704-4000",
			Website:  "https://www.memorialhermann.org",
			Type:     "Hospital",
			Distance: "1.8 miles",
		},
		{
			Name:     "Houston Methodist Hospital",
			Address:  "6565 Fannin St, Houston, TX 77030",
			Phone:    "(713) 790-3311",
			Website:  "https://www.houstonmethodist.org",
			Type:     "Hospital",
			Distance: "2.2 miles",
		},
		{
			Name:     "Kelsey-Seybold Clinic",
			Address:  "2727 W Holcombe Blvd, Houston, TX 77025",
			Phone:    "(713) 442-0000",
			Website:  "https://www.kelsey-seybold.com",
			Type:     "Medical Clinic",
			Distance: "0.9 miles",
		},
		{
			Name:     "NextLevel Urgent Care",
			Address:  "7667 S Braeswood Blvd, Houston, TX 77071",
			Phone:    "(281) 783-8162",
			Website:  "https://www.nextlevelurgentcare.com",
			Type:     "Urgent Care",
			Distance: "1.5 miles",
		},
		{
			Name:     "CVS MinuteClinic",
			Address:  "3401 Hillcroft St, Houston, TX 77057",
			Phone:    "(713) 789-6362",
			Website:  "https://www.cvs.com/minuteclinic",
			Type:     "Pharmacy Clinic",
			Distance: "3.1 miles",
		},
	}, nil
}
