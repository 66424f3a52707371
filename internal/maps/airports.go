// README: Airport display-name resolution via Google Places text search.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// AirportService resolves human-readable airport names for IATA codes the
// extraction layer returns without a display name.
type AirportService struct {
	client *maps.Client
}

// NewAirportService creates an AirportService with the given API key.
func NewAirportService(apiKey string) (*AirportService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &AirportService{client: client}, nil
}

// AirportName looks up the display name for an airport code, e.g.
// "SYD" -> "Sydney Kingsford Smith Airport". Best effort: callers treat a
// failure as "name unknown", never as a turn-level error.
func (s *AirportService) AirportName(ctx context.Context, code string) (string, error) {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query: code + " international airport",
		Type:  maps.PlaceTypeAirport,
	})
	if err != nil {
		return "", fmt.Errorf("places search for %s: %w", code, err)
	}
	if len(resp.Results) == 0 {
		return "", fmt.Errorf("no airport found for %s", code)
	}
	return resp.Results[0].Name, nil
}
