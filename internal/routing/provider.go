// Package routing builds cost tables from external routing providers by
// fetching pairwise travel durations concurrently.
package routing

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"periplus/internal/apperr"
)

// Provider fetches the travel duration in seconds between two coordinate
// strings in "lat,long" form.
type Provider interface {
	Name() string
	Duration(ctx context.Context, origin, destination string) (int, error)
}

// latLong matches the "latitude,longitude" syntax accepted for real
// instances.
var latLong = regexp.MustCompile(`^-?\d+(\.\d+)?,-?\d+(\.\d+)?$`)

// ValidCoordinate reports whether s is a well-formed "lat,long" pair.
func ValidCoordinate(s string) bool {
	return latLong.MatchString(s)
}

// NewProvider resolves a provider by name. The provider set is closed;
// adding one is a code change.
func NewProvider(name, apiKey, vehicleType string, client *http.Client) (Provider, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	switch name {
	case "neshan":
		if apiKey == "" {
			return nil, apperr.BadInput("API key missing")
		}
		return newNeshan(apiKey, vehicleType, client), nil
	default:
		return nil, apperr.BadInput("unsupported API")
	}
}
