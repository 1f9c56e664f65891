package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"periplus/internal/apperr"
	"periplus/internal/logger"
	"periplus/internal/metrics"
)

const neshanBaseURL = "https://api.neshan.org/v4/direction"

// neshan queries the Neshan direction API for leg durations.
type neshan struct {
	baseURL     string
	apiKey      string
	vehicleType string
	client      *http.Client
}

func newNeshan(apiKey, vehicleType string, client *http.Client) *neshan {
	if vehicleType == "" {
		vehicleType = "car"
	}
	return &neshan{baseURL: neshanBaseURL, apiKey: apiKey, vehicleType: vehicleType, client: client}
}

func (n *neshan) Name() string { return "neshan" }

// directionResponse mirrors the slice of the provider payload the solver
// needs; distance is parsed but discarded for cost purposes.
type directionResponse struct {
	Routes []struct {
		Legs []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

func (n *neshan) Duration(ctx context.Context, origin, destination string) (int, error) {
	q := url.Values{}
	q.Set("type", n.vehicleType)
	q.Set("origin", origin)
	q.Set("destination", destination)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, apperr.UpstreamFailure("fetching routing data failed", err)
	}
	req.Header.Set("Api-Key", n.apiKey)

	t0 := time.Now()
	metrics.RoutingRequestsTotal.Inc()
	resp, err := n.client.Do(req)
	if err != nil {
		metrics.RoutingFailTotal.Inc()
		logger.L().Error("routing_http_error", "origin", origin, "destination", destination, "err", err)
		return 0, apperr.UpstreamFailure("fetching routing data failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RoutingFailTotal.Inc()
		logger.L().Error("routing_status_error", "origin", origin, "destination", destination, "status", resp.StatusCode)
		return 0, apperr.UpstreamFailure("fetching routing data failed", nil)
	}

	var payload directionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.RoutingFailTotal.Inc()
		return 0, apperr.UpstreamFailure("fetching routing data failed", err)
	}
	if len(payload.Routes) == 0 || len(payload.Routes[0].Legs) == 0 {
		metrics.RoutingFailTotal.Inc()
		return 0, apperr.UpstreamFailure("fetching routing data failed", nil)
	}

	dur := time.Since(t0).Milliseconds()
	metrics.RoutingDurationMs.Observe(float64(dur))
	logger.L().Debug("routing_leg", "origin", origin, "destination", destination, "duration_s", payload.Routes[0].Legs[0].Duration.Value, "took_ms", dur)
	return payload.Routes[0].Legs[0].Duration.Value, nil
}
