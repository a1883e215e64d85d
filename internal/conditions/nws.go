package conditions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	contract "github.com/john-holland/heycern-m87hey/contracts/observatory"
	"github.com/john-holland/heycern-m87hey/internal/platform/providers"
)

const nwsProviderID = "nws-forecast"

// nwsUserAgent identifies this service to the NWS API, which rejects
// anonymous clients.
const nwsUserAgent = "m87hey (service@project.org)"

// NWSClient fetches forecasts from the National Weather Service API.
type NWSClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNWSClient builds a client for the NWS API at baseURL.
func NewNWSClient(baseURL string, timeout time.Duration) *NWSClient {
	return &NWSClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchForecast resolves the gridpoint for the coordinates, then retrieves
// the forecast the gridpoint endpoint names. It returns the typed view
// alongside the raw forecast body for storage.
func (c *NWSClient) FetchForecast(ctx context.Context, lat, lon float64) (contract.NWSForecastResponse, json.RawMessage, error) {
	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, lat, lon)
	body, err := c.get(ctx, pointsURL)
	if err != nil {
		return contract.NWSForecastResponse{}, nil, err
	}

	var points contract.NWSPointResponse
	if err := json.Unmarshal(body, &points); err != nil {
		return contract.NWSForecastResponse{}, nil, providers.NewProviderError(providers.ErrorBadData, nwsProviderID, "decode points response", err)
	}
	if points.Properties.Forecast == "" {
		return contract.NWSForecastResponse{}, nil, providers.NewProviderError(providers.ErrorBadData, nwsProviderID, "points response carries no forecast url", nil)
	}

	body, err = c.get(ctx, points.Properties.Forecast)
	if err != nil {
		return contract.NWSForecastResponse{}, nil, err
	}

	var forecast contract.NWSForecastResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		return contract.NWSForecastResponse{}, nil, providers.NewProviderError(providers.ErrorBadData, nwsProviderID, "decode forecast response", err)
	}
	return forecast, body, nil
}

func (c *NWSClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, nwsProviderID, "build request", err)
	}
	req.Header.Set("User-Agent", nwsUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		category := providers.ErrorProviderOutage
		if errors.Is(err, context.DeadlineExceeded) {
			category = providers.ErrorTimeout
		}
		return nil, providers.NewProviderError(category, nwsProviderID, "nws request failed", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, nwsProviderID); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorBadData, nwsProviderID, "read nws response", err)
	}
	return body, nil
}
