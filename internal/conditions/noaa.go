package conditions

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

	contract "github.com/john-holland/heycern-m87hey/contracts/observatory"
	"github.com/john-holland/heycern-m87hey/internal/platform/providers"
)

const noaaProviderID = "noaa-cdo"

// NOAAClient fetches daily atmospheric observations from the Climate Data
// Online API.
type NOAAClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewNOAAClient builds a client for the CDO API at baseURL. The token is the
// CDO API key sent on every request.
func NewNOAAClient(baseURL, token string, timeout time.Duration) *NOAAClient {
	return &NOAAClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchDaily retrieves GHCND average-temperature observations for the date
// range. The CDO API keys on station networks rather than coordinates, so
// the query restricts to city-category stations. It returns the typed view
// alongside the raw body for storage.
func (c *NOAAClient) FetchDaily(ctx context.Context, start, end time.Time) (contract.NOAADataResponse, json.RawMessage, error) {
	q := url.Values{}
	q.Set("datasetid", "GHCND")
	q.Set("datatypeid", "TAVG")
	q.Set("startdate", start.UTC().Format("2006-01-02"))
	q.Set("enddate", end.UTC().Format("2006-01-02"))
	q.Set("units", "metric")
	q.Set("limit", "1000")
	q.Set("includemetadata", "false")
	q.Set("locationcategoryid", "CITY")

	reqURL := c.baseURL + "/cdo-web/api/v2/data?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return contract.NOAADataResponse{}, nil, providers.NewProviderError(providers.ErrorInternal, noaaProviderID, "build request", err)
	}
	req.Header.Set("token", c.token)
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return contract.NOAADataResponse{}, nil, err
	}

	var resp contract.NOAADataResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return contract.NOAADataResponse{}, nil, providers.NewProviderError(providers.ErrorBadData, noaaProviderID, "decode cdo response", err)
	}
	return resp, body, nil
}

func (c *NOAAClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		category := providers.ErrorProviderOutage
		if errors.Is(err, context.DeadlineExceeded) {
			category = providers.ErrorTimeout
		}
		return nil, providers.NewProviderError(category, noaaProviderID, "cdo request failed", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, noaaProviderID); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorBadData, noaaProviderID, "read cdo response", err)
	}
	return body, nil
}

// statusError maps non-200 statuses onto the provider error taxonomy.
func statusError(status int, providerID string) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound:
		return providers.NewProviderError(providers.ErrorNotFound, providerID, "resource not found", nil)
	case status == http.StatusTooManyRequests:
		return providers.NewProviderError(providers.ErrorRateLimited, providerID, "rate limit", nil)
	case status >= 500:
		return providers.NewProviderError(providers.ErrorProviderOutage, providerID,
			fmt.Sprintf("upstream returned %d", status), nil)
	default:
		return providers.NewProviderError(providers.ErrorBadData, providerID,
			fmt.Sprintf("unexpected status %d", status), nil)
	}
}
