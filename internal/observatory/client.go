package observatory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	contract "github.com/john-holland/heycern-m87hey/contracts/observatory"
	"github.com/john-holland/heycern-m87hey/internal/platform/providers"
)

const archiveProviderID = "eht-archive"

// ArchiveClient fetches black-hole lensing records from the EHT archive.
type ArchiveClient interface {
	FetchM87Lensing(ctx context.Context) (contract.BlackHoleRecord, error)
}

// HTTPArchiveClient is the production ArchiveClient.
type HTTPArchiveClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPArchiveClient builds a client for the archive at baseURL.
func NewHTTPArchiveClient(baseURL string, timeout time.Duration) *HTTPArchiveClient {
	return &HTTPArchiveClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchM87Lensing retrieves the M87 lensing record. Failures are normalized
// into ProviderError categories.
func (c *HTTPArchiveClient) FetchM87Lensing(ctx context.Context) (contract.BlackHoleRecord, error) {
	url := c.baseURL + "/api/v1/targets/m87/lensing"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return contract.BlackHoleRecord{}, providers.NewProviderError(providers.ErrorInternal, archiveProviderID, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		category := providers.ErrorProviderOutage
		if errors.Is(err, context.DeadlineExceeded) {
			category = providers.ErrorTimeout
		}
		return contract.BlackHoleRecord{}, providers.NewProviderError(category, archiveProviderID, "archive request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fallthrough to decode
	case resp.StatusCode == http.StatusNotFound:
		return contract.BlackHoleRecord{}, providers.NewProviderError(providers.ErrorNotFound, archiveProviderID, "m87 record not found", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return contract.BlackHoleRecord{}, providers.NewProviderError(providers.ErrorRateLimited, archiveProviderID, "archive rate limit", nil)
	case resp.StatusCode >= 500:
		return contract.BlackHoleRecord{}, providers.NewProviderError(providers.ErrorProviderOutage, archiveProviderID,
			fmt.Sprintf("archive returned %d", resp.StatusCode), nil)
	default:
		return contract.BlackHoleRecord{}, providers.NewProviderError(providers.ErrorBadData, archiveProviderID,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var rec contract.BlackHoleRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return contract.BlackHoleRecord{}, providers.NewProviderError(providers.ErrorBadData, archiveProviderID, "decode archive response", err)
	}
	return rec, nil
}
