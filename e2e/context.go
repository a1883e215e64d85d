// Package e2e drives a running service instance end to end with godog.
// The suite talks plain HTTP to the server named by M87HEY_E2E_URL and
// assumes the mock upstreams from mocks/ are backing it.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// TestContext carries the HTTP state a scenario accumulates: the last
// response, the bearer token in use, and IDs saved for follow-up requests.
type TestContext struct {
	baseURL    string
	adminToken string
	client     *http.Client

	lastStatus int
	lastBody   []byte

	bearer          string
	tokenID         string
	visualizationID string
	reportID        string
}

// NewTestContext builds a context for the service at baseURL. adminToken is
// the X-Admin-Token value the server was started with.
func NewTestContext(baseURL, adminToken string) *TestContext {
	return &TestContext{
		baseURL:    strings.TrimRight(baseURL, "/"),
		adminToken: adminToken,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Reset clears per-scenario state so scenarios stay independent.
func (tc *TestContext) Reset() {
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.bearer = ""
	tc.tokenID = ""
	tc.visualizationID = ""
	tc.reportID = ""
}

// POST sends a JSON POST. The stored bearer token rides along when present.
func (tc *TestContext) POST(path string, body interface{}) error {
	return tc.do(http.MethodPost, path, body, nil)
}

// POSTWithHeaders sends a JSON POST with extra headers.
func (tc *TestContext) POSTWithHeaders(path string, body interface{}, headers map[string]string) error {
	return tc.do(http.MethodPost, path, body, headers)
}

// GET sends a GET. An explicit Authorization header wins over the stored
// bearer token.
func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.do(http.MethodGet, path, nil, headers)
}

// DELETE sends a DELETE with extra headers.
func (tc *TestContext) DELETE(path string, headers map[string]string) error {
	return tc.do(http.MethodDelete, path, nil, headers)
}

func (tc *TestContext) do(method, path string, body interface{}, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, tc.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+tc.bearer)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	tc.lastStatus = resp.StatusCode
	tc.lastBody = raw
	return nil
}

// GetResponseField resolves a dot-separated path in the last JSON response.
// Numeric segments index arrays, so "reports.0.report.id" works.
func (tc *TestContext) GetResponseField(field string) (interface{}, error) {
	var decoded interface{}
	if err := json.Unmarshal(tc.lastBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode last response: %w", err)
	}

	current := decoded
	for _, segment := range strings.Split(field, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response", field)
			}
			current = value
		case []interface{}:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("field %q not found in response", field)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field %q not found in response", field)
		}
	}
	return current, nil
}

// ResponseContains reports whether the last response resolves field.
func (tc *TestContext) ResponseContains(field string) bool {
	_, err := tc.GetResponseField(field)
	return err == nil
}

// GetLastResponseStatus returns the status code of the last response.
func (tc *TestContext) GetLastResponseStatus() int { return tc.lastStatus }

// GetLastResponseBody returns the raw body of the last response.
func (tc *TestContext) GetLastResponseBody() []byte { return tc.lastBody }

// GetAdminToken returns the static admin header value.
func (tc *TestContext) GetAdminToken() string { return tc.adminToken }

// SetBearerToken stores the bearer token attached to later requests. An
// empty value clears it.
func (tc *TestContext) SetBearerToken(token string) { tc.bearer = token }

// GetBearerToken returns the stored bearer token.
func (tc *TestContext) GetBearerToken() string { return tc.bearer }

// SetTokenID stores the ID of the last issued API token.
func (tc *TestContext) SetTokenID(id string) { tc.tokenID = id }

// GetTokenID returns the stored API token ID.
func (tc *TestContext) GetTokenID() string { return tc.tokenID }

// SetVisualizationID stores the ID of the last generated visualization.
func (tc *TestContext) SetVisualizationID(id string) { tc.visualizationID = id }

// GetVisualizationID returns the stored visualization ID.
func (tc *TestContext) GetVisualizationID() string { return tc.visualizationID }

// SetReportID stores the ID of the last generated report.
func (tc *TestContext) SetReportID(id string) { tc.reportID = id }

// GetReportID returns the stored report ID.
func (tc *TestContext) GetReportID() string { return tc.reportID }
