package conditions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/john-holland/heycern-m87hey/internal/platform/providers"
)

const noaaBody = `{"results":[
	{"date":"2026-08-21T00:00:00","datatype":"TAVG","station":"GHCND:USW00023234","value":17.8},
	{"date":"2026-08-21T00:00:00","datatype":"TAVG","station":"GHCND:USW00023272","value":16.1}
]}`

func TestNOAAClientFetchDaily(t *testing.T) {
	end := time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC)
	start := end.Add(-24 * time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cdo-web/api/v2/data", r.URL.Path)
		assert.Equal(t, "secret-token", r.Header.Get("token"))

		q := r.URL.Query()
		assert.Equal(t, "GHCND", q.Get("datasetid"))
		assert.Equal(t, "TAVG", q.Get("datatypeid"))
		assert.Equal(t, "2026-08-21", q.Get("startdate"))
		assert.Equal(t, "2026-08-22", q.Get("enddate"))
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "1000", q.Get("limit"))
		assert.Equal(t, "false", q.Get("includemetadata"))
		assert.Equal(t, "CITY", q.Get("locationcategoryid"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(noaaBody))
	}))
	defer srv.Close()

	client := NewNOAAClient(srv.URL, "secret-token", 5*time.Second)
	resp, raw, err := client.FetchDaily(context.Background(), start, end)
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "GHCND:USW00023234", resp.Results[0].Station)
	assert.InDelta(t, 17.8, resp.Results[0].Value, 1e-9)
	assert.JSONEq(t, noaaBody, string(raw))
}

func TestNOAAClientStatusMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewNOAAClient(srv.URL, "", 5*time.Second)
	_, _, err := client.FetchDaily(context.Background(), time.Now().Add(-24*time.Hour), time.Now())
	require.Error(t, err)
	assert.Equal(t, providers.ErrorProviderOutage, providers.CategoryOf(err))
	assert.True(t, providers.IsRetryable(err))
}

func TestNOAAClientMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance page</html>"))
	}))
	defer srv.Close()

	client := NewNOAAClient(srv.URL, "", 5*time.Second)
	_, _, err := client.FetchDaily(context.Background(), time.Now().Add(-24*time.Hour), time.Now())
	require.Error(t, err)
	assert.Equal(t, providers.ErrorBadData, providers.CategoryOf(err))
}
