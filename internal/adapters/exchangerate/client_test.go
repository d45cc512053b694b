package exchangerate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

func TestFetchLatestRates_Success(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/test-key/latest/USD", r.URL.Path)
		fmt.Fprint(w, `{"result":"success","conversion_rates":{"CNY":7.2456,"JPY":151.32,"EUR":0.92}}`)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	rates, err := client.FetchLatestRates(context.Background(), domain.USD)
	require.NoError(t, err)

	assert.True(t, rates[domain.CNY].Equal(decimal.RequireFromString("7.2456")))
	assert.True(t, rates[domain.JPY].Equal(decimal.RequireFromString("151.32")))
	// Unsupported currencies are dropped from the table.
	assert.Len(t, rates, 3)
	_, hasUSD := rates[domain.USD]
	assert.True(t, hasUSD)
	assert.Equal(t, 1, calls)
}

func TestFetchLatestRates_DayCacheShadowsRepeatCalls(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"result":"success","conversion_rates":{"CNY":7.20}}`)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := client.FetchLatestRates(context.Background(), domain.USD)
	require.NoError(t, err)
	_, err = client.FetchLatestRates(context.Background(), domain.USD)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestFetchLatestRates_NoAPIKey(t *testing.T) {
	client := NewClient("")

	_, err := client.FetchLatestRates(context.Background(), domain.USD)
	assert.Error(t, err)
}

func TestFetchLatestRates_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":"error","error-type":"invalid-key"}`)
	}))
	defer server.Close()

	client := NewClient("bad-key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := client.FetchLatestRates(context.Background(), domain.USD)
	assert.Error(t, err)
}

func TestFetchLatestRates_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := client.FetchLatestRates(context.Background(), domain.USD)
	assert.Error(t, err)
}
