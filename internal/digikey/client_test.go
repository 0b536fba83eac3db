package digikey

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeAPI serves a token endpoint and a fixed set of products.
func fakeAPI(t *testing.T, products map[string]Product) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var lookups atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("grant_type") != "client_credentials" {
			http.Error(w, "bad grant type", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"expires_in":   600,
		})
	})
	mux.HandleFunc("/products/v4/search/", func(w http.ResponseWriter, r *http.Request) {
		lookups.Add(1)
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			http.Error(w, "bad token", http.StatusUnauthorized)
			return
		}
		pn := strings.TrimPrefix(r.URL.Path, "/products/v4/search/")
		pn = strings.TrimSuffix(pn, "/productdetails")
		p, ok := products[pn]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(productDetailsResponse{Product: p})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &lookups
}

func testProducts() map[string]Product {
	return map[string]Product{
		"YAG2320CT-ND": {
			DigiKeyPartNumber:      "YAG2320CT-ND",
			ManufacturerPartNumber: "RT0603FRE07100RL",
			Manufacturer:           ValueField{Value: "YAGEO"},
		},
		"296-1395-1-ND": {
			DigiKeyPartNumber:      "296-1395-1-ND",
			ManufacturerPartNumber: "LM358DR",
			Manufacturer:           ValueField{Value: "Texas Instruments"},
		},
	}
}

func TestProductDetails(t *testing.T) {
	srv, _ := fakeAPI(t, testProducts())
	c := NewClient("id", "secret", zaptest.NewLogger(t), WithBaseURL(srv.URL))

	p, err := c.ProductDetails(context.Background(), "YAG2320CT-ND")
	require.NoError(t, err)
	assert.Equal(t, "RT0603FRE07100RL", p.ManufacturerPartNumber)
	assert.Equal(t, "YAGEO", p.Manufacturer.Value)
	assert.NotEmpty(t, p.Raw)
}

func TestProductDetailsNotFound(t *testing.T) {
	srv, _ := fakeAPI(t, testProducts())
	c := NewClient("id", "secret", zaptest.NewLogger(t), WithBaseURL(srv.URL))

	_, err := c.ProductDetails(context.Background(), "BOGUS-ND")
	assert.ErrorContains(t, err, "no part found for part number BOGUS-ND")
}

func TestProductDetailsMissingCredentials(t *testing.T) {
	srv, _ := fakeAPI(t, testProducts())
	c := NewClient("", "", zaptest.NewLogger(t), WithBaseURL(srv.URL))

	_, err := c.ProductDetails(context.Background(), "YAG2320CT-ND")
	assert.ErrorContains(t, err, "credentials not configured")
}

func TestProductDetailsUsesCache(t *testing.T) {
	srv, lookups := fakeAPI(t, testProducts())
	c := NewClient("id", "secret", zaptest.NewLogger(t),
		WithBaseURL(srv.URL), WithCache(t.TempDir()))

	for i := 0; i < 3; i++ {
		p, err := c.ProductDetails(context.Background(), "YAG2320CT-ND")
		require.NoError(t, err)
		assert.Equal(t, "RT0603FRE07100RL", p.ManufacturerPartNumber)
	}
	assert.Equal(t, int64(1), lookups.Load(), "second lookup should hit the cache")
}

func TestProductsDetails(t *testing.T) {
	srv, _ := fakeAPI(t, testProducts())
	c := NewClient("id", "secret", zaptest.NewLogger(t), WithBaseURL(srv.URL))

	pns := []string{"296-1395-1-ND", "YAG2320CT-ND"}
	results := c.ProductsDetails(context.Background(), pns)
	require.Len(t, results, 2)
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, pns[i], r.PartNumber)
	}
	assert.Equal(t, "LM358DR", results[0].Product.ManufacturerPartNumber)
	assert.Equal(t, "RT0603FRE07100RL", results[1].Product.ManufacturerPartNumber)
}

// An unknown part number must not abort the batch; the other lookups
// still come back.
func TestProductsDetailsPartialFailure(t *testing.T) {
	srv, _ := fakeAPI(t, testProducts())
	c := NewClient("id", "secret", zaptest.NewLogger(t), WithBaseURL(srv.URL))

	results := c.ProductsDetails(context.Background(),
		[]string{"YAG2320CT-ND", "MISSING-ND", "296-1395-1-ND"})
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	assert.Equal(t, "RT0603FRE07100RL", results[0].Product.ManufacturerPartNumber)

	assert.ErrorContains(t, results[1].Err, "no part found for part number MISSING-ND")
	assert.Nil(t, results[1].Product)

	require.NoError(t, results[2].Err)
	assert.Equal(t, "LM358DR", results[2].Product.ManufacturerPartNumber)
}

func TestCacheRoundTrip(t *testing.T) {
	cache := NewCache(t.TempDir())

	_, ok := cache.Get("296-1395-1-ND")
	assert.False(t, ok)

	require.NoError(t, cache.Put("296-1395-1-ND", []byte(`{"Product":{}}`)))
	data, ok := cache.Get("296-1395-1-ND")
	assert.True(t, ok)
	assert.JSONEq(t, `{"Product":{}}`, string(data))
}

func TestCacheKeySanitized(t *testing.T) {
	cache := NewCache(t.TempDir())
	require.NoError(t, cache.Put("weird/part number", []byte("{}")))

	_, ok := cache.Get("weird/part number")
	assert.True(t, ok)
}
