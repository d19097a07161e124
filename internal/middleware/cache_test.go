package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airline-reservation/internal/config"
)

func cacheContext(target, route string, params ...string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(route)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	return c
}

func TestCacheKeySeparatesPathParams(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache"}

	k1 := cacheKeyFrom(cfg, cacheContext("/api/v1/flights/1", "/api/v1/flights/:id", "id", "1"))
	k2 := cacheKeyFrom(cfg, cacheContext("/api/v1/flights/2", "/api/v1/flights/:id", "id", "2"))
	assert.NotEqual(t, k1, k2, "different flights must not share a cache entry")

	// same resource hashes to the same key
	again := cacheKeyFrom(cfg, cacheContext("/api/v1/flights/1", "/api/v1/flights/:id", "id", "1"))
	assert.Equal(t, k1, again)
}

func TestCacheKeySeparatesQueries(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache"}

	p1 := cacheKeyFrom(cfg, cacheContext("/api/v1/flights?page=1", "/api/v1/flights"))
	p2 := cacheKeyFrom(cfg, cacheContext("/api/v1/flights?page=2", "/api/v1/flights"))
	assert.NotEqual(t, p1, p2, "different pages must not share a cache entry")
}

func TestEncodeDecodePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`{"id":1}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)

	_, _, _, ok = decodePayload([]byte("short"))
	assert.False(t, ok)
}
