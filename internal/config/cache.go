package config

import "time"

// CacheConfig controls the flight-listing response cache.  When Enabled
// is false or no Redis client is available, the middleware is a no-op.
type CacheConfig struct {
	Enabled bool          // master switch
	TTL     time.Duration // lifetime of a cached page
	Prefix  string        // key namespace
}

// LoadCacheConfig builds a CacheConfig from the environment with sane
// defaults.  Only successful GET responses are ever cached.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 30*time.Second),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
}
