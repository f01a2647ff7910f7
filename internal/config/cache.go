package config

import "time"

// CacheConfig tunes the Redis response cache.  It is applied only to
// the event listing, which is immutable for the process lifetime, so a
// generous TTL is safe; seat listings are never cached because their
// sold flags change under concurrent purchases.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string // key namespace
	MaxBodyBytes int    // responses larger than this are not cached
}

// LoadCacheConfig reads the cache settings from the environment.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envStr("CACHE_ENABLED", "true") == "true",
		TTL:          envDur("CACHE_TTL", 5*time.Minute),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
