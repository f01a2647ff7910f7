// Package config loads application configuration from environment
// variables.  Every knob has a working default so the server boots with
// no environment at all; a .env file, when present, is loaded by main
// before this package reads anything.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.
type Config struct {
	Env             string        // application environment (e.g. "dev", "prod")
	Port            string        // HTTP port to listen on
	JWTSecret       string        // secret used to sign access tokens and QR payloads
	AccessTTLMin    int           // access token time-to-live in minutes
	BcryptCost      int           // bcrypt cost for the demo credential hash
	DemoEmail       string        // email of the built-in demo account
	DemoPassword    string        // password of the built-in demo account
	LockWaitTimeout time.Duration // max wait for seat locks; 0 waits indefinitely
	FrontendDir     string        // static frontend directory; empty disables the mount
}

// Load reads configuration values from the environment, applying
// defaults for anything unset.
func Load() Config {
	return Config{
		Env:             envStr("APP_ENV", "dev"),
		Port:            envStr("APP_PORT", "8080"),
		JWTSecret:       envStr("JWT_SECRET", "changeme"),
		AccessTTLMin:    envInt("ACCESS_TOKEN_TTL_MIN", 60),
		BcryptCost:      envInt("BCRYPT_COST", 10),
		DemoEmail:       envStr("DEMO_EMAIL", "demo@example.com"),
		DemoPassword:    envStr("DEMO_PASSWORD", "demo"),
		LockWaitTimeout: envDur("LOCK_WAIT_TIMEOUT", 0),
		FrontendDir:     os.Getenv("FRONTEND_DIR"),
	}
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
