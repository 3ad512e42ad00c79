// Package config handles configuration for the server component, including
// defaults, JSON overlay, environment variables, and command-line flags.
package config

import "time"

// Config holds runtime settings for the ImaraRent backend.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory user store.
//   - RedisAddr: redis address for the verification-code store. Empty selects
//     the in-memory code store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: access token lifetime.
//   - CodeTTL / CodeMaxAttempts / ResendMinInterval: verification-code policy.
//   - RateLimitRPS / RateLimitBurst: per-client request throttling.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings for
//     avatar uploads.
type Config struct {
	EndpointAddr                string
	DatabaseDSN                 string
	RedisAddr                   string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	CodeTTL                     time.Duration
	CodeMaxAttempts             int
	ResendMinInterval           time.Duration
	RateLimitRPS                float64
	RateLimitBurst              int
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = ""
	c.RedisAddr = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.CodeTTL = 10 * time.Minute
	c.CodeMaxAttempts = 5
	c.ResendMinInterval = 30 * time.Second
	c.RateLimitRPS = 10
	c.RateLimitBurst = 20
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "avatars"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
