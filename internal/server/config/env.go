package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

func mustParseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}

// envConfig mirrors Config with pointer fields so that only variables
// actually present in the environment override earlier layers.
type envConfig struct {
	EndpointAddr                *string  `env:"IMARARENT_ADDR"`
	DatabaseDSN                 *string  `env:"IMARARENT_DATABASE_DSN"`
	RedisAddr                   *string  `env:"IMARARENT_REDIS_ADDR"`
	SecretKey                   *string  `env:"IMARARENT_SECRET_KEY"`
	AccessTokenValidityDuration *string  `env:"IMARARENT_TOKEN_TTL"`
	CodeTTL                     *string  `env:"IMARARENT_CODE_TTL"`
	CodeMaxAttempts             *int     `env:"IMARARENT_CODE_MAX_ATTEMPTS"`
	ResendMinInterval           *string  `env:"IMARARENT_RESEND_MIN_INTERVAL"`
	RateLimitRPS                *float64 `env:"IMARARENT_RATE_LIMIT_RPS"`
	RateLimitBurst              *int     `env:"IMARARENT_RATE_LIMIT_BURST"`
	S3RootUser                  *string  `env:"IMARARENT_S3_ROOT_USER"`
	S3RootPassword              *string  `env:"IMARARENT_S3_ROOT_PASSWORD"`
	S3Bucket                    *string  `env:"IMARARENT_S3_BUCKET"`
	S3Region                    *string  `env:"IMARARENT_S3_REGION"`
	S3BaseEndpoint              *string  `env:"IMARARENT_S3_BASE_ENDPOINT"`
}

// parseEnv overlays environment variables onto the Config. Duration values
// use Go duration syntax ("15m", "30s").
func parseEnv(config *Config) {
	e := &envConfig{}
	if err := env.Parse(e); err != nil {
		panic(err)
	}

	if e.EndpointAddr != nil {
		config.EndpointAddr = *e.EndpointAddr
	}
	if e.DatabaseDSN != nil {
		config.DatabaseDSN = *e.DatabaseDSN
	}
	if e.RedisAddr != nil {
		config.RedisAddr = *e.RedisAddr
	}
	if e.SecretKey != nil {
		config.SecretKey = *e.SecretKey
	}
	if e.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = mustParseDuration(*e.AccessTokenValidityDuration)
	}
	if e.CodeTTL != nil {
		config.CodeTTL = mustParseDuration(*e.CodeTTL)
	}
	if e.CodeMaxAttempts != nil {
		config.CodeMaxAttempts = *e.CodeMaxAttempts
	}
	if e.ResendMinInterval != nil {
		config.ResendMinInterval = mustParseDuration(*e.ResendMinInterval)
	}
	if e.RateLimitRPS != nil {
		config.RateLimitRPS = *e.RateLimitRPS
	}
	if e.RateLimitBurst != nil {
		config.RateLimitBurst = *e.RateLimitBurst
	}
	if e.S3RootUser != nil {
		config.S3RootUser = *e.S3RootUser
	}
	if e.S3RootPassword != nil {
		config.S3RootPassword = *e.S3RootPassword
	}
	if e.S3Bucket != nil {
		config.S3Bucket = *e.S3Bucket
	}
	if e.S3Region != nil {
		config.S3Region = *e.S3Region
	}
	if e.S3BaseEndpoint != nil {
		config.S3BaseEndpoint = *e.S3BaseEndpoint
	}
}
