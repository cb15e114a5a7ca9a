package cmd

import "time"

// Config carries all environment-driven settings. APP_ENV selects the tenant
// guard mode: anything other than "development" runs the guard hardened.
type Config struct {
	AppEnv       string
	HTTPPort     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSslMode    string
	RedisURL     string
	JWTSecret    string
	QueryTimeout time.Duration
}

// IsDevelopment reports whether the process runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
