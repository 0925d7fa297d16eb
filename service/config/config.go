package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"

	"cryptoforecast/service/api/coingecko"
)

const (
	DatabaseUser     = "DATABASE_USER"
	DatabasePassword = "DATABASE_PASSWORD"
	DatabaseHost     = "DATABASE_HOST"
	DatabasePort     = "DATABASE_PORT"
	DatabaseName     = "DATABASE_NAME"
	OutputDir        = "OUTPUT_DIR"
	CoinGeckoBaseUrl = "COINGECKO_BASE_URL"

	defaultOutputDir = "data"
)

type Database struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// Config is everything a run needs, read once at startup.
type Config struct {
	Database         Database
	OutputDir        string
	CoinGeckoBaseUrl string
}

// Load reads the process environment. It does not validate, call Validate before use.
func Load() *Config {
	return LoadFrom(os.Getenv)
}

func LoadFrom(getenv func(string) string) *Config {
	cfg := &Config{
		Database: Database{
			User:     getenv(DatabaseUser),
			Password: getenv(DatabasePassword),
			Host:     getenv(DatabaseHost),
			Port:     getenv(DatabasePort),
			Name:     getenv(DatabaseName),
		},
		OutputDir:        getenv(OutputDir),
		CoinGeckoBaseUrl: getenv(CoinGeckoBaseUrl),
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	if cfg.CoinGeckoBaseUrl == "" {
		cfg.CoinGeckoBaseUrl = coingecko.BaseUrlDefault
	}

	return cfg
}

// Validate reports every missing required variable at once.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{DatabaseUser, c.Database.User},
		{DatabasePassword, c.Database.Password},
		{DatabaseHost, c.Database.Host},
		{DatabasePort, c.Database.Port},
		{DatabaseName, c.Database.Name},
	}

	var errs []error
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.name))
		}
	}

	return errors.Join(errs...)
}

// DatabaseUrl is the postgres url for the configured database, credentials escaped.
func (c *Config) DatabaseUrl() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Database.User, c.Database.Password),
		Host:   net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:   "/" + c.Database.Name,
	}
	return u.String()
}
