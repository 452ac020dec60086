package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

const (
	StrategyHeuristic = "heuristic"
	StrategyModel     = "model"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Scoring strategy: "heuristic" or "model".
	ScoringStrategy string
	ModelURL        string
	ModelTimeoutSec int

	// Monetary fields are persisted in CanonicalCurrency; DisplayCurrency is
	// the operator-selected presentation currency at CurrencyRate canonical
	// units per display unit.
	CanonicalCurrency string
	DisplayCurrency   string
	CurrencyRate      float64
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "creditrisk"),
		MySQLUser: getenv("MYSQL_USER", "creditrisk"),
		MySQLPass: getenv("MYSQL_PASS", "creditrisk"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		ScoringStrategy: getenv("SCORING_STRATEGY", StrategyHeuristic),
		ModelURL:        getenv("MODEL_URL", "http://model:8000"),
		ModelTimeoutSec: 30,

		CanonicalCurrency: getenv("CANONICAL_CURRENCY", "XOF"),
		DisplayCurrency:   getenv("DISPLAY_CURRENCY", "XOF"),
		CurrencyRate:      600,
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	if v := os.Getenv("MODEL_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ModelTimeoutSec = n
		}
	}
	if v := os.Getenv("CURRENCY_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.CurrencyRate = f
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.ScoringStrategy {
	case StrategyHeuristic, StrategyModel:
	default:
		return fmt.Errorf("unknown SCORING_STRATEGY %q", c.ScoringStrategy)
	}
	if c.ScoringStrategy == StrategyModel && c.ModelURL == "" {
		return errors.New("missing MODEL_URL for model scoring strategy")
	}
	if c.CurrencyRate <= 0 {
		return fmt.Errorf("invalid CURRENCY_RATE %v", c.CurrencyRate)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
