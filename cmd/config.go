package cmd

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

type Config struct {
	HTTPPort   string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	PayoutBasisPoints int
	ClaimAttempts     int
	AvailableLimit    int
	DispatchCron      string
	DispatchBatch     int
	SweepCron         string
	PresenceTimeout   time.Duration
	SweepLimit        int
	SeedFile          string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// RedisEnabled reports whether notifications are also published to Redis.
func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c Config) Payout() kernel.BasisPoints {
	return kernel.BasisPoints(c.PayoutBasisPoints)
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	switch c.DBDriver {
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for postgres"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver))
	}
	if c.ClaimAttempts <= 0 {
		errs = append(errs, errors.New("CLAIM_ATTEMPTS must be positive"))
	}
	if c.PresenceTimeout <= 0 {
		errs = append(errs, errors.New("PRESENCE_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}
