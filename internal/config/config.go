package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/luisvid/nft-lending-protocol/internal/ledger"
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

	// Ledger identities and protocol parameters.
	OwnerAccount   string
	CustodyAccount string
	Ledger         ledger.Params

	// Fixed oracle price applied to every registered collateral class, and the
	// pool balance seeded into custody at boot.
	UnitPrice   string
	SeedBalance string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvUint(k string, d uint64) uint64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	params := ledger.DefaultParams()
	params.InterestRateBps = getenvUint("INTEREST_RATE_BPS", params.InterestRateBps)
	params.MaxLTVBps = getenvUint("MAX_LTV_BPS", params.MaxLTVBps)
	params.MaxDurationHours = getenvUint("MAX_DURATION_HOURS", params.MaxDurationHours)
	if v := os.Getenv("MAX_ACTIVE_LOANS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.MaxActiveLoans = n
		}
	}

	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "lending"),
		MySQLUser: getenv("MYSQL_USER", "lending"),
		MySQLPass: getenv("MYSQL_PASS", "lending"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		OwnerAccount:   os.Getenv("LEDGER_OWNER"),
		CustodyAccount: os.Getenv("LEDGER_CUSTODY"),
		Ledger:         params,

		UnitPrice:   getenv("ORACLE_UNIT_PRICE", "1000000"),
		SeedBalance: getenv("LEDGER_SEED_BALANCE", "0"),
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
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.OwnerAccount == "" {
		return errors.New("missing LEDGER_OWNER")
	}
	return c.Ledger.Validate()
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
