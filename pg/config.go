package pg

import (
	"fmt"
	"time"
)

// Config describes a PostgreSQL connection for NewPool and NewBunDB.
//
// The struct is shaped for cfgloader: yaml tags name the config keys,
// default tags fill in sensible values, and validate tags reject incomplete
// configs at startup. The password is masked when the loaded config is
// printed.
type Config struct {
	// Debug turns on per-query logging through the bun debug hook.
	Debug bool `yaml:"debug" default:"false"`

	// Connection target. All four fields are required.
	Host     string `yaml:"host"     validate:"required"`
	Port     int    `yaml:"port"     validate:"required"`
	User     string `yaml:"user"     validate:"required"`
	Password string `yaml:"password" validate:"required" mask:"true"`

	// Database is the name of the database to connect to.
	Database string `yaml:"database" validate:"required"`

	// SSLMode is passed through to the driver unchanged.
	// One of: disable, allow, prefer, require, verify-ca, verify-full.
	SSLMode string `yaml:"sslmode" default:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`

	// SearchPath sets the schema search path for every connection.
	SearchPath string `yaml:"search_path" default:"public"`

	// ConnectTimeout bounds how long establishing a single connection may take.
	ConnectTimeout time.Duration `yaml:"connect_timeout" default:"10s"`

	// Pool sizing. The defaults suit a small service; tune per deployment.
	PoolMaxConns        int32         `yaml:"pool_max_conns"          default:"4"`
	PoolMinConns        int32         `yaml:"pool_min_conns"          default:"1"`
	PoolMaxConnLifetime time.Duration `yaml:"pool_max_conn_lifetime"  default:"1h"`
	PoolMaxConnIdleTime time.Duration `yaml:"pool_max_conn_idle_time" default:"30m"`
}

// dsn renders the config as a keyword/value connection string for pgx.
func (c Config) dsn() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s connect_timeout=%d",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
		c.SearchPath,
		int(c.ConnectTimeout.Seconds()),
	)
}
