package server

import (
	"fmt"
	"time"
)

// Config describes an HTTPServer. It is shaped for cfgloader: yaml tags name
// the config keys, default tags fill in working values, validate tags reject
// incomplete configs at startup.
type Config struct {
	// HideErrorDetails strips the details object from error responses.
	// Enable it on internet-facing deployments so query text and driver
	// diagnostics never reach clients.
	HideErrorDetails bool `yaml:"hide_error_details"`

	// Host and Port form the listen address.
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required"`

	// ReadTimeout bounds reading an entire request, WriteTimeout bounds
	// writing the response, IdleTimeout bounds keep-alive waits between
	// requests.
	ReadTimeout  time.Duration `yaml:"read_timeout"  validate:"required" default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"required" default:"5s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  validate:"required" default:"120s"`

	// HandleTimeout is the deadline the timeout middleware puts on each
	// request context. The server itself does not enforce it; pass it to
	// middleware.NewTimeoutMW.
	HandleTimeout time.Duration `yaml:"handle_timeout" validate:"required" default:"10s"`

	// BodyLimit is the maximum request body size in bytes. The default of
	// 4MB leaves room for form uploads checked by the upload package.
	BodyLimit int `yaml:"body_limit" validate:"required" default:"4194304"`
}

// Address returns the server's listen address in the form "host:port".
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
