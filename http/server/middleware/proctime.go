package middleware

import (
	"time"

	"github.com/crudkit/pkg/http/server"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
)

// HeaderProcessTime is the response header carrying the request handling
// time in seconds.
const HeaderProcessTime = "X-Process-Time"

// NewProcessTimeMW creates a middleware that measures how long a request took
// to handle and reports it in the X-Process-Time response header as a decimal
// number of seconds.
func NewProcessTimeMW() server.Middleware {
	return server.Middleware{
		Priority: 700,
		Handler: func(c *fiber.Ctx) error {
			start := time.Now()

			err := c.Next()

			elapsed := time.Since(start).Seconds()
			c.Set(HeaderProcessTime, cast.ToString(elapsed))

			return err
		},
	}
}
