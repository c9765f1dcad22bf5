package middleware

import (
	"github.com/crudkit/pkg/http/server"
	"github.com/crudkit/pkg/pg/hooks"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
)

// HeaderQueriesCount is the response header carrying the number of database
// queries executed while handling the request.
const HeaderQueriesCount = "X-Queries-Count"

// NewQueryCountMW creates a middleware that counts database queries executed
// during the request and reports the total in the X-Queries-Count response
// header.
//
// Counting only covers queries that run through a bun.DB with a
// hooks.CountHook registered, using the context obtained from
// c.UserContext(). Queries executed with a detached context are not counted.
func NewQueryCountMW() server.Middleware {
	return server.Middleware{
		Priority: 600,
		Handler: func(c *fiber.Ctx) error {
			ctx, counter := hooks.WithQueryCounter(c.UserContext())
			c.SetUserContext(ctx)

			err := c.Next()

			c.Set(HeaderQueriesCount, cast.ToString(counter.Count()))

			return err
		},
	}
}
