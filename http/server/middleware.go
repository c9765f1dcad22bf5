package server

import (
	"slices"

	"github.com/gofiber/fiber/v2"
)

// Middleware is a fiber handler with an ordering priority. HTTPServer
// registers middlewares from highest priority to lowest, so recovery and
// timeouts wrap everything registered below them. The middleware package
// documents the conventional priority bands.
type Middleware struct {
	Priority int
	Handler  fiber.Handler
}

func applyMiddlewares(app *fiber.App, middlewares []Middleware) {
	ordered := slices.Clone(middlewares)
	slices.SortStableFunc(ordered, func(a, b Middleware) int {
		return b.Priority - a.Priority
	})

	for _, mw := range ordered {
		if mw.Handler == nil {
			continue
		}
		app.Use(mw.Handler)
	}
}
