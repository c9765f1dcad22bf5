// Package middleware provides a collection of Fiber middleware components
// for building HTTP servers with standardized behavior.
//
// The middleware components in this package handle common cross-cutting
// concerns such as request logging, error handling, recovery from panics,
// timeout management, request timing, and database query counting.
// They are designed to work with the server package and follow a consistent
// priority-based execution order.
//
// Middleware Execution Order:
//
// Each middleware declares a Priority value that determines its execution order:
//
//   - Recovery (1000): Catches panics in the middleware chain
//   - Timeout (800): Applies timeouts to request contexts
//   - ProcessTime (700): Reports request handling time in a response header
//   - QueryCount (600): Reports the number of database queries in a response header
//   - Logger (500): Logs request and response details
//   - ErrorHandler (400): Converts errors to standardized responses
//
// Higher priority values are executed earlier in the request pipeline.
//
// Usage Example:
//
//	srv := server.NewHTTPServer(cfg, []server.Middleware{
//		middleware.NewRecoveryMW(logger),
//		middleware.NewTimeoutMW(cfg.HandleTimeout),
//		middleware.NewProcessTimeMW(),
//		middleware.NewQueryCountMW(),
//		middleware.NewLoggerMW(logger),
//		middleware.NewErrorHandlerMW(cfg.HideErrorDetails),
//	})
//
// Alternatively, each middleware can be applied individually:
//
//	app.Use(middleware.NewRecoveryMW(logger).Handler)
package middleware
