// Package pg provides PostgreSQL connectivity and utilities for the crud
// repository layer.
//
// It builds bun database handles on top of pgx connection pools, exposes
// embeddable base models with automatic timestamp tracking and a soft-delete
// flag, and offers helpers for inspecting PostgreSQL errors. Query hooks add
// debug logging, OpenTelemetry spans and per-request statement counting.
package pg

import (
	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/extra/bunotel"

	"github.com/crudkit/pkg/pg/hooks"
)

// NewBunDB creates a new bun database handle with the provided configuration.
func NewBunDB(cfg Config) (*bun.DB, error) {
	pool, err := NewPool(cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	sqldb := stdlib.OpenDBFromPool(pool)

	bunDB := bun.NewDB(sqldb, pgdialect.New())
	applyHooks(bunDB, cfg.Debug)

	return bunDB, nil
}

// applyHooks registers the query hooks on the bun handle.
//
// The debug logging hook is only active when debug is true. The counting
// hook and the OpenTelemetry hook are always on; the counting hook is a
// no-op unless a counter was injected into the statement context (see the
// hooks package and the query-count HTTP middleware).
func applyHooks(db *bun.DB, debug bool) {
	db.AddQueryHook(
		hooks.NewDebugHook(
			hooks.WithEnabled(debug),
			hooks.WithVerbose(true),
		),
	)
	db.AddQueryHook(hooks.NewCountHook())
	db.AddQueryHook(bunotel.NewQueryHook())
}
