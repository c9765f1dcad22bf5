package crud

import (
	"context"

	"github.com/code19m/errx"
	"github.com/crudkit/pkg/pg"
)

// Count returns the number of records matching the customized query.
// Pagination clauses added by a customizer are stripped so the count always
// covers the full matching set.
func (r *CRUD[E, C, P, U]) Count(ctx context.Context, qs ...Query) (int, error) {
	q := r.idb.NewSelect().Model((*E)(nil))
	q = applyQueries(q, qs)
	q = q.Offset(0).Limit(0)

	count, err := q.Count(ctx)
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return count, nil
}

// Exists reports whether any record matches the customized query.
func (r *CRUD[E, C, P, U]) Exists(ctx context.Context, qs ...Query) (bool, error) {
	q := r.idb.NewSelect().Model((*E)(nil))
	q = applyQueries(q, qs)

	exists, err := q.Exists(ctx)
	if err != nil {
		return false, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return exists, nil
}

// ExistsN reports whether exactly n records match the customized query.
// It selects a constant column with a row limit of n+1, so at most n+1 rows
// are ever read regardless of the true cardinality. Prefer it over Count
// when only an exact-count predicate is needed.
func (r *CRUD[E, C, P, U]) ExistsN(ctx context.Context, n int, qs ...Query) (bool, error) {
	if n < 0 {
		return false, errx.New(
			"n must be greater than or equal to 0",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidArgument),
		)
	}

	q := r.idb.NewSelect().Model((*E)(nil))
	q = applyQueries(q, qs)
	q = q.ColumnExpr("1").Limit(n + 1)

	ones := make([]int, 0, n+1)
	if err := q.Scan(ctx, &ones); err != nil {
		return false, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return len(ones) == n, nil
}
