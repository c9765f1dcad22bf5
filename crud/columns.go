package crud

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/code19m/errx"
	"github.com/crudkit/pkg/pagination"
	"github.com/crudkit/pkg/pg"
)

// ListColumns returns the given columns of every record matching the
// customized query as column-keyed mappings. Partial-column rows cannot be
// materialized as records, so selecting the full column set is rejected:
// use List instead.
func (r *CRUD[E, C, P, U]) ListColumns(ctx context.Context, cols []string, qs ...Query) ([]map[string]any, error) {
	if err := r.checkProjection(cols); err != nil {
		return nil, err
	}

	rows := make([]map[string]any, 0)
	q := r.idb.NewSelect().Model((*E)(nil)).Column(cols...)
	q = applyQueries(q, qs)

	if err := q.Scan(ctx, &rows); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return uniqueRows(rows, cols), nil
}

// ListColumnsPage is ListColumns with pagination. The total is computed over
// the filter predicate of the customized query; the projection itself never
// changes the count.
func (r *CRUD[E, C, P, U]) ListColumnsPage(
	ctx context.Context,
	p pagination.Pager,
	cols []string,
	qs ...Query,
) ([]map[string]any, int, error) {
	if err := r.checkProjection(cols); err != nil {
		return nil, 0, err
	}

	offset, limit, err := p.OffsetLimit()
	if err != nil {
		return nil, 0, err
	}

	rows := make([]map[string]any, 0, limit)
	q := r.idb.NewSelect().Model((*E)(nil)).Column(cols...)
	q = applyQueries(q, qs)
	q = q.Limit(limit).Offset(offset)

	if err := q.Scan(ctx, &rows); err != nil {
		return nil, 0, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	total, err := r.Count(ctx, qs...)
	if err != nil {
		return nil, 0, err
	}

	return uniqueRows(rows, cols), total, nil
}

// GetOneColumns fetches the given columns of at most one record matching the
// customized query. Returns (nil, nil) when no row matches and a conflict
// error when more than one row matches.
func (r *CRUD[E, C, P, U]) GetOneColumns(ctx context.Context, cols []string, qs ...Query) (map[string]any, error) {
	if err := r.checkProjection(cols); err != nil {
		return nil, err
	}

	rows := make([]map[string]any, 0, 2)
	q := r.idb.NewSelect().Model((*E)(nil)).Column(cols...)
	q = applyQueries(q, qs)
	q = q.Limit(2) //nolint:mnd // limit 2 to detect multiple rows

	if err := q.Scan(ctx, &rows); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return rows[0], nil
	default:
		return nil, errx.New(
			fmt.Sprintf("multiple %s found", r.resourceName),
			errx.WithType(errx.T_Conflict),
			errx.WithCode(CodeMultipleRowsFound),
		)
	}
}

// checkProjection rejects empty projections and projections covering the
// whole column set of the record.
func (r *CRUD[E, C, P, U]) checkProjection(cols []string) error {
	if len(cols) == 0 {
		return errx.New(
			"at least one column is required",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidArgument),
		)
	}

	fields := r.table().Fields
	if len(lo.Uniq(cols)) != len(fields) {
		return nil
	}
	for _, f := range fields {
		if !lo.Contains(cols, f.Name) {
			return nil
		}
	}

	return errx.New(
		"projection selects every column; use the whole-record methods instead",
		errx.WithType(errx.T_Validation),
		errx.WithCode(CodeInvalidArgument),
	)
}

// uniqueRows removes duplicate projected rows, comparing the selected
// columns only.
func uniqueRows(rows []map[string]any, cols []string) []map[string]any {
	if len(rows) < 2 {
		return rows
	}
	return lo.UniqBy(rows, func(row map[string]any) string {
		var b strings.Builder
		for _, c := range cols {
			b.WriteString(cast.ToString(row[c]))
			b.WriteByte(0x1f)
		}
		return b.String()
	})
}
