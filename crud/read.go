package crud

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/uptrace/bun"

	"github.com/code19m/errx"
	"github.com/crudkit/pkg/pagination"
	"github.com/crudkit/pkg/pg"
)

// Get looks up a record by its primary key. Returns (nil, nil) when no row
// matches; absence is not an error.
func (r *CRUD[E, C, P, U]) Get(ctx context.Context, id any) (*E, error) {
	pk, err := r.singlePK()
	if err != nil {
		return nil, err
	}

	recs := make([]E, 0, 1)
	q := r.idb.NewSelect().Model(&recs).Where("? = ?", bun.Ident(pk.Name), id).Limit(1)

	if err := q.Scan(ctx); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if len(recs) == 0 {
		return nil, nil //nolint:nilnil // absence is not an error on plain lookups
	}
	return &recs[0], nil
}

// GetOr404 looks up a record by its primary key and fails with a not-found
// error when no row matches. An optional msg overrides the default
// "<resource> not found" message.
func (r *CRUD[E, C, P, U]) GetOr404(ctx context.Context, id any, msg ...string) (*E, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, r.notFound(strings.Join(msg, " "))
	}
	return rec, nil
}

// List returns all records matching the customized query. Rows are
// deduplicated by primary-key identity, since joins added by a customizer may
// repeat parent rows.
func (r *CRUD[E, C, P, U]) List(ctx context.Context, qs ...Query) ([]E, error) {
	recs := make([]E, 0)
	q := r.idb.NewSelect().Model(&recs)
	q = applyQueries(q, qs)

	if err := q.Scan(ctx); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return r.uniqueByPK(recs), nil
}

// ListPage returns one page of records matching the customized query
// together with the total number of matching rows. The total is computed
// over the same predicate with the pagination clause stripped.
func (r *CRUD[E, C, P, U]) ListPage(ctx context.Context, p pagination.Pager, qs ...Query) ([]E, int, error) {
	offset, limit, err := p.OffsetLimit()
	if err != nil {
		return nil, 0, err
	}

	recs := make([]E, 0, limit)
	q := r.idb.NewSelect().Model(&recs)
	q = applyQueries(q, qs)
	q = q.Limit(limit).Offset(offset)

	if err := q.Scan(ctx); err != nil {
		return nil, 0, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	total, err := r.Count(ctx, qs...)
	if err != nil {
		return nil, 0, err
	}

	return r.uniqueByPK(recs), total, nil
}

// GetOne fetches at most one record matching the customized query.
// Returns (nil, nil) when no row matches and a conflict error when more than
// one row matches.
func (r *CRUD[E, C, P, U]) GetOne(ctx context.Context, qs ...Query) (*E, error) {
	recs, err := r.fetchUpToTwo(ctx, qs)
	if err != nil {
		return nil, err
	}

	switch len(recs) {
	case 0:
		return nil, nil //nolint:nilnil // absence is not an error here
	case 1:
		return &recs[0], nil
	default:
		return nil, errx.New(
			fmt.Sprintf("multiple %s found", r.resourceName),
			errx.WithType(errx.T_Conflict),
			errx.WithCode(CodeMultipleRowsFound),
		)
	}
}

// GetOneOrNil behaves like GetOne but suppresses the multiple-rows error:
// it returns (nil, nil) both when no row and when more than one row matches.
func (r *CRUD[E, C, P, U]) GetOneOrNil(ctx context.Context, qs ...Query) (*E, error) {
	recs, err := r.fetchUpToTwo(ctx, qs)
	if err != nil {
		return nil, err
	}
	if len(recs) != 1 {
		return nil, nil //nolint:nilnil // zero or ambiguous matches yield nil by contract
	}
	return &recs[0], nil
}

// GetOneOr404 fetches exactly one record matching the customized query.
// Absence fails with a not-found error (msg404, or the default message when
// empty); an ambiguous match fails with a conflict error carrying
// msgMultiple, signaling a bad filter rather than a missing resource.
func (r *CRUD[E, C, P, U]) GetOneOr404(ctx context.Context, msg404, msgMultiple string, qs ...Query) (*E, error) {
	rec, err := r.GetOne(ctx, qs...)
	if err != nil {
		if errx.IsCodeIn(err, CodeMultipleRowsFound) && msgMultiple != "" {
			return nil, errx.New(
				msgMultiple,
				errx.WithType(errx.T_Conflict),
				errx.WithCode(CodeMultipleRowsFound),
			)
		}
		return nil, err
	}
	if rec == nil {
		return nil, r.notFound(msg404)
	}
	return rec, nil
}

// fetchUpToTwo scans at most two rows so single-row fetches can distinguish
// "one" from "many" without materializing the full matching set.
func (r *CRUD[E, C, P, U]) fetchUpToTwo(ctx context.Context, qs []Query) ([]E, error) {
	recs := make([]E, 0, 2)
	q := r.idb.NewSelect().Model(&recs)
	q = applyQueries(q, qs)
	q = q.Limit(2) //nolint:mnd // limit 2 to detect multiple rows

	if err := q.Scan(ctx); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}
	return recs, nil
}

// uniqueByPK removes duplicates by primary-key identity while preserving
// order. Records without a mapped primary key are returned as-is.
func (r *CRUD[E, C, P, U]) uniqueByPK(recs []E) []E {
	pks := r.table().PKs
	if len(pks) == 0 || len(recs) < 2 {
		return recs
	}

	return lo.UniqBy(recs, func(rec E) string {
		rv := reflect.ValueOf(&rec).Elem()
		var b strings.Builder
		for _, f := range pks {
			b.WriteString(cast.ToString(f.Value(rv).Interface()))
			b.WriteByte(0x1f)
		}
		return b.String()
	})
}
