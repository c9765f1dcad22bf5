package crud

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/code19m/errx"
	"github.com/crudkit/pkg/pg"
	"github.com/crudkit/pkg/val"
)

// Create validates the input, inserts one record and returns the stored row
// including generated columns.
func (r *CRUD[E, C, P, U]) Create(ctx context.Context, in C) (*E, error) {
	if err := val.ValidateSchema(in); err != nil {
		return nil, err
	}

	row := in.ToMap()
	rec := new(E)

	q := r.insertQuery(&row).Returning("*")
	if _, err := q.Exec(ctx, rec); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return rec, nil
}

// CreateMany validates the inputs and inserts them with a single batched
// statement, returning the stored rows. The input must not be empty.
func (r *CRUD[E, C, P, U]) CreateMany(ctx context.Context, ins []C) ([]E, error) {
	rows, err := r.insertRows(ins)
	if err != nil {
		return nil, err
	}

	recs := make([]E, 0, len(ins))
	q := r.insertQuery(&rows).Returning("*")
	if _, err := q.Exec(ctx, &recs); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return recs, nil
}

// CreateNoReturning validates the inputs and inserts them with a single
// batched statement without reading anything back. Use it for bulk loads
// where the generated values are not needed.
func (r *CRUD[E, C, P, U]) CreateNoReturning(ctx context.Context, ins ...C) error {
	rows, err := r.insertRows(ins)
	if err != nil {
		return err
	}

	q := r.insertQuery(&rows)
	if _, err := q.Exec(ctx); err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return nil
}

// Patch applies only the explicitly set fields of the patch input to the
// given record and persists them by primary key. The record is refreshed
// from the returning clause.
func (r *CRUD[E, C, P, U]) Patch(ctx context.Context, rec *E, patch P) (*E, error) {
	return r.PatchMap(ctx, rec, patch.ToPartialMap())
}

// PatchMap is Patch with a raw column→value mapping, bypassing the input
// shape's unset tracking. An empty mapping is a no-op.
func (r *CRUD[E, C, P, U]) PatchMap(ctx context.Context, rec *E, fields map[string]any) (*E, error) {
	if len(fields) == 0 {
		return rec, nil
	}

	q := r.idb.NewUpdate().Model(rec).WherePK().Returning("*")

	cols := lo.Keys(fields)
	slices.Sort(cols)
	for _, col := range cols {
		q = q.Set("? = ?", bun.Ident(col), fields[col])
	}

	if _, err := q.Exec(ctx); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return rec, nil
}

// SoftDelete marks the record with the given id as deleted by setting the
// configured soft-delete column. Fails with a not-found error when the id
// does not exist.
func (r *CRUD[E, C, P, U]) SoftDelete(ctx context.Context, id any) (*E, error) {
	rec, err := r.GetOr404(ctx, id)
	if err != nil {
		return nil, err
	}

	r.debugf("soft deleting %s id=%v", r.resourceName, id)

	return r.PatchMap(ctx, rec, map[string]any{r.softDeleteCol: true})
}

// Delete removes the record with the given id and returns the number of rows
// removed; a missing id yields 0, not an error. Fails with a precondition
// error when the record schema has no primary-key column named "id".
func (r *CRUD[E, C, P, U]) Delete(ctx context.Context, id any) (int64, error) {
	hasID := slices.ContainsFunc(r.table().PKs, func(f *schema.Field) bool { return f.Name == "id" })
	if !hasID {
		return 0, errx.New(
			fmt.Sprintf("%s schema has no primary key column named id", r.resourceName),
			errx.WithCode(CodePreconditionFailed),
		)
	}

	q := r.idb.NewDelete().Model((*E)(nil)).Where("? = ?", bun.Ident("id"), id)

	res, err := q.Exec(ctx)
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, errx.Wrap(err)
	}

	return rows, nil
}

// Upsert validates the inputs and writes them with one batched insert whose
// conflict clause targets the primary-key columns and updates every non-key
// column to the incoming value. Entries sharing a key within the batch are
// collapsed keeping the last one, so the statement stays deterministic and
// last-write-wins per key. An empty batch is a no-op.
func (r *CRUD[E, C, P, U]) Upsert(ctx context.Context, items []U) error {
	if len(items) == 0 {
		return nil
	}

	t := r.table()
	if len(t.PKs) == 0 {
		return errx.New(
			r.resourceName+" schema has no primary key columns",
			errx.WithCode(CodePreconditionFailed),
		)
	}

	for _, it := range items {
		if err := val.ValidateSchema(it); err != nil {
			return err
		}
	}

	rows := r.collapseByPK(items)
	if len(rows) < len(items) {
		r.debugf("upsert for %s collapsed %d duplicate keys", r.resourceName, len(items)-len(rows))
	}

	pkCols := lo.Map(t.PKs, func(f *schema.Field, _ int) string { return f.Name })

	q := r.insertQuery(&rows)
	q = q.On("CONFLICT (?) DO UPDATE", bun.Safe(strings.Join(pkCols, ", ")))
	for _, f := range t.DataFields {
		q = q.Set("? = EXCLUDED.?", bun.Ident(f.Name), bun.Ident(f.Name))
	}

	if _, err := q.Exec(ctx); err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return nil
}

// insertQuery builds an insert over the record's table from a map model.
func (r *CRUD[E, C, P, U]) insertQuery(model any) *bun.InsertQuery {
	return r.idb.NewInsert().Model(model).TableExpr("?", bun.Ident(r.table().Name))
}

// insertRows validates the inputs and serializes them to column mappings.
func (r *CRUD[E, C, P, U]) insertRows(ins []C) ([]map[string]any, error) {
	if len(ins) == 0 {
		return nil, errx.New(
			"at least one item is required",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidArgument),
		)
	}

	rows := make([]map[string]any, 0, len(ins))
	for _, in := range ins {
		if err := val.ValidateSchema(in); err != nil {
			return nil, err
		}
		rows = append(rows, in.ToMap())
	}

	return rows, nil
}

// collapseByPK serializes the upsert inputs and keeps only the last entry
// per primary-key value, preserving first-seen order.
func (r *CRUD[E, C, P, U]) collapseByPK(items []U) []map[string]any {
	pks := r.table().PKs

	seen := make(map[string]int, len(items))
	rows := make([]map[string]any, 0, len(items))

	for _, it := range items {
		row := it.ToMap()

		var b strings.Builder
		for _, f := range pks {
			b.WriteString(cast.ToString(row[f.Name]))
			b.WriteByte(0x1f)
		}
		key := b.String()

		if i, ok := seen[key]; ok {
			rows[i] = row
			continue
		}
		seen[key] = len(rows)
		rows = append(rows, row)
	}

	return rows
}
