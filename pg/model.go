package pg

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// IDModel provides a conventional integer primary key named "id" that can be
// embedded in other models. The crud repository's delete-by-id operation
// requires a primary key with exactly this column name.
type IDModel struct {
	ID int64 `bun:"id,pk,autoincrement" json:"id"`
}

// Timestamps provides created_at/updated_at columns maintained automatically
// on insert and update.
type Timestamps struct {
	// CreatedAt stores the timestamp when the record was created.
	CreatedAt time.Time `bun:"created_at,nullzero" json:"created_at"`
	// UpdatedAt stores the timestamp when the record was last updated.
	UpdatedAt time.Time `bun:"updated_at,nullzero" json:"updated_at"`
}

// Verify that Timestamps implements bun.BeforeAppendModelHook.
var _ bun.BeforeAppendModelHook = (*Timestamps)(nil)

// BeforeAppendModel implements bun.BeforeAppendModelHook to refresh the
// timestamp columns before database operations.
func (m *Timestamps) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		m.CreatedAt = time.Now()
		m.UpdatedAt = time.Now()
	case *bun.UpdateQuery:
		m.UpdatedAt = time.Now()
	}
	return nil
}

// SoftDeleteModel provides the boolean flag column used by the crud
// repository's soft-delete operation under its default configuration.
type SoftDeleteModel struct {
	IsDeleted bool `bun:"is_deleted,notnull,default:false" json:"is_deleted"`
}

// NotDeleted narrows a query to rows whose soft-delete flag is unset.
// Intended to be used as a crud query customizer.
func NotDeleted(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("? = ?", bun.Ident("is_deleted"), false)
}
