// Package crud provides a generic repository that removes the boilerplate of
// building HTTP CRUD endpoints on top of the bun ORM.
//
// A repository is parameterized over a bun-mapped record type and its
// create/patch/upsert input shapes. It offers create, point lookup, filtered
// multi-fetch with optional pagination and column projection, single-row
// fetch, partial update, soft delete, hard delete, upsert, and
// counting/existence helpers. All statements are issued against an externally
// supplied bun.IDB; the repository keeps no per-call state beyond its
// configuration.
package crud

import (
	"reflect"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/code19m/errx"
	"github.com/crudkit/pkg/logger"
)

// Error codes returned by repository operations.
const (
	// CodeInvalidArgument indicates caller misuse: bad pagination numbers,
	// a negative exact-count bound, or a column projection that selects
	// every column of the record.
	CodeInvalidArgument = "INVALID_ARGUMENT"

	// CodeObjectNotFound indicates a point lookup or single-row fetch miss.
	CodeObjectNotFound = "OBJECT_NOT_FOUND"

	// CodeMultipleRowsFound indicates an ambiguous single-row fetch.
	CodeMultipleRowsFound = "MULTIPLE_ROWS_FOUND"

	// CodePreconditionFailed indicates a misconfigured repository, such as a
	// record schema without the expected primary key. It is a programming
	// error, not a runtime condition.
	CodePreconditionFailed = "PRECONDITION_FAILED"
)

const defaultSoftDeleteColumn = "is_deleted"

// Query narrows or reshapes the base select query of a repository operation.
// The default is identity.
type Query func(*bun.SelectQuery) *bun.SelectQuery

// Mapper is implemented by validated input shapes that serialize every field
// to a column→value mapping. Create and upsert inputs must implement it.
type Mapper interface {
	ToMap() map[string]any
}

// PartialMapper is implemented by patch input shapes that serialize only the
// explicitly set fields to a column→value mapping. Fields absent from the
// mapping are never written.
type PartialMapper interface {
	ToPartialMap() map[string]any
}

// CRUD is a generic repository bound to one record type E with create input
// C, patch input P and upsert input U.
//
// The repository issues statements through the bun.IDB it was constructed
// with. Bound to a *bun.DB every statement is committed on its own; rebind to
// a bun.Tx via WithDB to batch several calls into one externally managed
// transaction.
type CRUD[E any, C Mapper, P PartialMapper, U Mapper] struct {
	idb           bun.IDB
	resourceName  string
	softDeleteCol string
	log           logger.Logger
}

type options struct {
	resourceName  string
	softDeleteCol string
	log           logger.Logger
}

// Option configures a repository at construction time.
type Option func(*options)

// WithResourceName sets the human-readable resource name used in error
// messages. Defaults to the record type name.
func WithResourceName(name string) Option {
	return func(o *options) {
		o.resourceName = name
	}
}

// WithSoftDeleteColumn sets the column toggled by SoftDelete.
// Defaults to "is_deleted".
func WithSoftDeleteColumn(column string) Option {
	return func(o *options) {
		o.softDeleteCol = column
	}
}

// WithLogger attaches a logger used for debug output. Without it the
// repository stays silent.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// New creates a repository for record type E over the given bun.IDB.
func New[E any, C Mapper, P PartialMapper, U Mapper](idb bun.IDB, opts ...Option) *CRUD[E, C, P, U] {
	o := options{
		softDeleteCol: defaultSoftDeleteColumn,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.resourceName == "" {
		o.resourceName = nameOf(new(E))
	}

	return &CRUD[E, C, P, U]{
		idb:           idb,
		resourceName:  o.resourceName,
		softDeleteCol: o.softDeleteCol,
		log:           o.log,
	}
}

// WithDB returns a copy of the repository bound to the given bun.IDB.
// Pass a bun.Tx to run several repository calls in one transaction; commit
// and rollback remain the caller's responsibility.
func (r *CRUD[E, C, P, U]) WithDB(idb bun.IDB) *CRUD[E, C, P, U] {
	clone := *r
	clone.idb = idb
	return &clone
}

// table returns the bun schema description of E: table name, primary-key
// column set and the full column set.
func (r *CRUD[E, C, P, U]) table() *schema.Table {
	return r.idb.Dialect().Tables().Get(reflect.TypeFor[E]())
}

// singlePK returns the sole primary-key field of E, or a precondition error
// when E has no or a composite primary key.
func (r *CRUD[E, C, P, U]) singlePK() (*schema.Field, error) {
	pks := r.table().PKs
	if len(pks) != 1 {
		return nil, errx.New(
			r.resourceName+" must have exactly one primary key column for id lookups",
			errx.WithCode(CodePreconditionFailed),
		)
	}
	return pks[0], nil
}

func (r *CRUD[E, C, P, U]) notFound(msg string) error {
	if msg == "" {
		msg = r.resourceName + " not found"
	}
	return errx.New(msg, errx.WithType(errx.T_NotFound), errx.WithCode(CodeObjectNotFound))
}

func (r *CRUD[E, C, P, U]) debugf(format string, args ...any) {
	if r.log != nil {
		r.log.Debugf(format, args...)
	}
}

// applyQueries applies the customizers in order, skipping nil entries.
func applyQueries(q *bun.SelectQuery, qs []Query) *bun.SelectQuery {
	for _, fn := range qs {
		if fn != nil {
			q = fn(q)
		}
	}
	return q
}

// nameOf returns the name of the type of the given value.
// If the value is a pointer, it returns the name of the pointed-to type.
func nameOf(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		return t.Elem().Name()
	}
	return t.Name()
}
