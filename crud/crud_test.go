package crud_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/crudkit/pkg/crud"
	"github.com/crudkit/pkg/pagination"
)

type book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        int64  `bun:"id,pk,autoincrement"`
	Title     string `bun:"title,notnull"`
	Pages     int    `bun:"pages"`
	AuthorID  int64  `bun:"author_id"`
	IsDeleted bool   `bun:"is_deleted,notnull,default:false"`
}

type bookCreate struct {
	Title    string `json:"title" validate:"required"`
	Pages    int    `json:"pages"`
	AuthorID int64  `json:"author_id"`
}

func (b bookCreate) ToMap() map[string]any {
	return map[string]any{
		"title":     b.Title,
		"pages":     b.Pages,
		"author_id": b.AuthorID,
	}
}

type bookPatch struct {
	Title *string `json:"title"`
	Pages *int    `json:"pages"`
}

func (b bookPatch) ToPartialMap() map[string]any {
	fields := make(map[string]any)
	if b.Title != nil {
		fields["title"] = *b.Title
	}
	if b.Pages != nil {
		fields["pages"] = *b.Pages
	}
	return fields
}

type bookUpsert struct {
	ID       int64  `json:"id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Pages    int    `json:"pages"`
	AuthorID int64  `json:"author_id"`
}

func (b bookUpsert) ToMap() map[string]any {
	return map[string]any{
		"id":         b.ID,
		"title":      b.Title,
		"pages":      b.Pages,
		"author_id":  b.AuthorID,
		"is_deleted": false,
	}
}

// setting has a primary key that is not named "id", to exercise the
// hard-delete precondition.
type setting struct {
	bun.BaseModel `bun:"table:settings,alias:s"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value"`
}

type settingInput struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

func (s settingInput) ToMap() map[string]any {
	return map[string]any{"key": s.Key, "value": s.Value}
}

type settingPatch struct {
	Value *string `json:"value"`
}

func (s settingPatch) ToPartialMap() map[string]any {
	fields := make(map[string]any)
	if s.Value != nil {
		fields["value"] = *s.Value
	}
	return fields
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive for the
	// whole test.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	_, err = db.NewCreateTable().Model((*book)(nil)).Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewCreateTable().Model((*setting)(nil)).Exec(ctx)
	require.NoError(t, err)

	return db
}

func newBookRepo(db bun.IDB) *crud.CRUD[book, bookCreate, bookPatch, bookUpsert] {
	return crud.New[book, bookCreate, bookPatch, bookUpsert](db)
}

func newSettingRepo(db bun.IDB) *crud.CRUD[setting, settingInput, settingPatch, settingInput] {
	return crud.New[setting, settingInput, settingPatch, settingInput](db)
}

func seedBooks(t *testing.T, repo *crud.CRUD[book, bookCreate, bookPatch, bookUpsert], ins ...bookCreate) []book {
	t.Helper()
	recs, err := repo.CreateMany(context.Background(), ins)
	require.NoError(t, err)
	require.Len(t, recs, len(ins))
	return recs
}

func whereTitle(title string) crud.Query {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("title = ?", title)
	}
}

func whereAuthor(id int64) crud.Query {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("author_id = ?", id)
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))

	t.Run("returns stored row with generated id", func(t *testing.T) {
		rec, err := repo.Create(ctx, bookCreate{Title: "Dune", Pages: 412, AuthorID: 1})
		require.NoError(t, err)
		assert.NotZero(t, rec.ID)
		assert.Equal(t, "Dune", rec.Title)
		assert.Equal(t, 412, rec.Pages)
		assert.False(t, rec.IsDeleted)
	})

	t.Run("rejects invalid input before touching the database", func(t *testing.T) {
		_, err := repo.Create(ctx, bookCreate{Pages: 100})
		require.Error(t, err)

		e := errx.AsErrorX(err)
		assert.Equal(t, errx.T_Validation, e.Type())
		assert.Contains(t, e.Fields(), "title")
	})
}

func TestCreateMany(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))

	t.Run("inserts batch and returns stored rows", func(t *testing.T) {
		recs, err := repo.CreateMany(ctx, []bookCreate{
			{Title: "Dune", AuthorID: 1},
			{Title: "Hyperion", AuthorID: 2},
		})
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.NotEqual(t, recs[0].ID, recs[1].ID)
	})

	t.Run("empty batch is invalid", func(t *testing.T) {
		_, err := repo.CreateMany(ctx, nil)
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, crud.CodeInvalidArgument))
	})
}

func TestCreateNoReturning(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))

	err := repo.CreateNoReturning(ctx,
		bookCreate{Title: "Dune", AuthorID: 1},
		bookCreate{Title: "Hyperion", AuthorID: 2},
	)
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	recs := seedBooks(t, repo, bookCreate{Title: "Dune", AuthorID: 1})

	t.Run("found", func(t *testing.T) {
		rec, err := repo.Get(ctx, recs[0].ID)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "Dune", rec.Title)
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		rec, err := repo.Get(ctx, int64(9999))
		require.NoError(t, err)
		assert.Nil(t, rec)
	})
}

func TestGetOr404(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	recs := seedBooks(t, repo, bookCreate{Title: "Dune", AuthorID: 1})

	t.Run("found", func(t *testing.T) {
		rec, err := repo.GetOr404(ctx, recs[0].ID)
		require.NoError(t, err)
		assert.Equal(t, recs[0].ID, rec.ID)
	})

	t.Run("miss fails with default message", func(t *testing.T) {
		_, err := repo.GetOr404(ctx, int64(9999))
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, crud.CodeObjectNotFound))
		assert.Equal(t, "book not found", errx.AsErrorX(err).Error())
	})

	t.Run("miss fails with custom message", func(t *testing.T) {
		_, err := repo.GetOr404(ctx, int64(9999), "that book is gone")
		require.Error(t, err)
		assert.Equal(t, "that book is gone", errx.AsErrorX(err).Error())
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	seedBooks(t, repo,
		bookCreate{Title: "Dune", AuthorID: 1},
		bookCreate{Title: "Dune Messiah", AuthorID: 1},
		bookCreate{Title: "Hyperion", AuthorID: 2},
	)

	t.Run("all records", func(t *testing.T) {
		recs, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, recs, 3)
	})

	t.Run("customized query narrows the set", func(t *testing.T) {
		recs, err := repo.List(ctx, whereAuthor(1))
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("empty result yields empty slice", func(t *testing.T) {
		recs, err := repo.List(ctx, whereAuthor(42))
		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}

func TestListPage(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	ins := make([]bookCreate, 0, 5)
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		ins = append(ins, bookCreate{Title: title, AuthorID: 1})
	}
	seedBooks(t, repo, ins...)

	t.Run("first page with total over full set", func(t *testing.T) {
		recs, total, err := repo.ListPage(ctx, pagination.PageSize{Page: 1, Size: 2})
		require.NoError(t, err)
		assert.Len(t, recs, 2)
		assert.Equal(t, 5, total)
	})

	t.Run("last partial page", func(t *testing.T) {
		recs, total, err := repo.ListPage(ctx, pagination.PageSize{Page: 3, Size: 2})
		require.NoError(t, err)
		assert.Len(t, recs, 1)
		assert.Equal(t, 5, total)
	})

	t.Run("offset limit pager", func(t *testing.T) {
		recs, total, err := repo.ListPage(ctx, pagination.OffsetLimit{Offset: 4, Limit: 3})
		require.NoError(t, err)
		assert.Len(t, recs, 1)
		assert.Equal(t, 5, total)
	})

	t.Run("invalid page is rejected", func(t *testing.T) {
		_, _, err := repo.ListPage(ctx, pagination.PageSize{Page: 0, Size: 2})
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, pagination.CodeInvalidArgument))
	})
}

func TestGetOne(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	seedBooks(t, repo,
		bookCreate{Title: "Dune", AuthorID: 1},
		bookCreate{Title: "Dune Messiah", AuthorID: 1},
		bookCreate{Title: "Hyperion", AuthorID: 2},
	)

	t.Run("single match", func(t *testing.T) {
		rec, err := repo.GetOne(ctx, whereTitle("Hyperion"))
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "Hyperion", rec.Title)
	})

	t.Run("no match returns nil without error", func(t *testing.T) {
		rec, err := repo.GetOne(ctx, whereTitle("Endymion"))
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("ambiguous match is a conflict", func(t *testing.T) {
		_, err := repo.GetOne(ctx, whereAuthor(1))
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, crud.CodeMultipleRowsFound))
	})
}

func TestGetOneOrNil(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	seedBooks(t, repo,
		bookCreate{Title: "Dune", AuthorID: 1},
		bookCreate{Title: "Dune Messiah", AuthorID: 1},
	)

	t.Run("single match", func(t *testing.T) {
		rec, err := repo.GetOneOrNil(ctx, whereTitle("Dune"))
		require.NoError(t, err)
		require.NotNil(t, rec)
	})

	t.Run("ambiguous match is suppressed", func(t *testing.T) {
		rec, err := repo.GetOneOrNil(ctx, whereAuthor(1))
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("no match", func(t *testing.T) {
		rec, err := repo.GetOneOrNil(ctx, whereTitle("Endymion"))
		require.NoError(t, err)
		assert.Nil(t, rec)
	})
}

func TestGetOneOr404(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	seedBooks(t, repo,
		bookCreate{Title: "Dune", AuthorID: 1},
		bookCreate{Title: "Dune Messiah", AuthorID: 1},
	)

	t.Run("single match", func(t *testing.T) {
		rec, err := repo.GetOneOr404(ctx, "", "", whereTitle("Dune"))
		require.NoError(t, err)
		assert.Equal(t, "Dune", rec.Title)
	})

	t.Run("no match fails with given message", func(t *testing.T) {
		_, err := repo.GetOneOr404(ctx, "no such book", "", whereTitle("Endymion"))
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, crud.CodeObjectNotFound))
		assert.Equal(t, "no such book", errx.AsErrorX(err).Error())
	})

	t.Run("ambiguous match carries the multiple message", func(t *testing.T) {
		_, err := repo.GetOneOr404(ctx, "", "filter too broad", whereAuthor(1))
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, crud.CodeMultipleRowsFound))
		assert.Equal(t, "filter too broad", errx.AsErrorX(err).Error())
	})
}

func TestListColumns(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	seedBooks(t, repo,
		bookCreate{Title: "Dune", Pages: 412, AuthorID: 1},
		bookCreate{Title: "Hyperion", Pages: 482, AuthorID: 2},
	)

	t.Run("projected rows as mappings", func(t *testing.T) {
		rows, err := repo.ListColumns(ctx, []string{"title", "pages"})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Contains(t, row, "title")
			assert.Contains(t, row, "pages")
			assert.NotContains(t, row, "author_id")
		}
	})

	t.Run("empty projection is invalid", func(t *testing.T) {
		_, err := repo.ListColumns(ctx, nil)
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, crud.CodeInvalidArgument))
	})

	t.Run("full column set is rejected", func(t *testing.T) {
		all := []string{"id", "title", "pages", "author_id", "is_deleted"}
		_, err := repo.ListColumns(ctx, all)
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, crud.CodeInvalidArgument))
	})
}

func TestListColumnsPage(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	seedBooks(t, repo,
		bookCreate{Title: "a", AuthorID: 1},
		bookCreate{Title: "b", AuthorID: 1},
		bookCreate{Title: "c", AuthorID: 2},
	)

	rows, total, err := repo.ListColumnsPage(ctx, pagination.PageSize{Page: 1, Size: 2}, []string{"title"}, whereAuthor(1))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 2, total)
}

func TestGetOneColumns(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	seedBooks(t, repo,
		bookCreate{Title: "Dune", Pages: 412, AuthorID: 1},
		bookCreate{Title: "Dune Messiah", Pages: 256, AuthorID: 1},
	)

	t.Run("single match", func(t *testing.T) {
		row, err := repo.GetOneColumns(ctx, []string{"title"}, whereTitle("Dune"))
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, "Dune", row["title"])
	})

	t.Run("no match returns nil", func(t *testing.T) {
		row, err := repo.GetOneColumns(ctx, []string{"title"}, whereTitle("Endymion"))
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("ambiguous match is a conflict", func(t *testing.T) {
		_, err := repo.GetOneColumns(ctx, []string{"title"}, whereAuthor(1))
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, crud.CodeMultipleRowsFound))
	})
}

func TestCount(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	seedBooks(t, repo,
		bookCreate{Title: "a", AuthorID: 1},
		bookCreate{Title: "b", AuthorID: 1},
		bookCreate{Title: "c", AuthorID: 2},
	)

	t.Run("full set", func(t *testing.T) {
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("filtered", func(t *testing.T) {
		count, err := repo.Count(ctx, whereAuthor(1))
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("pagination clauses are stripped", func(t *testing.T) {
		count, err := repo.Count(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Limit(1).Offset(1)
		})
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("empty set", func(t *testing.T) {
		count, err := repo.Count(ctx, whereAuthor(42))
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	seedBooks(t, repo, bookCreate{Title: "Dune", AuthorID: 1})

	t.Run("match", func(t *testing.T) {
		ok, err := repo.Exists(ctx, whereAuthor(1))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("no match", func(t *testing.T) {
		ok, err := repo.Exists(ctx, whereAuthor(42))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestExistsN(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	seedBooks(t, repo,
		bookCreate{Title: "a", AuthorID: 1},
		bookCreate{Title: "b", AuthorID: 1},
		bookCreate{Title: "c", AuthorID: 2},
	)

	t.Run("exact cardinality", func(t *testing.T) {
		ok, err := repo.ExistsN(ctx, 2, whereAuthor(1))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("fewer rows than n", func(t *testing.T) {
		ok, err := repo.ExistsN(ctx, 3, whereAuthor(1))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("more rows than n", func(t *testing.T) {
		ok, err := repo.ExistsN(ctx, 1, whereAuthor(1))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("zero rows expected", func(t *testing.T) {
		ok, err := repo.ExistsN(ctx, 0, whereAuthor(42))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("negative n is invalid", func(t *testing.T) {
		_, err := repo.ExistsN(ctx, -1)
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, crud.CodeInvalidArgument))
		assert.Equal(t, "n must be greater than or equal to 0", errx.AsErrorX(err).Error())
	})
}

func TestPatch(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	recs := seedBooks(t, repo, bookCreate{Title: "Dune", Pages: 412, AuthorID: 1})

	t.Run("only set fields are written", func(t *testing.T) {
		title := "Dune (revised)"
		_, err := repo.Patch(ctx, &recs[0], bookPatch{Title: &title})
		require.NoError(t, err)

		got, err := repo.Get(ctx, recs[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune (revised)", got.Title)
		assert.Equal(t, 412, got.Pages)
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		rec, err := repo.Patch(ctx, &recs[0], bookPatch{})
		require.NoError(t, err)
		assert.NotNil(t, rec)
	})
}

func TestPatchMap(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	recs := seedBooks(t, repo, bookCreate{Title: "Dune", Pages: 412, AuthorID: 1})

	_, err := repo.PatchMap(ctx, &recs[0], map[string]any{"pages": 500})
	require.NoError(t, err)

	got, err := repo.Get(ctx, recs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 500, got.Pages)
	assert.Equal(t, "Dune", got.Title)
}

func TestSoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))
	recs := seedBooks(t, repo, bookCreate{Title: "Dune", AuthorID: 1})

	t.Run("marks the record deleted", func(t *testing.T) {
		_, err := repo.SoftDelete(ctx, recs[0].ID)
		require.NoError(t, err)

		got, err := repo.Get(ctx, recs[0].ID)
		require.NoError(t, err)
		assert.True(t, got.IsDeleted)
	})

	t.Run("missing id fails with not found", func(t *testing.T) {
		_, err := repo.SoftDelete(ctx, int64(9999))
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, crud.CodeObjectNotFound))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := newBookRepo(db)
	recs := seedBooks(t, repo,
		bookCreate{Title: "Dune", AuthorID: 1},
		bookCreate{Title: "Hyperion", AuthorID: 2},
	)

	t.Run("removes the row and reports it", func(t *testing.T) {
		rows, err := repo.Delete(ctx, recs[0].ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, rows)

		got, err := repo.Get(ctx, recs[0].ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("missing id yields zero rows without error", func(t *testing.T) {
		rows, err := repo.Delete(ctx, int64(9999))
		require.NoError(t, err)
		assert.EqualValues(t, 0, rows)
	})

	t.Run("schema without an id column is a precondition failure", func(t *testing.T) {
		settings := newSettingRepo(db)
		_, err := settings.Delete(ctx, "theme")
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, crud.CodePreconditionFailed))
	})
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()
	repo := newBookRepo(newTestDB(t))

	t.Run("inserts then updates by key", func(t *testing.T) {
		err := repo.Upsert(ctx, []bookUpsert{
			{ID: 1, Title: "Dune", Pages: 412, AuthorID: 1},
			{ID: 2, Title: "Hyperion", Pages: 482, AuthorID: 2},
		})
		require.NoError(t, err)

		err = repo.Upsert(ctx, []bookUpsert{
			{ID: 1, Title: "Dune (revised)", Pages: 420, AuthorID: 1},
		})
		require.NoError(t, err)

		got, err := repo.Get(ctx, int64(1))
		require.NoError(t, err)
		assert.Equal(t, "Dune (revised)", got.Title)
		assert.Equal(t, 420, got.Pages)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("duplicate keys in one batch collapse to the last entry", func(t *testing.T) {
		err := repo.Upsert(ctx, []bookUpsert{
			{ID: 3, Title: "first write", AuthorID: 1},
			{ID: 3, Title: "second write", AuthorID: 1},
		})
		require.NoError(t, err)

		got, err := repo.Get(ctx, int64(3))
		require.NoError(t, err)
		assert.Equal(t, "second write", got.Title)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, nil))
	})

	t.Run("invalid entry fails the whole batch", func(t *testing.T) {
		err := repo.Upsert(ctx, []bookUpsert{{ID: 4}})
		require.Error(t, err)
		assert.Equal(t, errx.T_Validation, errx.AsErrorX(err).Type())
	})
}

func TestWithDB(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := newBookRepo(db)

	t.Run("rolled back transaction leaves no rows", func(t *testing.T) {
		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)

		txRepo := repo.WithDB(tx)
		_, err = txRepo.Create(ctx, bookCreate{Title: "Dune", AuthorID: 1})
		require.NoError(t, err)

		require.NoError(t, tx.Rollback())

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("committed transaction persists rows", func(t *testing.T) {
		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)

		txRepo := repo.WithDB(tx)
		_, err = txRepo.Create(ctx, bookCreate{Title: "Hyperion", AuthorID: 2})
		require.NoError(t, err)

		require.NoError(t, tx.Commit())

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestWithResourceName(t *testing.T) {
	ctx := context.Background()
	repo := crud.New[book, bookCreate, bookPatch, bookUpsert](
		newTestDB(t),
		crud.WithResourceName("novel"),
	)

	_, err := repo.GetOr404(ctx, int64(9999))
	require.Error(t, err)
	assert.Equal(t, "novel not found", errx.AsErrorX(err).Error())
}
