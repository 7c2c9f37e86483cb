package pgexec

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/bulkload/pkg/bulkload"
)

type executed struct {
	sql  string
	args []any
}

type fakeQueryer struct {
	executed []executed
	err      error
}

func (f *fakeQueryer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.executed = append(f.executed, executed{sql: sql, args: args})
	if f.err != nil {
		return pgconn.CommandTag{}, f.err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestExecutor_Insert(t *testing.T) {
	db := &fakeQueryer{}
	exec := New(db)

	rows := []bulkload.Row{
		{"email": "a@x", "name": "a"},
		{"email": "b@x", "name": "b"},
	}
	err := exec.Insert(context.Background(), bulkload.Table{Schema: "app", Name: "users"}, rows)
	require.NoError(t, err)

	require.Len(t, db.executed, 1)
	assert.Equal(t,
		`INSERT INTO "app"."users" ("email", "name") VALUES ($1, $2), ($3, $4)`,
		db.executed[0].sql)
	assert.Equal(t, []any{"a@x", "a", "b@x", "b"}, db.executed[0].args)
}

func TestExecutor_Insert_EmptyChunkIsNoop(t *testing.T) {
	db := &fakeQueryer{}
	exec := New(db)

	require.NoError(t, exec.Insert(context.Background(), bulkload.Table{Name: "users"}, nil))
	assert.Empty(t, db.executed)
}

func TestExecutor_Insert_PropagatesDriverError(t *testing.T) {
	cause := errors.New("relation \"users\" does not exist")
	db := &fakeQueryer{err: cause}
	exec := New(db)

	err := exec.Insert(context.Background(), bulkload.Table{Name: "users"}, []bulkload.Row{{"email": "a@x"}})
	assert.ErrorIs(t, err, cause)
}

func TestExecutor_Upsert(t *testing.T) {
	db := &fakeQueryer{}
	exec := New(db)

	rows := []bulkload.Row{{"email": "a@x", "name": "a"}}
	err := exec.Upsert(context.Background(), bulkload.Table{Name: "users"}, rows, []string{"email"})
	require.NoError(t, err)

	require.Len(t, db.executed, 1)
	assert.Equal(t,
		`INSERT INTO "users" ("email", "name") VALUES ($1, $2)`+
			` ON CONFLICT ("email") DO UPDATE SET "name" = EXCLUDED."name"`,
		db.executed[0].sql)
	assert.Equal(t, []any{"a@x", "a"}, db.executed[0].args)
}

func TestExecutor_Upsert_ConflictColumnNotInRows(t *testing.T) {
	db := &fakeQueryer{}
	exec := New(db)

	rows := []bulkload.Row{{"email": "a@x"}}
	err := exec.Upsert(context.Background(), bulkload.Table{Name: "users"}, rows, []string{"id"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "conflict columns")
	assert.Empty(t, db.executed, "invalid upserts must not reach the database")
}

func TestExecutor_Truncate(t *testing.T) {
	db := &fakeQueryer{}
	exec := New(db)

	err := exec.Truncate(context.Background(), bulkload.Table{Schema: "app", Name: "users"})
	require.NoError(t, err)

	require.Len(t, db.executed, 1)
	assert.Equal(t, `TRUNCATE TABLE "app"."users"`, db.executed[0].sql)
	assert.Empty(t, db.executed[0].args)
}

func TestNew_NilQueryerPanics(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}
