package unique_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/form"
	"github.com/dmitrymomot/formkit/unique"
)

type fakeRedis struct {
	existing int64
	err      error
	lastKeys []string
}

func (f *fakeRedis) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	f.lastKeys = keys
	return redis.NewIntResult(f.existing, f.err)
}

func emailKey(value any) string {
	return "user:email:" + value.(string)
}

func TestRedis(t *testing.T) {
	t.Parallel()

	t.Run("available value passes", func(t *testing.T) {
		t.Parallel()
		client := &fakeRedis{existing: 0}
		check := unique.Redis(client, emailKey, "email already taken")

		result, err := check(context.Background(), "new@example.com").AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, []string{"user:email:new@example.com"}, client.lastKeys)
	})

	t.Run("taken value fails with the configured message", func(t *testing.T) {
		t.Parallel()
		client := &fakeRedis{existing: 1}
		check := unique.Redis(client, emailKey, "email already taken")

		result, err := check(context.Background(), "used@example.com").AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, "email already taken", result.Message)
	})

	t.Run("lookup errors resolve the future with an error", func(t *testing.T) {
		t.Parallel()
		client := &fakeRedis{err: errors.New("connection refused")}
		check := unique.Redis(client, emailKey, "email already taken")

		_, err := check(context.Background(), "x@example.com").AwaitWithTimeout(time.Second)
		require.Error(t, err)
		assert.ErrorIs(t, err, unique.ErrLookupFailed)
	})

	t.Run("missing client is a configuration error", func(t *testing.T) {
		t.Parallel()
		check := unique.Redis(nil, emailKey, "taken")

		_, err := check(context.Background(), "x@example.com").AwaitWithTimeout(time.Second)
		assert.ErrorIs(t, err, unique.ErrMisconfigured)
	})
}

type fakeRow struct {
	taken bool
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*bool)) = r.taken
	return nil
}

type fakeDB struct {
	row      fakeRow
	lastSQL  string
	lastArgs []any
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL = sql
	f.lastArgs = args
	return f.row
}

const existsQuery = "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)"

func TestPostgres(t *testing.T) {
	t.Parallel()

	t.Run("available value passes", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{row: fakeRow{taken: false}}
		check := unique.Postgres(db, existsQuery, "email already taken")

		result, err := check(context.Background(), "new@example.com").AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, existsQuery, db.lastSQL)
		assert.Equal(t, []any{"new@example.com"}, db.lastArgs)
	})

	t.Run("taken value fails with the configured message", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{row: fakeRow{taken: true}}
		check := unique.Postgres(db, existsQuery, "email already taken")

		result, err := check(context.Background(), "used@example.com").AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, "email already taken", result.Message)
	})

	t.Run("query errors resolve the future with an error", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{row: fakeRow{err: errors.New("relation does not exist")}}
		check := unique.Postgres(db, existsQuery, "taken")

		_, err := check(context.Background(), "x@example.com").AwaitWithTimeout(time.Second)
		require.Error(t, err)
		assert.ErrorIs(t, err, unique.ErrLookupFailed)
	})

	t.Run("missing query is a configuration error", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{}
		check := unique.Postgres(db, "", "taken")

		_, err := check(context.Background(), "x@example.com").AwaitWithTimeout(time.Second)
		assert.ErrorIs(t, err, unique.ErrMisconfigured)
	})

	t.Run("engine integration: future resolves into a form result", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{row: fakeRow{taken: true}}
		check := unique.Postgres(db, existsQuery, "email already taken")

		var submitted bool
		engine, err := form.New(form.Values{"email": ""}, form.MapBinder{},
			func(context.Context, form.Values, form.Done) { submitted = true },
			[]form.Validator[form.Values]{{
				Field: "email",
				Validate: func(value any, _ form.Values) form.Result {
					if value == "" {
						return form.Invalid("required")
					}
					return form.Valid()
				},
				ValidateAsync: check,
			}},
			form.WithDebounceInterval(-1),
		)
		require.NoError(t, err)
		defer engine.Close()

		engine.Change("email", "used@example.com")

		require.Eventually(t, func() bool {
			r, ok := engine.Result("email")
			return ok && !r.Valid && r.Message == "email already taken"
		}, 2*time.Second, 5*time.Millisecond)

		engine.Submit()
		assert.False(t, submitted)
	})
}
