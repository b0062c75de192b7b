package unique

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/formkit/form"
	"github.com/dmitrymomot/formkit/future"
)

// KeyFunc maps a field value to the Redis key whose existence marks the
// value as taken.
type KeyFunc func(value any) string

// RedisClient is the subset of the go-redis API the Redis validator needs.
// *redis.Client and *redis.ClusterClient both satisfy it.
type RedisClient interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis returns an async validator that reports the value as taken when the
// derived key exists. takenMessage is the failing result's message.
func Redis(client RedisClient, key KeyFunc, takenMessage string) form.AsyncFunc {
	return func(ctx context.Context, value any) *future.Future[form.Result] {
		return future.Go(ctx, func(ctx context.Context) (form.Result, error) {
			if client == nil || key == nil {
				return form.Result{}, ErrMisconfigured
			}
			n, err := client.Exists(ctx, key(value)).Result()
			if err != nil {
				return form.Result{}, errors.Join(ErrLookupFailed, err)
			}
			if n > 0 {
				return form.Invalid(takenMessage), nil
			}
			return form.Valid(), nil
		})
	}
}

// RowQuerier is the subset of the pgx API the Postgres validator needs.
// *pgxpool.Pool and *pgx.Conn both satisfy it.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres returns an async validator backed by an existence query. The
// query receives the field value as $1 and must return a single boolean,
// true meaning the value is already taken, e.g.
//
//	SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
func Postgres(db RowQuerier, query string, takenMessage string) form.AsyncFunc {
	return func(ctx context.Context, value any) *future.Future[form.Result] {
		return future.Go(ctx, func(ctx context.Context) (form.Result, error) {
			if db == nil || query == "" {
				return form.Result{}, ErrMisconfigured
			}
			var taken bool
			if err := db.QueryRow(ctx, query, value).Scan(&taken); err != nil {
				return form.Result{}, errors.Join(ErrLookupFailed, err)
			}
			if taken {
				return form.Invalid(takenMessage), nil
			}
			return form.Valid(), nil
		})
	}
}
