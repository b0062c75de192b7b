// Package unique provides asynchronous uniqueness validators for form
// fields — the canonical remote check behind "email already taken".
//
// Two backends are supported: Redis key existence (go-redis) and a Postgres
// existence query (pgx). Both return a form.AsyncFunc, so they plug directly
// into Validator.ValidateAsync and inherit the engine's debouncing, stale
// result rejection, and submit gating:
//
//	form.Validator[form.Values]{
//		Field:         "email",
//		Validate:      rules.Lift[form.Values](rules.Email()),
//		ValidateAsync: unique.Postgres(pool,
//			"SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)",
//			"email already taken"),
//		Strategy: form.OnFirstSuccess,
//	}
//
// A lookup error resolves the future with that error; the engine commits it
// as a failing result rather than leaving the field validating forever.
package unique
