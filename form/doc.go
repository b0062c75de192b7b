// Package form implements a field-level validation engine for interactive
// forms: it decides, per field, when to run synchronous and debounced
// asynchronous rules, aggregates per-field results, cascades revalidation to
// dependent fields, and gates submission until every field passes.
//
// The engine manages exactly one form. It owns a consumer-provided domain
// state, accessed through a Binder, and exposes three external dispatchers —
// Change, Blur, Submit — plus read projections for the presentation layer.
// Rendering, raw-event value extraction, and the transport behind async
// validators are deliberately outside the package.
//
// # Architecture
//
// Every event flows through one serialized dispatch stream. The transition
// function updates the engine state and returns side-effect commands
// (schedule a debounced call, invoke an async validator, invoke the submit
// callback); the engine executes those commands after the state update and
// loops their outcomes back as new events. Async completions therefore never
// observe partially updated state, and a stale completion is discarded by a
// per-field revision counter rather than value equality.
//
// Validation timing is strategy-driven (see Strategy): a field validates on
// every change, only after its first success, on its first blur, or not
// until submit. Once a field has emitted a result, or the form has been
// submitted once, it revalidates on every change regardless of strategy.
//
// # Usage
//
//	engine, err := form.New(form.Values{"email": ""}, form.MapBinder{},
//		func(ctx context.Context, data form.Values, done form.Done) {
//			if err := createAccount(ctx, data); err != nil {
//				done.Failure()
//				return
//			}
//			done.Success()
//		},
//		[]form.Validator[form.Values]{{
//			Field:    "email",
//			Validate: func(v any, _ form.Values) form.Result {
//				return rules.Chain(rules.Required(), rules.Email())(v)
//			},
//			ValidateAsync: unique.Redis(redisClient, emailKey, "email already taken"),
//			Strategy:      form.OnFirstSuccess,
//		}},
//		form.WithDebounceInterval(500*time.Millisecond),
//	)
//	if err != nil {
//		// handle configuration error
//	}
//	defer engine.Close()
//
//	engine.Change("email", "a@b.com")
//	engine.Submit()
//
// # Error Handling
//
// Invalid user input is data, not an error: it flows through Result values.
// Configuration mistakes surface as sentinel errors from New. A submit-time
// aggregation that finds no computable result for a field panics, since it
// indicates a defect in the configuration, never user input.
package form
