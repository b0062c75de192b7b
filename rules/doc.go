// Package rules provides ready-made synchronous validation rules for form
// fields: required, length bounds, email format, regular-expression and
// choice checks, composable with Chain (first failure wins).
//
// Rules operate on the opaque field value; non-string values are coerced via
// fmt.Stringer or fmt.Sprint. Lift adapts a Rule to the data-aware
// form.Validator signature:
//
//	form.Validator[form.Values]{
//		Field:    "email",
//		Validate: rules.Lift[form.Values](rules.Chain(rules.Required(), rules.Email())),
//	}
//
// Cross-field rules (for example password confirmation) need the domain
// state and are written directly as Validate closures instead.
package rules
