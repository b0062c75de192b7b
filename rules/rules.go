package rules

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/form"
)

// Rule validates a single value. Rules are stateless and safe for
// concurrent use.
type Rule func(value any) form.Result

// Chain combines rules; the first failure wins.
func Chain(rules ...Rule) Rule {
	return func(value any) form.Result {
		for _, rule := range rules {
			if r := rule(value); !r.Valid {
				return r
			}
		}
		return form.Valid()
	}
}

// Lift adapts a value-only Rule to the Validator.Validate signature.
func Lift[D any](rule Rule) func(value any, data D) form.Result {
	return func(value any, _ D) form.Result {
		return rule(value)
	}
}

// Required fails for empty values: empty or whitespace-only strings, and
// nil.
func Required() Rule {
	return func(value any) form.Result {
		if value == nil || strings.TrimSpace(str(value)) == "" {
			return form.Invalid("field is required")
		}
		return form.Valid()
	}
}

// MinLen fails for string values shorter than min bytes.
func MinLen(min int) Rule {
	return func(value any) form.Result {
		if len(str(value)) < min {
			return form.Invalid(fmt.Sprintf("must be at least %d characters long", min))
		}
		return form.Valid()
	}
}

// MaxLen fails for string values longer than max bytes.
func MaxLen(max int) Rule {
	return func(value any) form.Result {
		if len(str(value)) > max {
			return form.Invalid(fmt.Sprintf("must be at most %d characters long", max))
		}
		return form.Valid()
	}
}

// Email validates an address with Go's RFC 5322 parser plus the additional
// constraints typical for web forms: a non-empty local part and a dotted
// domain without leading or trailing dots.
func Email() Rule {
	return func(value any) form.Result {
		s := strings.TrimSpace(str(value))
		if s == "" {
			return form.Invalid("must be a valid email address")
		}

		addr, err := mail.ParseAddress(s)
		if err != nil {
			return form.Invalid("must be a valid email address")
		}

		local, domain, ok := strings.Cut(addr.Address, "@")
		if !ok || local == "" {
			return form.Invalid("must be a valid email address")
		}
		if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
			return form.Invalid("must be a valid email address")
		}
		return form.Valid()
	}
}

// Pattern fails when the value does not match re.
func Pattern(re *regexp.Regexp, message string) Rule {
	return func(value any) form.Result {
		if !re.MatchString(str(value)) {
			return form.Invalid(message)
		}
		return form.Valid()
	}
}

// OneOf fails when the value is not among the allowed choices.
func OneOf(choices ...string) Rule {
	return func(value any) form.Result {
		if !slices.Contains(choices, str(value)) {
			return form.Invalid("must be one of: " + strings.Join(choices, ", "))
		}
		return form.Valid()
	}
}

// str coerces the opaque field value into a string for rule checks.
func str(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
