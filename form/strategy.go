package form

import (
	"errors"
	"fmt"
)

// Strategy controls when a not-yet-emitted field is validated in response to
// change and blur events. Once a field has emitted its first result, or the
// form has been submitted once, every field revalidates on each change
// regardless of its configured strategy.
type Strategy int

const (
	// StrategyDefault defers to the form-level default strategy.
	StrategyDefault Strategy = iota
	// OnFirstChange validates on every change.
	OnFirstChange
	// OnFirstSuccess validates on change but commits only valid results;
	// invalid results are dropped so further edits keep retrying silently.
	OnFirstSuccess
	// OnFirstBlur ignores changes and validates on the first blur.
	OnFirstBlur
	// OnFirstSuccessOrFirstBlur behaves like OnFirstSuccess on change and
	// additionally validates and commits unconditionally on blur.
	OnFirstSuccessOrFirstBlur
	// OnSubmit ignores changes and blurs; the field is first validated
	// during submit aggregation.
	OnSubmit
)

var strategyNames = map[Strategy]string{
	StrategyDefault:           "default",
	OnFirstChange:             "on_first_change",
	OnFirstSuccess:            "on_first_success",
	OnFirstBlur:               "on_first_blur",
	OnFirstSuccessOrFirstBlur: "on_first_success_or_first_blur",
	OnSubmit:                  "on_submit",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy converts a configuration string into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return StrategyDefault, errors.Join(ErrInvalidStrategy, fmt.Errorf("unknown strategy %q", name))
}
