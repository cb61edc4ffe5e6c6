package service

import (
	"errors"
	"fmt"
)

// Validation-level failures surfaced synchronously to callers. Handlers map
// these to 4xx responses; anything else is treated as an internal error.
var (
	ErrInvalidPlan           = errors.New("stage percentages must total exactly 100%")
	ErrMissingPossessionDate = errors.New("possession date is required — the selected payment plan has possession-linked stages")
	ErrInvalidAmount         = errors.New("amount must be greater than zero")
	ErrNotSubmitted          = errors.New("payments can only be recorded on a submitted booking")
	ErrAlreadyPaid           = errors.New("this stage is already fully paid")
	ErrOverpayment           = errors.New("amount exceeds the balance due for this stage")
	ErrPlotNotAvailable      = errors.New("plot is not available — select an Available plot")
	ErrPermissionDenied      = errors.New("plot status can only be changed through the booking workflow")
	ErrInvalidDiscount       = errors.New("discount cannot exceed plot value")
	ErrRowNotFound           = errors.New("payment schedule row not found")
)

// RuleError is a user-facing domain rule violation raised outside the
// sentinel set — wrong lifecycle state, duplicate identifier and the like.
// Its message is safe to return to clients verbatim.
type RuleError struct{ msg string }

func (e *RuleError) Error() string { return e.msg }

func ruleErrorf(format string, args ...any) error {
	return &RuleError{msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err belongs to the domain validation
// taxonomy (as opposed to an infrastructure failure). Handlers return these
// messages to clients; anything else gets the generic 500 envelope.
func IsValidationError(err error) bool {
	var re *RuleError
	if errors.As(err, &re) {
		return true
	}
	for _, e := range []error{
		ErrInvalidPlan, ErrMissingPossessionDate, ErrInvalidAmount,
		ErrNotSubmitted, ErrAlreadyPaid, ErrOverpayment,
		ErrPlotNotAvailable, ErrPermissionDenied, ErrInvalidDiscount,
		ErrRowNotFound,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
