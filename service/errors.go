package service

import "fmt"

// InputError reports a malformed or internally inconsistent record. It names
// the offending field and is raised before profile construction; nothing
// downstream runs on invalid input.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func inputErrorf(field, format string, args ...any) error {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// UnpayableDebtError signals that a payment schedule can never retire a
// balance (payment covers no principal, or exceeds the safety horizon). It is
// surfaced per strategy: the offending strategy is omitted from the ranked
// list and the run continues.
type UnpayableDebtError struct {
	Creditor string
	Payment  float64
}

func (e *UnpayableDebtError) Error() string {
	if e.Creditor == "" {
		return fmt.Sprintf("monthly payment %.2f can never retire the balance", e.Payment)
	}
	return fmt.Sprintf("%s: monthly payment %.2f can never retire the balance", e.Creditor, e.Payment)
}
