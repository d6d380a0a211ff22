package calculator

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks input that is missing required fields. The whole
// computation is rejected.
var ErrInvalidInput = errors.New("invalid settlement input")

// InputError names the offending field of a rejected input.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func inputError(field, format string, args ...any) error {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// SkipReason explains why a record was left out of the balances.
type SkipReason string

const (
	SkipNonPositiveAmount   SkipReason = "non_positive_amount"
	SkipUnsupportedCurrency SkipReason = "unsupported_currency"
	SkipUnknownPayer        SkipReason = "unknown_payer"
	SkipUnknownMember       SkipReason = "unknown_member"
	SkipSelfPayment         SkipReason = "self_payment"
	SkipBelowMinorUnit      SkipReason = "below_minor_unit"
)

// RecordKind distinguishes expenses from recorded payments in skip reports.
type RecordKind string

const (
	KindExpense RecordKind = "expense"
	KindPayment RecordKind = "payment"
)

// SkippedRecord is a data integrity warning: the record was ignored and the
// rest of the computation went ahead.
type SkippedRecord struct {
	Kind   RecordKind `json:"kind"`
	ID     string     `json:"id"`
	Reason SkipReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
}
