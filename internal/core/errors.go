package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// NotFoundError reports that a referenced record does not exist or is soft-deleted.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError reports malformed or inconsistent input detected before any write.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

// AmountError reports a payment amount that is non-positive or exceeds the
// remaining balance on a booking. Remaining carries the balance at the time
// of the check so callers can surface it.
type AmountError struct {
	Msg       string
	Remaining decimal.Decimal
}

func (e AmountError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "invalid amount"
}

// TransactionError wraps a datastore failure that occurred inside a multi-row
// write. The transaction has been rolled back by the time it is returned.
type TransactionError struct {
	Op  string
	Err error
}

func (e TransactionError) Error() string {
	return fmt.Sprintf("transaction failed during %s: %v", e.Op, e.Err)
}

func (e TransactionError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsAmount(err error) bool {
	var target AmountError
	return errors.As(err, &target)
}
