package library

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrBookUnavailable = errors.New("book is not available")
	ErrInvalidReturn   = errors.New("invalid return")
	ErrRuleViolation   = errors.New("business rule violation")
	ErrHistoryDisabled = errors.New("loan history is not enabled")

	ErrFineOverpayment = fmt.Errorf("%w: payment exceeds outstanding fine", ErrRuleViolation)
	ErrInvalidAmount   = fmt.Errorf("%w: payment amount must be a non-negative number", ErrRuleViolation)
)
