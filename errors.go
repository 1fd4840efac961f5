package paymentdomain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPaymentStatus indicates a name that maps to no payment status
	ErrUnknownPaymentStatus = errors.New("unknown payment status")

	// ErrUnknownRefundStatus indicates a name that maps to no refund status
	ErrUnknownRefundStatus = errors.New("unknown refund status")

	// ErrUnknownCancellationReason indicates a name that maps to no cancellation reason
	ErrUnknownCancellationReason = errors.New("unknown cancellation reason")
)

// InvalidTransitionError is returned when a status transition is not permitted
// from the record's current status.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

// NewInvalidTransitionError creates a new InvalidTransitionError
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}
