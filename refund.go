package paymentdomain

import (
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/ksuid"
)

// RefundStatus represents the status of a refund in its lifecycle
type RefundStatus string

const (
	RefundStatusCreated    RefundStatus = "created"
	RefundStatusProcessing RefundStatus = "processing"
	RefundStatusCanceled   RefundStatus = "canceled"
	RefundStatusSucceeded  RefundStatus = "succeeded"
	RefundStatusFailed     RefundStatus = "failed"
)

// ObjectRefund is the object tag carried by every serialized Refund.
const ObjectRefund = "refund"

// ParseRefundStatus converts a name to the corresponding RefundStatus.
// Matching is case-insensitive.
func ParseRefundStatus(name string) (RefundStatus, error) {
	s := RefundStatus(strings.ToLower(name))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRefundStatus, name)
	}
	return s, nil
}

// Valid reports whether the status is one of the declared values.
func (s RefundStatus) Valid() bool {
	switch s {
	case RefundStatusCreated, RefundStatusProcessing, RefundStatusCanceled,
		RefundStatusSucceeded, RefundStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted.
func (s RefundStatus) IsTerminal() bool {
	switch s {
	case RefundStatusCanceled, RefundStatusSucceeded, RefundStatusFailed:
		return true
	}
	return false
}

func (s RefundStatus) String() string {
	return string(s)
}

// CancellationReason represents why a payment or refund was canceled
type CancellationReason string

const (
	CancellationReasonDuplicate           CancellationReason = "duplicate"
	CancellationReasonFraudulent          CancellationReason = "fraudulent"
	CancellationReasonRequestedByCustomer CancellationReason = "requested"
	CancellationReasonAbandoned           CancellationReason = "abandoned"
	CancellationReasonAutomatic           CancellationReason = "automatic"
	CancellationReasonWithoutOriginal     CancellationReason = "without_original"
)

// ParseCancellationReason converts a name to the corresponding
// CancellationReason. Matching is case-insensitive.
func ParseCancellationReason(name string) (CancellationReason, error) {
	r := CancellationReason(strings.ToLower(name))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCancellationReason, name)
	}
	return r, nil
}

// Valid reports whether the reason is one of the declared values.
func (r CancellationReason) Valid() bool {
	switch r {
	case CancellationReasonDuplicate, CancellationReasonFraudulent,
		CancellationReasonRequestedByCustomer, CancellationReasonAbandoned,
		CancellationReasonAutomatic, CancellationReasonWithoutOriginal:
		return true
	}
	return false
}

func (r CancellationReason) String() string {
	return string(r)
}

// Refund represents a refund record. PaymentID references the originating
// Payment by identifier only; checking the refund amount against the payment
// is the caller's responsibility.
type Refund struct {
	ID                 string             `json:"id" validate:"required"`
	Object             string             `json:"object" validate:"required,eq=refund"`
	Amount             int64              `json:"amount" validate:"gte=0"`
	Currency           string             `json:"currency" validate:"required,iso4217"`
	Order              string             `json:"order" validate:"required"`
	Created            int64              `json:"created" validate:"gt=0"`
	PaymentID          string             `json:"payment_id,omitempty"`
	Authorization      string             `json:"authorization,omitempty"`
	Status             RefundStatus       `json:"status"`
	CancellationReason CancellationReason `json:"cancellation_reason,omitempty"`
	Metadata           map[string]any     `json:"metadata,omitempty"`
	PaymentMethod      string             `json:"payment_method" validate:"required"`
	OperationID        string             `json:"operation_id,omitempty"`
}

// RefundParams carries the caller-supplied fields for NewRefund.
type RefundParams struct {
	Amount        int64
	Currency      string
	Order         string
	PaymentID     string
	PaymentMethod string
	Metadata      map[string]any
}

// NewRefund creates a Refund in status created. The identifier and creation
// timestamp are generated; the record is validated before being returned.
func NewRefund(params RefundParams) (*Refund, error) {
	method := params.PaymentMethod
	if method == "" {
		method = DefaultPaymentMethod
	}
	r := &Refund{
		ID:            ksuid.New().String(),
		Object:        ObjectRefund,
		Amount:        params.Amount,
		Currency:      params.Currency,
		Order:         params.Order,
		Created:       time.Now().UTC().Unix(),
		PaymentID:     params.PaymentID,
		Status:        RefundStatusCreated,
		Metadata:      params.Metadata,
		PaymentMethod: method,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the record's field constraints and enum values.
func (r *Refund) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError("refund", err)
	}
	if !r.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRefundStatus, string(r.Status))
	}
	if r.CancellationReason != "" && !r.CancellationReason.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCancellationReason, string(r.CancellationReason))
	}
	return nil
}

// canTransitionTo validates a move from the current status to target.
func (r *Refund) canTransitionTo(target RefundStatus) error {
	switch r.Status {
	case RefundStatusCreated:
		switch target {
		case RefundStatusProcessing, RefundStatusSucceeded,
			RefundStatusFailed, RefundStatusCanceled:
			return nil
		}
	case RefundStatusProcessing:
		switch target {
		case RefundStatusSucceeded, RefundStatusFailed, RefundStatusCanceled:
			return nil
		}
	}
	return NewInvalidTransitionError(string(r.Status), string(target))
}

// MarkProcessing moves the refund into processing.
func (r *Refund) MarkProcessing() error {
	if err := r.canTransitionTo(RefundStatusProcessing); err != nil {
		return err
	}
	r.Status = RefundStatusProcessing
	return nil
}

// MarkSucceeded marks the refund as successful.
func (r *Refund) MarkSucceeded() error {
	if err := r.canTransitionTo(RefundStatusSucceeded); err != nil {
		return err
	}
	r.Status = RefundStatusSucceeded
	return nil
}

// MarkFailed marks the refund as failed.
func (r *Refund) MarkFailed() error {
	if err := r.canTransitionTo(RefundStatusFailed); err != nil {
		return err
	}
	r.Status = RefundStatusFailed
	return nil
}

// Cancel cancels the refund, recording the reason. Refunds in a terminal
// status cannot be canceled.
func (r *Refund) Cancel(reason CancellationReason) error {
	if !reason.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCancellationReason, string(reason))
	}
	if err := r.canTransitionTo(RefundStatusCanceled); err != nil {
		return err
	}
	r.Status = RefundStatusCanceled
	r.CancellationReason = reason
	return nil
}

// IsTerminal reports whether the refund reached a terminal status.
func (r *Refund) IsTerminal() bool {
	return r.Status.IsTerminal()
}

// UpdateMetadata sets a metadata entry, allocating the map on first use.
func (r *Refund) UpdateMetadata(key string, value any) {
	if r.Metadata == nil {
		r.Metadata = make(map[string]any)
	}
	r.Metadata[key] = value
}

// ToMap serializes the refund to its structured-mapping form.
func (r *Refund) ToMap() map[string]any {
	m := map[string]any{
		"id":             r.ID,
		"object":         r.Object,
		"amount":         r.Amount,
		"currency":       r.Currency,
		"order":          r.Order,
		"created":        r.Created,
		"status":         string(r.Status),
		"payment_method": r.PaymentMethod,
	}
	if r.PaymentID != "" {
		m["payment_id"] = r.PaymentID
	}
	if r.Authorization != "" {
		m["authorization"] = r.Authorization
	}
	if r.CancellationReason != "" {
		m["cancellation_reason"] = string(r.CancellationReason)
	}
	if len(r.Metadata) > 0 {
		md := make(map[string]any, len(r.Metadata))
		for k, v := range r.Metadata {
			md[k] = v
		}
		m["metadata"] = md
	}
	if r.OperationID != "" {
		m["operation_id"] = r.OperationID
	}
	return m
}

// RefundFromMap rebuilds a Refund from its structured-mapping form and
// validates it.
func RefundFromMap(m map[string]any) (*Refund, error) {
	r := &Refund{}
	var err error
	if r.ID, err = mapString(m, "id"); err != nil {
		return nil, err
	}
	if r.Object, err = mapString(m, "object"); err != nil {
		return nil, err
	}
	if r.Amount, _, err = mapInt64(m, "amount"); err != nil {
		return nil, err
	}
	if r.Currency, err = mapString(m, "currency"); err != nil {
		return nil, err
	}
	if r.Order, err = mapString(m, "order"); err != nil {
		return nil, err
	}
	if r.Created, _, err = mapInt64(m, "created"); err != nil {
		return nil, err
	}
	if r.PaymentID, err = mapString(m, "payment_id"); err != nil {
		return nil, err
	}
	if r.Authorization, err = mapString(m, "authorization"); err != nil {
		return nil, err
	}
	status, err := mapString(m, "status")
	if err != nil {
		return nil, err
	}
	if r.Status, err = ParseRefundStatus(status); err != nil {
		return nil, err
	}
	reason, err := mapString(m, "cancellation_reason")
	if err != nil {
		return nil, err
	}
	if reason != "" {
		if r.CancellationReason, err = ParseCancellationReason(reason); err != nil {
			return nil, err
		}
	}
	if r.Metadata, err = mapMetadata(m, "metadata"); err != nil {
		return nil, err
	}
	if r.PaymentMethod, err = mapString(m, "payment_method"); err != nil {
		return nil, err
	}
	if r.OperationID, err = mapString(m, "operation_id"); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
