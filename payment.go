// Package paymentdomain defines the shared data model used across the
// payment services: validated Payment, Refund and Merchant records, their
// status enumerations, and the guarded status transitions between them.
//
// The package performs no I/O. Gateway communication, persistence and retry
// handling belong to the services that import these types.
package paymentdomain

import (
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/ksuid"
)

// PaymentStatus represents the status of a payment in its lifecycle
type PaymentStatus string

const (
	PaymentStatusCreated              PaymentStatus = "created"
	PaymentStatusRequiresConfirmation PaymentStatus = "requires_confirmation"
	PaymentStatusRequiresAction       PaymentStatus = "requires_action"
	PaymentStatusProcessing           PaymentStatus = "processing"
	PaymentStatusCanceled             PaymentStatus = "canceled"
	PaymentStatusSucceeded            PaymentStatus = "succeeded"
	PaymentStatusFailed               PaymentStatus = "failed"
)

// ObjectPayment is the object tag carried by every serialized Payment.
const ObjectPayment = "payment"

// DefaultPaymentMethod is applied when a constructor receives no method tag.
const DefaultPaymentMethod = "bizum"

// ParsePaymentStatus converts a name to the corresponding PaymentStatus.
// Matching is case-insensitive; an unknown name returns an error wrapping
// ErrUnknownPaymentStatus.
func ParsePaymentStatus(name string) (PaymentStatus, error) {
	s := PaymentStatus(strings.ToLower(name))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentStatus, name)
	}
	return s, nil
}

// Valid reports whether the status is one of the declared values.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusCreated, PaymentStatusRequiresConfirmation,
		PaymentStatusRequiresAction, PaymentStatusProcessing,
		PaymentStatusCanceled, PaymentStatusSucceeded, PaymentStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusCanceled, PaymentStatusSucceeded, PaymentStatusFailed:
		return true
	}
	return false
}

func (s PaymentStatus) String() string {
	return string(s)
}

// Payment represents a payment record. Amount is expressed in the smallest
// currency unit (cents for EUR).
type Payment struct {
	ID                 string             `json:"id" validate:"required"`
	Object             string             `json:"object" validate:"required,eq=payment"`
	Amount             int64              `json:"amount" validate:"gte=0"`
	Currency           string             `json:"currency" validate:"required,iso4217"`
	Order              string             `json:"order" validate:"required"`
	Created            int64              `json:"created" validate:"gt=0"`
	Authorization      string             `json:"authorization,omitempty"`
	Status             PaymentStatus      `json:"status"`
	CanceledAt         *int64             `json:"canceled_at,omitempty"`
	CancellationReason CancellationReason `json:"cancellation_reason,omitempty"`
	Metadata           map[string]any     `json:"metadata,omitempty"`
	Phone              string             `json:"phone,omitempty"`
	PaymentMethod      string             `json:"payment_method" validate:"required"`
	OperationID        string             `json:"operation_id,omitempty"`
	TruncatedAccount   string             `json:"truncated_account,omitempty"`
	StoreID            string             `json:"store_id,omitempty"`
}

// PaymentParams carries the caller-supplied fields for NewPayment.
type PaymentParams struct {
	Amount        int64
	Currency      string
	Order         string
	PaymentMethod string
	Phone         string
	StoreID       string
	Metadata      map[string]any
}

// NewPayment creates a Payment in status created. The identifier and creation
// timestamp are generated; the record is validated before being returned.
func NewPayment(params PaymentParams) (*Payment, error) {
	method := params.PaymentMethod
	if method == "" {
		method = DefaultPaymentMethod
	}
	p := &Payment{
		ID:            ksuid.New().String(),
		Object:        ObjectPayment,
		Amount:        params.Amount,
		Currency:      params.Currency,
		Order:         params.Order,
		Created:       time.Now().UTC().Unix(),
		Status:        PaymentStatusCreated,
		Metadata:      params.Metadata,
		Phone:         params.Phone,
		PaymentMethod: method,
		StoreID:       params.StoreID,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the record's field constraints and enum values.
func (p *Payment) Validate() error {
	if err := validate.Struct(p); err != nil {
		return validationError("payment", err)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPaymentStatus, string(p.Status))
	}
	if p.CancellationReason != "" && !p.CancellationReason.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCancellationReason, string(p.CancellationReason))
	}
	return nil
}

// canTransitionTo validates a move from the current status to target.
// Terminal statuses (canceled, succeeded, failed) allow no further moves.
func (p *Payment) canTransitionTo(target PaymentStatus) error {
	switch p.Status {
	case PaymentStatusCreated, PaymentStatusRequiresConfirmation:
		switch target {
		case PaymentStatusRequiresConfirmation, PaymentStatusRequiresAction,
			PaymentStatusProcessing, PaymentStatusCanceled, PaymentStatusFailed:
			if target != p.Status {
				return nil
			}
		}
	case PaymentStatusRequiresAction:
		switch target {
		case PaymentStatusProcessing, PaymentStatusSucceeded,
			PaymentStatusCanceled, PaymentStatusFailed:
			return nil
		}
	case PaymentStatusProcessing:
		switch target {
		case PaymentStatusRequiresAction, PaymentStatusSucceeded,
			PaymentStatusCanceled, PaymentStatusFailed:
			return nil
		}
	}
	return NewInvalidTransitionError(string(p.Status), string(target))
}

// Confirm moves the payment into processing.
func (p *Payment) Confirm() error {
	if err := p.canTransitionTo(PaymentStatusProcessing); err != nil {
		return err
	}
	p.Status = PaymentStatusProcessing
	return nil
}

// RequireAction marks the payment as waiting on the customer.
func (p *Payment) RequireAction() error {
	if err := p.canTransitionTo(PaymentStatusRequiresAction); err != nil {
		return err
	}
	p.Status = PaymentStatusRequiresAction
	return nil
}

// MarkSucceeded marks the payment as successful.
func (p *Payment) MarkSucceeded() error {
	if err := p.canTransitionTo(PaymentStatusSucceeded); err != nil {
		return err
	}
	p.Status = PaymentStatusSucceeded
	return nil
}

// MarkFailed marks the payment as failed.
func (p *Payment) MarkFailed() error {
	if err := p.canTransitionTo(PaymentStatusFailed); err != nil {
		return err
	}
	p.Status = PaymentStatusFailed
	return nil
}

// Cancel cancels the payment, recording the cancellation time and reason.
// Payments in a terminal status cannot be canceled.
func (p *Payment) Cancel(reason CancellationReason) error {
	if !reason.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCancellationReason, string(reason))
	}
	if err := p.canTransitionTo(PaymentStatusCanceled); err != nil {
		return err
	}
	now := time.Now().UTC().Unix()
	p.Status = PaymentStatusCanceled
	p.CanceledAt = &now
	p.CancellationReason = reason
	return nil
}

// IsTerminal reports whether the payment reached a terminal status.
func (p *Payment) IsTerminal() bool {
	return p.Status.IsTerminal()
}

// UpdateMetadata sets a metadata entry, allocating the map on first use.
func (p *Payment) UpdateMetadata(key string, value any) {
	if p.Metadata == nil {
		p.Metadata = make(map[string]any)
	}
	p.Metadata[key] = value
}

// ToMap serializes the payment to its structured-mapping form. Optional
// fields are omitted when unset.
func (p *Payment) ToMap() map[string]any {
	m := map[string]any{
		"id":             p.ID,
		"object":         p.Object,
		"amount":         p.Amount,
		"currency":       p.Currency,
		"order":          p.Order,
		"created":        p.Created,
		"status":         string(p.Status),
		"payment_method": p.PaymentMethod,
	}
	if p.Authorization != "" {
		m["authorization"] = p.Authorization
	}
	if p.CanceledAt != nil {
		m["canceled_at"] = *p.CanceledAt
	}
	if p.CancellationReason != "" {
		m["cancellation_reason"] = string(p.CancellationReason)
	}
	if len(p.Metadata) > 0 {
		md := make(map[string]any, len(p.Metadata))
		for k, v := range p.Metadata {
			md[k] = v
		}
		m["metadata"] = md
	}
	if p.Phone != "" {
		m["phone"] = p.Phone
	}
	if p.OperationID != "" {
		m["operation_id"] = p.OperationID
	}
	if p.TruncatedAccount != "" {
		m["truncated_account"] = p.TruncatedAccount
	}
	if p.StoreID != "" {
		m["store_id"] = p.StoreID
	}
	return m
}

// PaymentFromMap rebuilds a Payment from its structured-mapping form and
// validates it.
func PaymentFromMap(m map[string]any) (*Payment, error) {
	p := &Payment{}
	var err error
	if p.ID, err = mapString(m, "id"); err != nil {
		return nil, err
	}
	if p.Object, err = mapString(m, "object"); err != nil {
		return nil, err
	}
	if p.Amount, _, err = mapInt64(m, "amount"); err != nil {
		return nil, err
	}
	if p.Currency, err = mapString(m, "currency"); err != nil {
		return nil, err
	}
	if p.Order, err = mapString(m, "order"); err != nil {
		return nil, err
	}
	if p.Created, _, err = mapInt64(m, "created"); err != nil {
		return nil, err
	}
	if p.Authorization, err = mapString(m, "authorization"); err != nil {
		return nil, err
	}
	status, err := mapString(m, "status")
	if err != nil {
		return nil, err
	}
	if p.Status, err = ParsePaymentStatus(status); err != nil {
		return nil, err
	}
	canceledAt, ok, err := mapInt64(m, "canceled_at")
	if err != nil {
		return nil, err
	}
	if ok {
		p.CanceledAt = &canceledAt
	}
	reason, err := mapString(m, "cancellation_reason")
	if err != nil {
		return nil, err
	}
	if reason != "" {
		if p.CancellationReason, err = ParseCancellationReason(reason); err != nil {
			return nil, err
		}
	}
	if p.Metadata, err = mapMetadata(m, "metadata"); err != nil {
		return nil, err
	}
	if p.Phone, err = mapString(m, "phone"); err != nil {
		return nil, err
	}
	if p.PaymentMethod, err = mapString(m, "payment_method"); err != nil {
		return nil, err
	}
	if p.OperationID, err = mapString(m, "operation_id"); err != nil {
		return nil, err
	}
	if p.TruncatedAccount, err = mapString(m, "truncated_account"); err != nil {
		return nil, err
	}
	if p.StoreID, err = mapString(m, "store_id"); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
