package paymentdomain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentdomain "github.com/pagoflux/payment-domain"
)

func newRefund(t *testing.T) *paymentdomain.Refund {
	t.Helper()
	r, err := paymentdomain.NewRefund(paymentdomain.RefundParams{
		Amount:    500,
		Currency:  "EUR",
		Order:     "order_001",
		PaymentID: "pay_123",
	})
	require.NoError(t, err)
	return r
}

func TestNewRefund(t *testing.T) {
	t.Run("valid refund", func(t *testing.T) {
		r := newRefund(t)
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, "refund", r.Object)
		assert.Equal(t, int64(500), r.Amount)
		assert.Equal(t, "EUR", r.Currency)
		assert.Equal(t, "pay_123", r.PaymentID)
		assert.Equal(t, paymentdomain.RefundStatusCreated, r.Status)
		assert.Equal(t, "bizum", r.PaymentMethod)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := paymentdomain.NewRefund(paymentdomain.RefundParams{
			Amount:   -500,
			Currency: "EUR",
			Order:    "order_001",
		})
		assert.Error(t, err)
	})

	t.Run("malformed currency rejected", func(t *testing.T) {
		_, err := paymentdomain.NewRefund(paymentdomain.RefundParams{
			Amount:   500,
			Currency: "euros",
			Order:    "order_001",
		})
		assert.Error(t, err)
	})
}

func TestRefundStatusTransitions(t *testing.T) {
	t.Run("created to processing to succeeded", func(t *testing.T) {
		r := newRefund(t)
		require.NoError(t, r.MarkProcessing())
		assert.Equal(t, paymentdomain.RefundStatusProcessing, r.Status)
		require.NoError(t, r.MarkSucceeded())
		assert.Equal(t, paymentdomain.RefundStatusSucceeded, r.Status)
		assert.True(t, r.IsTerminal())
	})

	t.Run("created straight to failed", func(t *testing.T) {
		r := newRefund(t)
		require.NoError(t, r.MarkFailed())
		assert.Equal(t, paymentdomain.RefundStatusFailed, r.Status)
	})

	t.Run("terminal status allows nothing", func(t *testing.T) {
		r := newRefund(t)
		require.NoError(t, r.MarkSucceeded())
		var transitionErr *paymentdomain.InvalidTransitionError
		assert.ErrorAs(t, r.MarkProcessing(), &transitionErr)
		assert.ErrorAs(t, r.MarkFailed(), &transitionErr)
		assert.ErrorAs(t, r.Cancel(paymentdomain.CancellationReasonAutomatic), &transitionErr)
	})
}

func TestRefundCancel(t *testing.T) {
	t.Run("cancel from created", func(t *testing.T) {
		r := newRefund(t)
		require.NoError(t, r.Cancel(paymentdomain.CancellationReasonWithoutOriginal))
		assert.Equal(t, paymentdomain.RefundStatusCanceled, r.Status)
		assert.Equal(t, paymentdomain.CancellationReasonWithoutOriginal, r.CancellationReason)
	})

	t.Run("unknown reason rejected", func(t *testing.T) {
		r := newRefund(t)
		err := r.Cancel(paymentdomain.CancellationReason("oops"))
		assert.ErrorIs(t, err, paymentdomain.ErrUnknownCancellationReason)
	})
}

func TestParseRefundStatus(t *testing.T) {
	status, err := paymentdomain.ParseRefundStatus("Succeeded")
	require.NoError(t, err)
	assert.Equal(t, paymentdomain.RefundStatusSucceeded, status)

	_, err = paymentdomain.ParseRefundStatus("reversed")
	assert.ErrorIs(t, err, paymentdomain.ErrUnknownRefundStatus)
}

func TestParseCancellationReason(t *testing.T) {
	reason, err := paymentdomain.ParseCancellationReason("FRAUDULENT")
	require.NoError(t, err)
	assert.Equal(t, paymentdomain.CancellationReasonFraudulent, reason)

	_, err = paymentdomain.ParseCancellationReason("changed_mind")
	assert.ErrorIs(t, err, paymentdomain.ErrUnknownCancellationReason)
}

func TestRefundMapRoundTrip(t *testing.T) {
	r := newRefund(t)
	r.Authorization = "auth_001"
	r.OperationID = "op_789"
	r.UpdateMetadata("agent", "support_12")
	require.NoError(t, r.MarkProcessing())

	t.Run("to map and back", func(t *testing.T) {
		restored, err := paymentdomain.RefundFromMap(r.ToMap())
		require.NoError(t, err)
		assert.Equal(t, r, restored)
	})

	t.Run("through json", func(t *testing.T) {
		raw, err := json.Marshal(r.ToMap())
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(raw, &m))

		restored, err := paymentdomain.RefundFromMap(m)
		require.NoError(t, err)
		assert.Equal(t, r.ID, restored.ID)
		assert.Equal(t, r.Amount, restored.Amount)
		assert.Equal(t, r.PaymentID, restored.PaymentID)
		assert.Equal(t, r.Status, restored.Status)
		assert.Equal(t, "support_12", restored.Metadata["agent"])
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		m := r.ToMap()
		m["status"] = "reversed"
		_, err := paymentdomain.RefundFromMap(m)
		assert.ErrorIs(t, err, paymentdomain.ErrUnknownRefundStatus)
	})
}
