package paymentdomain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentdomain "github.com/pagoflux/payment-domain"
)

func TestNewMerchant(t *testing.T) {
	t.Run("valid merchant", func(t *testing.T) {
		m, err := paymentdomain.NewMerchant("Test Merchant", "123456789", "001")
		require.NoError(t, err)
		assert.NotEmpty(t, m.ID)
		assert.Equal(t, "Test Merchant", m.Name)
		assert.Equal(t, "123456789", m.FUC)
		assert.Equal(t, "001", m.Terminal)
	})

	t.Run("short codes are valid", func(t *testing.T) {
		m, err := paymentdomain.NewMerchant("Corner Shop", "7", "1")
		require.NoError(t, err)
		assert.Equal(t, "7", m.FUC)
		assert.Equal(t, "1", m.Terminal)
	})

	t.Run("non-numeric fuc rejected", func(t *testing.T) {
		_, err := paymentdomain.NewMerchant("Bad", "invalid_fuc", "001")
		assert.Error(t, err)
	})

	t.Run("fuc over nine digits rejected", func(t *testing.T) {
		_, err := paymentdomain.NewMerchant("Bad", "1234567890", "001")
		assert.Error(t, err)
	})

	t.Run("non-numeric terminal rejected", func(t *testing.T) {
		_, err := paymentdomain.NewMerchant("Bad", "123456789", "T1")
		assert.Error(t, err)
	})

	t.Run("terminal over three digits rejected", func(t *testing.T) {
		_, err := paymentdomain.NewMerchant("Bad", "123456789", "0001")
		assert.Error(t, err)
	})
}

func TestMerchantMapRoundTrip(t *testing.T) {
	m, err := paymentdomain.NewMerchant("Test Merchant", "987654321", "021")
	require.NoError(t, err)

	restored, err := paymentdomain.MerchantFromMap(m.ToMap())
	require.NoError(t, err)
	assert.Equal(t, m, restored)
}

func TestMerchantFromMapValidation(t *testing.T) {
	_, err := paymentdomain.MerchantFromMap(map[string]any{
		"fuc":      "abc",
		"terminal": "001",
	})
	assert.Error(t, err)
}
