package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendPaymentCode(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{MethodCashOnDelivery, CodeCashOnDelivery},
		{MethodPayNow, CodeGateway},
		{"bKash", "bKash"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := BackendPaymentCode(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := BackendPaymentCode("")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestAvailablePaymentMethods(t *testing.T) {
	t.Run("cash only without gateway", func(t *testing.T) {
		methods := AvailablePaymentMethods(Business{})
		assert.Equal(t, []PaymentMethod{{Name: MethodCashOnDelivery}}, methods)
	})

	t.Run("inactive gateway is ignored", func(t *testing.T) {
		b := Business{Gateway: &OnlineGateway{AccountID: "acc", Active: false}}
		assert.Len(t, AvailablePaymentMethods(b), 1)
	})

	t.Run("default online method", func(t *testing.T) {
		b := Business{Gateway: &OnlineGateway{AccountID: "acc", Active: true}}
		methods := AvailablePaymentMethods(b)
		require.Len(t, methods, 2)
		assert.Equal(t, DefaultGatewayMethod, methods[1])
	})

	t.Run("gateway methods", func(t *testing.T) {
		b := Business{Gateway: &OnlineGateway{
			AccountID:      "acc",
			Active:         true,
			PaymentMethods: []PaymentMethod{{Name: "bKash"}, {Name: "Nagad"}},
		}}
		methods := AvailablePaymentMethods(b)
		assert.Equal(t, []string{MethodCashOnDelivery, "bKash", "Nagad"}, []string{methods[0].Name, methods[1].Name, methods[2].Name})
	})
}
