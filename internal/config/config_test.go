package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.Equal(t, 5, cfg.LowStockThreshold)
	require.Equal(t, 0.75, cfg.PaymentSuccessRate)
	require.Equal(t, "fulfillment", cfg.ServiceName)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SERVICE_NAME", "fulfillment-test")
	t.Setenv("LOW_STOCK_THRESHOLD", "2")
	t.Setenv("PAYMENT_SUCCESS_RATE", "0.5")

	cfg := FromEnv()
	require.Equal(t, "fulfillment-test", cfg.ServiceName)
	require.Equal(t, 2, cfg.LowStockThreshold)
	require.Equal(t, 0.5, cfg.PaymentSuccessRate)
}

func TestFromEnvKeepsDefaultsOnBadValues(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "not-a-number")
	t.Setenv("PAYMENT_SUCCESS_RATE", "1.5")

	cfg := FromEnv()
	require.Equal(t, DefaultLowStockThreshold, cfg.LowStockThreshold)
	require.Equal(t, DefaultPaymentSuccessRate, cfg.PaymentSuccessRate)
}
