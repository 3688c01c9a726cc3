package config

import (
	"os"
	"strconv"
)

// Defaults for the two tunables the workflow depends on. Both came out of the
// reference behavior and are deliberately configuration, not constants.
const (
	DefaultLowStockThreshold  = 5
	DefaultPaymentSuccessRate = 0.75
)

type Config struct {
	ServiceName string
	Env         string
	MetricsAddr string

	// LowStockThreshold is the quantity below which a successful reservation
	// triggers a low-stock alert.
	LowStockThreshold int
	// PaymentSuccessRate drives the simulated gateway's default decider.
	PaymentSuccessRate float64
}

func Default() Config {
	return Config{
		ServiceName:        "fulfillment",
		Env:                "dev",
		MetricsAddr:        ":8080",
		LowStockThreshold:  DefaultLowStockThreshold,
		PaymentSuccessRate: DefaultPaymentSuccessRate,
	}
}

// FromEnv loads the configuration from environment variables, keeping the
// defaults for anything unset or unparsable.
func FromEnv() Config {
	cfg := Default()

	cfg.ServiceName = getenvDefault("SERVICE_NAME", cfg.ServiceName)
	cfg.Env = getenvDefault("ENV", cfg.Env)
	cfg.MetricsAddr = getenvDefault("METRICS_ADDR", cfg.MetricsAddr)

	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.LowStockThreshold = n
		}
	}
	if v := os.Getenv("PAYMENT_SUCCESS_RATE"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r >= 0 && r <= 1 {
			cfg.PaymentSuccessRate = r
		}
	}

	return cfg
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
