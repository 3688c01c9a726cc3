package payment

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	dompayment "github.com/quickmart/fulfillment/internal/domain/payment"
	"github.com/quickmart/fulfillment/internal/observability"
)

var ErrInvalidCustomer = errors.New("payment: customer id is required")

// Decider resolves a single charge attempt. Injecting one makes the gateway
// deterministic under test; the default models real-world flakiness.
type Decider func() bool

// RateDecider returns a Decider that approves with the given probability.
func RateDecider(rate float64) Decider {
	var mu sync.Mutex
	random := rand.New(rand.NewSource(time.Now().UnixNano()))
	return func() bool {
		mu.Lock()
		defer mu.Unlock()
		return random.Float64() <= rate
	}
}

// Service simulates an external payment gateway. Charges are atomic: the
// full amount goes through or nothing does.
type Service struct {
	decide  Decider
	log     *zap.Logger
	charges observability.Counter
}

func NewService(decider Decider, logger *zap.Logger, charges observability.Counter) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if charges == nil {
		charges = observability.NopCounter()
	}
	return &Service{
		decide:  decider,
		log:     logger.With(zap.String("component", "payment_gateway")),
		charges: charges,
	}
}

func (s *Service) Charge(ctx context.Context, customerID string, amount int64) (dompayment.Status, error) {
	_ = ctx
	if customerID == "" {
		return dompayment.StatusDeclined, ErrInvalidCustomer
	}
	if amount < 0 {
		return dompayment.StatusDeclined, dompayment.ErrInvalidAmount
	}

	if !s.decide() {
		s.charges.Add(1, observability.L("outcome", "declined"))
		s.log.Error("charge_declined",
			zap.String("customer_id", customerID),
			zap.Int64("amount", amount),
		)
		return dompayment.StatusDeclined, nil
	}

	s.charges.Add(1, observability.L("outcome", "success"))
	s.log.Info("charge_captured",
		zap.String("customer_id", customerID),
		zap.Int64("amount", amount),
	)
	return dompayment.StatusSuccess, nil
}
