package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	domcustomer "github.com/quickmart/fulfillment/internal/domain/customer"
	dominv "github.com/quickmart/fulfillment/internal/domain/inventory"
	domnotif "github.com/quickmart/fulfillment/internal/domain/notification"
	domain "github.com/quickmart/fulfillment/internal/domain/order"
	dompayment "github.com/quickmart/fulfillment/internal/domain/payment"
	"github.com/quickmart/fulfillment/internal/observability"
)

const tracerName = "fulfillment/order"

var (
	ErrUnknownCustomer   = errors.New("order: unknown customer")
	ErrAlreadyProcessed  = errors.New("order: already processed")
	ErrPaymentDeclined   = errors.New("order: payment declined")
	ErrInvalidQuantity   = domain.ErrInvalidQuantity
	ErrUnknownProduct    = dominv.ErrNotFound
	ErrInsufficientStock = dominv.ErrInsufficientStock
)

// ProcessResult reports the terminal outcome of a workflow run.
type ProcessResult struct {
	OrderID string
	Status  domain.Status
	Total   int64
}

// Service runs the order workflow: items are pre-checked while the order is
// Building, then Process reserves stock, charges payment and commits. Stock
// is atomic per order: any failure after a partial reservation releases
// everything reserved so far.
type Service struct {
	ledger    StockLedger
	gateway   dompayment.Gateway
	notifier  domnotif.Notifier
	orders    domain.Repository
	customers domcustomer.Repository
	idGen     IDGenerator

	log    *zap.Logger
	tracer trace.Tracer

	processTotal    observability.Counter   // order_process_total{outcome}
	processDuration observability.Histogram // order_process_duration_seconds
}

func NewService(
	ledger StockLedger,
	gateway dompayment.Gateway,
	notifier domnotif.Notifier,
	orders domain.Repository,
	customers domcustomer.Repository,
	idGen IDGenerator,
	logger *zap.Logger,
	processTotal observability.Counter,
	processDuration observability.Histogram,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if processTotal == nil {
		processTotal = observability.NopCounter()
	}
	if processDuration == nil {
		processDuration = observability.NopHistogram()
	}
	return &Service{
		ledger:          ledger,
		gateway:         gateway,
		notifier:        notifier,
		orders:          orders,
		customers:       customers,
		idGen:           idGen,
		log:             logger.With(zap.String("component", "order_workflow")),
		tracer:          otel.Tracer(tracerName),
		processTotal:    processTotal,
		processDuration: processDuration,
	}
}

// Create starts a Building order for a registered customer. An empty orderID
// gets a generated one.
func (s *Service) Create(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, domcustomer.ErrNotFound) {
			s.log.Error("order_create_rejected",
				zap.String("order_id", orderID),
				zap.String("customer_id", customerID),
			)
			return nil, ErrUnknownCustomer
		}
		return nil, fmt.Errorf("order: load customer: %w", err)
	}

	if orderID == "" {
		orderID = s.idGen.NewID()
	}

	entity, err := domain.New(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, entity); err != nil {
		return nil, fmt.Errorf("order: save: %w", err)
	}

	s.log.Info("order_created",
		zap.String("order_id", entity.ID),
		zap.String("customer_id", customerID),
	)
	return entity, nil
}

// AddItem accumulates a line item after checking the request against the
// currently observed stock. This is a pre-check only; nothing is reserved
// until Process runs. Rejected lines leave the order unchanged.
func (s *Service) AddItem(ctx context.Context, o *domain.Order, productID string, quantity int) error {
	if quantity <= 0 {
		s.log.Error("order_item_rejected",
			zap.String("order_id", o.ID),
			zap.String("product_id", productID),
			zap.Int("quantity", quantity),
		)
		return ErrInvalidQuantity
	}

	available := s.ledger.CheckStock(ctx, productID)
	if available < quantity {
		s.log.Error("order_item_rejected",
			zap.String("order_id", o.ID),
			zap.String("product_id", productID),
			zap.Int("requested", quantity),
			zap.Int("available", available),
		)
		return ErrInsufficientStock
	}

	if err := o.AddItem(productID, quantity); err != nil {
		return err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return fmt.Errorf("order: update: %w", err)
	}

	s.log.Info("order_item_added",
		zap.String("order_id", o.ID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
	)
	return nil
}

// Process drives the order to a terminal state exactly once:
// reserve every line, price the total, charge, commit. Business failures
// come back as sentinel errors (ErrInsufficientStock, ErrUnknownProduct,
// ErrPaymentDeclined, ErrAlreadyProcessed) with the order left Failed and
// all reservations released; they never panic or halt the process.
func (s *Service) Process(ctx context.Context, o *domain.Order) (_ *ProcessResult, err error) {
	logger := s.log.With(
		zap.String("order_id", o.ID),
		zap.String("customer_id", o.CustomerID),
	)

	ctx, span := s.tracer.Start(ctx, "Workflow.ProcessOrder",
		trace.WithAttributes(
			attribute.String("order.id", o.ID),
			attribute.String("order.customer_id", o.CustomerID),
			attribute.Int("order.lines", len(o.Items)),
		),
	)
	start := time.Now()
	outcome := "committed"

	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		} else {
			span.SetStatus(codes.Ok, outcome)
		}
		span.SetAttributes(attribute.String("order.status", string(o.Status())))
		span.End()

		s.processTotal.Add(1, observability.L("outcome", outcome))
		s.processDuration.Observe(time.Since(start).Seconds())

		logger.Info("order_process_done",
			zap.String("outcome", outcome),
			zap.String("status", string(o.Status())),
			zap.Float64("elapsed_seconds", time.Since(start).Seconds()),
		)
	}()

	if o.Processed() {
		outcome = "already_processed"
		logger.Warn("order_already_processed")
		return nil, ErrAlreadyProcessed
	}

	if terr := o.BeginReservation(); terr != nil {
		outcome = "invalid_state"
		return nil, terr
	}

	reserved, rerr := s.reserveItems(ctx, o)
	if rerr != nil {
		s.releaseItems(ctx, o, reserved)
		outcome = failureReason(rerr)
		return nil, s.fail(ctx, o, logger, outcome, o.ReservationFailed, rerr)
	}

	total, perr := s.totalOf(ctx, o)
	if perr != nil {
		s.releaseItems(ctx, o, reserved)
		outcome = failureReason(perr)
		return nil, s.fail(ctx, o, logger, outcome, o.ReservationFailed, perr)
	}
	o.Total = total

	if terr := o.ItemsReserved(); terr != nil {
		outcome = "invalid_state"
		return nil, terr
	}

	status, cerr := s.gateway.Charge(ctx, o.CustomerID, total)
	if cerr != nil {
		s.releaseItems(ctx, o, reserved)
		outcome = "charge_error"
		return nil, s.fail(ctx, o, logger, outcome, o.PaymentFailed, cerr)
	}
	if status != dompayment.StatusSuccess {
		s.releaseItems(ctx, o, reserved)
		outcome = "payment_declined"
		return nil, s.fail(ctx, o, logger, outcome, o.PaymentFailed, ErrPaymentDeclined)
	}

	if terr := o.PaymentSucceeded(); terr != nil {
		outcome = "invalid_state"
		return nil, terr
	}
	if uerr := s.orders.Update(ctx, o); uerr != nil {
		outcome = "repository_error"
		return nil, fmt.Errorf("order: update: %w", uerr)
	}

	s.commitToHistory(ctx, o, logger)

	return &ProcessResult{
		OrderID: o.ID,
		Status:  o.Status(),
		Total:   total,
	}, nil
}

// History returns the customer's committed order IDs in completion order.
func (s *Service) History(ctx context.Context, customerID string) ([]string, error) {
	cust, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domcustomer.ErrNotFound) {
			return nil, ErrUnknownCustomer
		}
		return nil, fmt.Errorf("order: load customer: %w", err)
	}
	return append([]string(nil), cust.OrderIDs...), nil
}

type line struct {
	productID string
	quantity  int
}

// reserveItems reserves every line in deterministic order and reports what
// it managed to reserve, so a failure can be rolled back precisely.
func (s *Service) reserveItems(ctx context.Context, o *domain.Order) ([]line, error) {
	ids := make([]string, 0, len(o.Items))
	for pid := range o.Items {
		ids = append(ids, pid)
	}
	sort.Strings(ids)

	reserved := make([]line, 0, len(ids))
	for _, pid := range ids {
		qty := o.Items[pid]
		if err := s.ledger.Reserve(ctx, pid, qty); err != nil {
			return reserved, err
		}
		reserved = append(reserved, line{productID: pid, quantity: qty})
	}
	return reserved, nil
}

func (s *Service) releaseItems(ctx context.Context, o *domain.Order, reserved []line) {
	for _, l := range reserved {
		if err := s.ledger.Release(ctx, l.productID, l.quantity); err != nil {
			s.log.Error("reservation_release_failed",
				zap.String("order_id", o.ID),
				zap.String("product_id", l.productID),
				zap.Int("quantity", l.quantity),
				zap.Error(err),
			)
		}
	}
}

func (s *Service) totalOf(ctx context.Context, o *domain.Order) (int64, error) {
	var total int64
	for pid, qty := range o.Items {
		price, err := s.ledger.UnitPrice(ctx, pid)
		if err != nil {
			return 0, err
		}
		total += price * int64(qty)
	}
	return total, nil
}

// fail drives the order into the Failed state, persists it and hands the
// business error back to the caller.
func (s *Service) fail(ctx context.Context, o *domain.Order, logger *zap.Logger, reason string, transition func(string) error, cause error) error {
	if terr := transition(reason); terr != nil {
		logger.Error("order_fail_transition_error", zap.Error(terr))
	}
	if uerr := s.orders.Update(ctx, o); uerr != nil {
		logger.Error("order_update_failed", zap.Error(uerr))
	}
	logger.Error("order_failed",
		zap.String("reason", reason),
		zap.Error(cause),
	)
	return cause
}

func (s *Service) commitToHistory(ctx context.Context, o *domain.Order, logger *zap.Logger) {
	cust, err := s.customers.FindByID(ctx, o.CustomerID)
	if err != nil {
		logger.Error("history_append_failed", zap.Error(err))
		return
	}
	cust.AppendOrder(o.ID)
	if err := s.customers.Update(ctx, cust); err != nil {
		logger.Error("history_append_failed", zap.Error(err))
		return
	}
	if s.notifier != nil {
		s.notifier.OrderConfirmed(ctx, cust.Email, o.ID)
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, dominv.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, dominv.ErrNotFound):
		return "unknown_product"
	default:
		return "reservation_error"
	}
}
