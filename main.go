package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	appInventory "github.com/quickmart/fulfillment/internal/application/inventory"
	appNotification "github.com/quickmart/fulfillment/internal/application/notification"
	appOrder "github.com/quickmart/fulfillment/internal/application/order"
	appPayment "github.com/quickmart/fulfillment/internal/application/payment"
	"github.com/quickmart/fulfillment/internal/application/storefront"
	"github.com/quickmart/fulfillment/internal/config"
	"github.com/quickmart/fulfillment/internal/infrastructure/bus"
	"github.com/quickmart/fulfillment/internal/infrastructure/id"
	"github.com/quickmart/fulfillment/internal/infrastructure/memory"
	"github.com/quickmart/fulfillment/internal/infrastructure/prometrics"
	"github.com/quickmart/fulfillment/internal/pkg/logging"
)

func main() {
	cfg := config.FromEnv()

	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	registry := prometrics.New(cfg.ServiceName)
	processTotal := registry.Counter("order_process_total", "Total order workflow runs by outcome.", "outcome")
	processDuration := registry.Histogram("order_process_duration_seconds", "Duration of order processing in seconds.", prometheus.DefBuckets)
	charges := registry.Counter("payment_charges_total", "Total simulated payment charges by outcome.", "outcome")
	lowStockAlerts := registry.Counter("low_stock_alerts_total", "Total low-stock alerts raised.")

	eventBus := bus.New(logger)
	eventBus.Start(context.Background())
	defer eventBus.Stop(context.Background())

	notifier := appNotification.NewService(eventBus, logger, lowStockAlerts)
	notificationWorker := appNotification.NewWorker(eventBus)
	notificationWorker.Start()

	catalogRepo := memory.NewCatalogRepository()
	inventoryRepo := memory.NewInventoryRepository()
	orderRepo := memory.NewOrderRepository()
	customerRepo := memory.NewCustomerRepository()

	ledger := appInventory.NewService(catalogRepo, inventoryRepo, notifier, cfg.LowStockThreshold, logger)
	gateway := appPayment.NewService(appPayment.RateDecider(cfg.PaymentSuccessRate), logger, charges)
	workflow := appOrder.NewService(ledger, gateway, notifier, orderRepo, customerRepo, id.NewUUIDGenerator(), logger, processTotal, processDuration)
	shop := storefront.NewService(workflow, ledger, customerRepo, logger)

	runStorefrontDemo(context.Background(), shop, ledger, logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("metrics_server_start", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics_server_error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics_server_shutdown_error", zap.Error(err))
	} else {
		logger.Info("metrics_server_stopped")
	}
}

// runStorefrontDemo drives the scripted fulfillment sequence: registrations,
// catalog setup, a successful order, an over-stock rejection, a restock and
// a follow-up order. Payment outcomes follow the configured success rate, so
// individual runs can legitimately end with declined orders.
func runStorefrontDemo(ctx context.Context, shop *storefront.Service, ledger *appInventory.Service, logger *zap.Logger) {
	if _, err := shop.RegisterCustomer(ctx, "U001", "Alice Smith", "alice@example.com"); err != nil {
		logger.Error("demo_register_failed", zap.String("customer_id", "U001"), zap.Error(err))
	}
	if _, err := shop.RegisterCustomer(ctx, "U002", "Bob Johnson", "bob@example.com"); err != nil {
		logger.Error("demo_register_failed", zap.String("customer_id", "U002"), zap.Error(err))
	}

	products := []struct {
		id, name  string
		unitPrice int64
		quantity  int
	}{
		{"P100", "Laptop", 99999, 10},
		{"P200", "Smartphone", 49999, 15},
		{"P300", "Headphones", 7999, 20},
	}
	for _, p := range products {
		if err := shop.AddProductToCatalog(ctx, p.id, p.name, p.unitPrice, p.quantity); err != nil {
			logger.Error("demo_catalog_add_failed", zap.String("product_id", p.id), zap.Error(err))
		}
	}

	placeOrder(ctx, shop, logger, "U001", "O1001", map[string]int{"P100": 1, "P300": 2})

	// 16 units exceed the 15 on the shelf: the line is rejected at add time.
	placeOrder(ctx, shop, logger, "U002", "O1002", map[string]int{"P200": 16})

	if err := shop.RestockProduct(ctx, "P200", 10); err != nil {
		logger.Error("demo_restock_failed", zap.String("product_id", "P200"), zap.Error(err))
	}
	placeOrder(ctx, shop, logger, "U002", "O1003", map[string]int{"P200": 5, "P300": 1})

	for _, customerID := range []string{"U001", "U002"} {
		history, err := shop.OrderHistory(ctx, customerID)
		if err != nil {
			continue
		}
		logger.Info("demo_order_history",
			zap.String("customer_id", customerID),
			zap.Strings("order_ids", history),
		)
	}

	// Top up anything the demo left under the threshold.
	low, err := ledger.LowStockItems(ctx)
	if err != nil {
		logger.Error("demo_low_stock_scan_failed", zap.Error(err))
		return
	}
	for _, item := range low {
		if err := shop.RestockProduct(ctx, item.ProductID, 10); err != nil {
			logger.Error("demo_restock_failed", zap.String("product_id", item.ProductID), zap.Error(err))
		}
	}

	logger.Info("demo_completed")
}

func placeOrder(ctx context.Context, shop *storefront.Service, logger *zap.Logger, customerID, orderID string, items map[string]int) {
	result, err := shop.PlaceOrder(ctx, customerID, orderID, items)
	if err != nil {
		logger.Warn("demo_order_failed",
			zap.String("order_id", orderID),
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return
	}
	logger.Info("demo_order_committed",
		zap.String("order_id", result.OrderID),
		zap.Int64("total", result.Total),
	)
}
