package bus

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/quickmart/fulfillment/internal/domain/event"
	"github.com/quickmart/fulfillment/internal/pkg/logging"
)

const handlerTimeout = 30 * time.Second

// Bus is an in-memory event bus used for notification fanout. It is not
// durable; events published while no subscriber is registered are dropped.
type Bus struct {
	mu        sync.RWMutex
	subs      map[string][]event.Handler
	queue     chan event.Event
	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
	log       *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		subs:  make(map[string][]event.Handler),
		queue: make(chan event.Event, 1024), // buffer for backpressure
		done:  make(chan struct{}),
		log:   logger.With(zap.String("component", "event_bus")),
	}
}

func (b *Bus) Subscribe(eventName string, h event.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventName] = append(b.subs[eventName], h)
}

func (b *Bus) Start(ctx context.Context) {
	b.startOnce.Do(func() {
		bg, cancel := context.WithCancel(ctx)
		b.cancel = cancel
		go b.dispatchLoop(bg)
		b.log.Info("event_bus_started")
	})
}

func (b *Bus) Stop(ctx context.Context) {
	_ = ctx
	b.stopOnce.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
		close(b.queue)
		<-b.done
		b.log.Info("event_bus_stopped")
	})
}

func (b *Bus) Publish(ctx context.Context, e event.Event) error {
	if e == nil {
		return nil
	}
	select {
	case b.queue <- e:
		b.log.Debug("event_enqueued", zap.String("event", e.EventName()))
		return nil
	case <-ctx.Done():
		b.log.Warn("event_enqueue_aborted",
			zap.String("event", e.EventName()),
			zap.Error(ctx.Err()),
		)
		return ctx.Err()
	}
}

func (b *Bus) dispatchLoop(ctx context.Context) {
	defer close(b.done)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-b.queue:
			if !ok {
				return
			}
			b.fanout(ctx, e)
		}
	}
}

func (b *Bus) fanout(ctx context.Context, e event.Event) {
	name := e.EventName()

	b.mu.RLock()
	handlers := append([]event.Handler(nil), b.subs[name]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.log.Debug("event_dropped_no_subscriber", zap.String("event", name))
		return
	}

	// Handlers keep running during shutdown of the publisher's context.
	ctx = context.WithoutCancel(ctx)

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("event_handler_panic",
						zap.String("event", name),
						zap.Any("panic", r),
						zap.String("stack", string(debug.Stack())),
					)
				}
			}()

			hctx, cancel := context.WithTimeout(ctx, handlerTimeout)
			defer cancel()
			hctx = logging.ContextWithLogger(hctx, b.log.With(zap.String("event", name)))
			if err := h(hctx, e); err != nil {
				b.log.Warn("event_handler_error",
					zap.String("event", name),
					zap.Error(err),
				)
			}
		}()
	}

	b.log.Debug("event_fanned_out",
		zap.String("event", name),
		zap.Int("handlers", len(handlers)),
	)
}
