package order

import (
	"errors"
	"time"
)

var (
	ErrNotFound               = errors.New("order: not found")
	ErrInvalidID              = errors.New("order: id is required")
	ErrInvalidCustomer        = errors.New("order: customer id is required")
	ErrInvalidQuantity        = errors.New("order: quantity must be greater than zero")
	ErrInvalidStateTransition = errors.New("order: invalid state transition")
)

type Status string

const (
	StatusBuilding  Status = "building"
	StatusReserving Status = "reserving"
	StatusPaying    Status = "paying"
	StatusCommitted Status = "committed"
	StatusFailed    Status = "failed"
)

// Order accumulates line items while Building, then runs once through
// Reserving and Paying to a terminal state. Items maps product ID to the
// requested quantity; entries are always positive. Total is in minor
// currency units and is only set during processing, from catalog prices at
// that moment.
type Order struct {
	ID            string
	CustomerID    string
	Items         map[string]int
	Total         int64
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	state OrderState
}

func New(id, customerID string) (*Order, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	if customerID == "" {
		return nil, ErrInvalidCustomer
	}

	now := time.Now().UTC()
	return &Order{
		ID:         id,
		CustomerID: customerID,
		Items:      make(map[string]int),
		CreatedAt:  now,
		UpdatedAt:  now,
		state:      buildingState{},
	}, nil
}

func (o *Order) Status() Status { return o.state.Status() }

// Processed reports whether the order reached a terminal state. It flips
// exactly once; terminal states accept no further transitions.
func (o *Order) Processed() bool { return o.state.Terminal() }

// AddItem accumulates quantity for a product while the order is Building.
// Repeated calls for the same product add up rather than overwrite.
func (o *Order) AddItem(productID string, quantity int) error {
	if o.Status() != StatusBuilding {
		return ErrInvalidStateTransition
	}
	if productID == "" {
		return ErrInvalidID
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	o.Items[productID] += quantity
	o.touch()
	return nil
}

func (o *Order) BeginReservation() error {
	return o.transition(func(s OrderState) (OrderState, error) { return s.OnSubmit(o) })
}

func (o *Order) ItemsReserved() error {
	return o.transition(func(s OrderState) (OrderState, error) { return s.OnItemsReserved(o) })
}

func (o *Order) ReservationFailed(reason string) error {
	return o.transition(func(s OrderState) (OrderState, error) { return s.OnReservationFailed(o, reason) })
}

func (o *Order) PaymentSucceeded() error {
	return o.transition(func(s OrderState) (OrderState, error) { return s.OnPaymentSucceeded(o) })
}

func (o *Order) PaymentFailed(reason string) error {
	return o.transition(func(s OrderState) (OrderState, error) { return s.OnPaymentFailed(o, reason) })
}

func (o *Order) transition(fn func(OrderState) (OrderState, error)) error {
	next, err := fn(o.state)
	if err != nil {
		return err
	}
	o.state = next
	o.touch()
	return nil
}

func (o *Order) Clone() *Order {
	clone := *o
	clone.Items = make(map[string]int, len(o.Items))
	for pid, qty := range o.Items {
		clone.Items[pid] = qty
	}
	return &clone
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}
