package customer

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("customer: not found")
	ErrInvalidID = errors.New("customer: id is required")
)

// Customer is a registered buyer. OrderIDs is the append-only history of
// committed orders; it holds identifiers only, never order objects, so the
// customer/order association stays one-directional.
type Customer struct {
	ID        string
	Name      string
	Email     string
	OrderIDs  []string
	CreatedAt time.Time
}

func New(id, name, email string) (*Customer, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	return &Customer{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// AppendOrder records a committed order at the end of the history.
func (c *Customer) AppendOrder(orderID string) {
	c.OrderIDs = append(c.OrderIDs, orderID)
}

func (c *Customer) Clone() *Customer {
	clone := *c
	clone.OrderIDs = append([]string(nil), c.OrderIDs...)
	return &clone
}
