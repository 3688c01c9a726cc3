package payment

import (
	"context"
	"errors"
)

var ErrInvalidAmount = errors.New("payment: amount must be zero or greater")

type Status string

const (
	StatusSuccess  Status = "success"
	StatusDeclined Status = "declined"
)

// Gateway charges a customer. The charge is atomic: either the full amount
// goes through or nothing does. A declined charge is a regular Status, not
// an error.
type Gateway interface {
	Charge(ctx context.Context, customerID string, amount int64) (Status, error)
}
