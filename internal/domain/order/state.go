package order

// OrderState implements the state pattern for the order lifecycle:
//
//	Building -> Reserving -> Paying -> Committed
//	                 \            \
//	                  -> Failed    -> Failed
//
// Committed and Failed are terminal. Every other move returns
// ErrInvalidStateTransition.
type OrderState interface {
	Status() Status
	Terminal() bool
	OnSubmit(o *Order) (OrderState, error)
	OnItemsReserved(o *Order) (OrderState, error)
	OnReservationFailed(o *Order, reason string) (OrderState, error)
	OnPaymentSucceeded(o *Order) (OrderState, error)
	OnPaymentFailed(o *Order, reason string) (OrderState, error)
}

type buildingState struct{}

func (buildingState) Status() Status { return StatusBuilding }
func (buildingState) Terminal() bool { return false }

func (buildingState) OnSubmit(o *Order) (OrderState, error) {
	o.FailureReason = ""
	return reservingState{}, nil
}

func (buildingState) OnItemsReserved(*Order) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (buildingState) OnReservationFailed(*Order, string) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (buildingState) OnPaymentSucceeded(*Order) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (buildingState) OnPaymentFailed(*Order, string) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

type reservingState struct{}

func (reservingState) Status() Status { return StatusReserving }
func (reservingState) Terminal() bool { return false }

func (reservingState) OnSubmit(*Order) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (reservingState) OnItemsReserved(o *Order) (OrderState, error) {
	o.FailureReason = ""
	return payingState{}, nil
}

func (reservingState) OnReservationFailed(o *Order, reason string) (OrderState, error) {
	o.FailureReason = reason
	return failedState{}, nil
}

func (reservingState) OnPaymentSucceeded(*Order) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (reservingState) OnPaymentFailed(*Order, string) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

type payingState struct{}

func (payingState) Status() Status { return StatusPaying }
func (payingState) Terminal() bool { return false }

func (payingState) OnSubmit(*Order) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (payingState) OnItemsReserved(*Order) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (payingState) OnReservationFailed(*Order, string) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (payingState) OnPaymentSucceeded(o *Order) (OrderState, error) {
	o.FailureReason = ""
	return committedState{}, nil
}

func (payingState) OnPaymentFailed(o *Order, reason string) (OrderState, error) {
	o.FailureReason = reason
	return failedState{}, nil
}

type committedState struct{}

func (committedState) Status() Status { return StatusCommitted }
func (committedState) Terminal() bool { return true }

func (committedState) OnSubmit(*Order) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (committedState) OnItemsReserved(*Order) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (committedState) OnReservationFailed(*Order, string) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (committedState) OnPaymentSucceeded(*Order) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (committedState) OnPaymentFailed(*Order, string) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

type failedState struct{}

func (failedState) Status() Status { return StatusFailed }
func (failedState) Terminal() bool { return true }

func (failedState) OnSubmit(*Order) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (failedState) OnItemsReserved(*Order) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (failedState) OnReservationFailed(*Order, string) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (failedState) OnPaymentSucceeded(*Order) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (failedState) OnPaymentFailed(*Order, string) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}
