package domain

import (
	"errors"
	"fmt"
)

// OrderStatus is stored as a small integer code. Codes outside the known set
// are kept as-is and report themselves as unknown.
type OrderStatus int16

// remember to add new statuses to the orderStatusNames map
const (
	OrderStatusOpen             OrderStatus = 1
	OrderStatusAwaitingPayment  OrderStatus = 2
	OrderStatusPaymentConfirmed OrderStatus = 3
	OrderStatusDispatched       OrderStatus = 4
	OrderStatusDelivered        OrderStatus = 5
	OrderStatusCanceled         OrderStatus = 6
)

var orderStatusNames = map[OrderStatus]string{
	OrderStatusOpen:             "OPEN_ORDER",
	OrderStatusAwaitingPayment:  "AWAITING_PAYMENT",
	OrderStatusPaymentConfirmed: "PAYMENT_CONFIRMED",
	OrderStatusDispatched:       "ORDER_DISPATCHED",
	OrderStatusDelivered:        "ORDER_DELIVERED",
	OrderStatusCanceled:         "CANCELED_ORDER",
}

var ErrUnknownOrderStatus = errors.New("unknown order status")

// OrderStatusFromCode never fails; check Known on the result.
func OrderStatusFromCode(code int16) OrderStatus {
	return OrderStatus(code)
}

func (s OrderStatus) Code() int16 {
	return int16(s)
}

func (s OrderStatus) Known() bool {
	_, ok := orderStatusNames[s]
	return ok
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int16(s))
}

func ToOrderStatus(name string) (OrderStatus, error) {
	for status, n := range orderStatusNames {
		if n == name {
			return status, nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrUnknownOrderStatus, name)
}

func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusOpen,
		OrderStatusAwaitingPayment,
		OrderStatusPaymentConfirmed,
		OrderStatusDispatched,
		OrderStatusDelivered,
		OrderStatusCanceled,
	}
}
