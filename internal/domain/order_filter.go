package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderFilter has AND semantics across fields, OR semantics within each field slice
type OrderFilter struct {
	IDs       []uuid.UUID
	UserIDs   []uuid.UUID
	CartIDs   []uuid.UUID
	Statuses  []OrderStatus
	CreatedAt *TimeRange
}

func (f OrderFilter) Validate() error {
	if len(f.IDs) == 0 && len(f.UserIDs) == 0 && len(f.CartIDs) == 0 && len(f.Statuses) == 0 && f.CreatedAt == nil {
		return errors.New("all fields are empty")
	}

	for _, status := range f.Statuses {
		if !status.Known() {
			return fmt.Errorf("statuses: %w: %s", ErrUnknownOrderStatus, status)
		}
	}

	if f.CreatedAt != nil {
		if err := f.CreatedAt.Validate(); err != nil {
			return fmt.Errorf("createdAt: %w", err)
		}
	}

	return nil
}

type TimeRange struct {
	Before *time.Time
	After  *time.Time
}

func (t TimeRange) Validate() error {
	if t.Before == nil && t.After == nil {
		return errors.New("both Before and After are nil")
	}

	if t.Before != nil && t.After != nil {
		if t.Before.Before(*t.After) {
			return fmt.Errorf("before is before After")
		}
	}

	return nil
}
