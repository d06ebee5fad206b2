package slot

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Find(ctx context.Context, id int) (*Slot, error)
	FindAvailable(ctx context.Context, f Filter) ([]Slot, error)
	ListByCourt(ctx context.Context, courtID int) ([]Slot, error)
	Create(ctx context.Context, s *Slot) (*Slot, error)
	Update(ctx context.Context, s *Slot) error
	Delete(ctx context.Context, id int) error
	UpdateStatus(ctx context.Context, id int, status string) error
	OverlapExists(ctx context.Context, courtID int, date time.Time, startTime, endTime string, excludeID int) (bool, error)

	// Transaction-scoped accessors used by the reservation coordinator.
	GetForUpdate(ctx context.Context, q sqlx.ExtContext, id int) (*Slot, error)
	MarkHeld(ctx context.Context, q sqlx.ExtContext, id int) error
	MarkAvailable(ctx context.Context, q sqlx.ExtContext, id int) error
}
