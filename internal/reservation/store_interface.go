package reservation

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store persists reservations. Read paths run against the pool; the
// methods taking an sqlx.ExtContext participate in the coordinator's
// transaction.
type Store interface {
	GetByID(ctx context.Context, id int) (*Reservation, error)
	ListAll(ctx context.Context) ([]Reservation, error)
	ListByUser(ctx context.Context, userID int, dateFrom, dateTo *time.Time) ([]Reservation, error)
	ListActiveByTournament(ctx context.Context, tournamentID int) ([]Reservation, error)
	SlotHasActiveReservation(ctx context.Context, slotID int) (bool, error)

	ActiveForSlotExists(ctx context.Context, q sqlx.ExtContext, courtID, slotID int) (bool, error)
	Insert(ctx context.Context, q sqlx.ExtContext, r *Reservation) (*Reservation, error)
	Update(ctx context.Context, q sqlx.ExtContext, r *Reservation) error
	UpdateStatusFrom(ctx context.Context, q sqlx.ExtContext, id int, to string, from ...string) error
}
