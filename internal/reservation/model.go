package reservation

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

const (
	OriginOnline     = "online"
	OriginTournament = "tournament"
	OriginWalkIn     = "walk_in"
)

// ActiveStatuses are the states that count against the one-active-
// reservation-per-slot invariant. A cancelled reservation frees its slot.
var ActiveStatuses = []string{StatusPending, StatusConfirmed, StatusPaid}

type Reservation struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"user_id"`
	CourtID        int       `db:"court_id" json:"court_id"`
	SlotID         int       `db:"slot_id" json:"slot_id"`
	ExtraServiceID *int      `db:"extra_service_id" json:"extra_service_id,omitempty"`
	TournamentID   *int      `db:"tournament_id" json:"tournament_id,omitempty"`
	Status         string    `db:"status" json:"status"`
	Origin         string    `db:"origin" json:"origin"`
	PriceCents     int64     `db:"price_cents" json:"price_cents"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Active reports whether the reservation still occupies its slot.
func (r *Reservation) Active() bool {
	for _, s := range ActiveStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}

type CreateReservationRequest struct {
	SlotID         int  `json:"slot_id" binding:"required"`
	ExtraServiceID *int `json:"extra_service_id"`
}

// ModifyReservationRequest moves a pending reservation to another slot,
// reassigns it to another customer, and/or swaps its extra-service
// bundle. ClearExtra removes the bundle.
type ModifyReservationRequest struct {
	SlotID         *int `json:"slot_id"`
	UserID         *int `json:"user_id"`
	ExtraServiceID *int `json:"extra_service_id"`
	ClearExtra     bool `json:"clear_extra"`
}
