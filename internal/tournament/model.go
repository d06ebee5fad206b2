package tournament

import (
	"time"

	"courtslot/internal/reservation"
)

const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

type Tournament struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	OrganizerID int       `db:"organizer_id" json:"organizer_id"`
	Discipline  string    `db:"discipline" json:"discipline"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreateTournamentRequest struct {
	Name       string `json:"name" binding:"required"`
	Discipline string `json:"discipline" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
}

type UpdateTournamentRequest struct {
	Name       *string `json:"name"`
	Discipline *string `json:"discipline"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
}

// BatchReserveRequest asks for SlotCount slots for the tournament,
// drawn from the available slots matching the filter. Every booked
// slot is reserved for UserID, each carrying the same extra-service
// bundle when one is given.
type BatchReserveRequest struct {
	UserID         int    `json:"user_id" binding:"required"`
	CourtIDs       []int  `json:"court_ids"`
	DateFrom       string `json:"date_from" binding:"required"`
	DateTo         string `json:"date_to" binding:"required"`
	TimeFrom       string `json:"time_from"`
	TimeTo         string `json:"time_to"`
	SlotCount      int    `json:"slot_count" binding:"required,gt=0"`
	ExtraServiceID *int   `json:"extra_service_id"`
}

// BatchFailure records one slot the batch could not book and why. A
// failed slot never rolls back its siblings.
type BatchFailure struct {
	SlotID  int    `json:"slot_id"`
	CourtID int    `json:"court_id"`
	Reason  string `json:"reason"`
}

type BatchResult struct {
	TournamentID int                       `json:"tournament_id"`
	Requested    int                       `json:"requested"`
	Succeeded    []reservation.Reservation `json:"succeeded"`
	Failed       []BatchFailure            `json:"failed"`
}

// Complete reports whether every requested slot was booked.
func (r *BatchResult) Complete() bool {
	return len(r.Succeeded) == r.Requested
}
