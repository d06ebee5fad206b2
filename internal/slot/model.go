package slot

import "time"

const (
	StatusAvailable = "available"
	StatusHeld      = "held"
	StatusCancelled = "cancelled"
)

// Slot is a fixed time interval on one court. Times are zero-padded
// "HH:MM" strings so that lexicographic order matches chronological order.
type Slot struct {
	ID        int       `db:"id" json:"id"`
	CourtID   int       `db:"court_id" json:"court_id"`
	Date      time.Time `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Filter narrows the available-slot query. Zero-value fields are ignored;
// the date range is required. Results are ordered by (date, start_time)
// so batch processing is deterministic.
type Filter struct {
	CourtIDs []int
	DateFrom time.Time
	DateTo   time.Time
	TimeFrom string
	TimeTo   string
}

type CreateSlotRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type UpdateSlotRequest struct {
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}
