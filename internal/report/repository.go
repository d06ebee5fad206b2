package report

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type CourtUsage struct {
	CourtID             int    `db:"court_id" json:"court_id"`
	CourtName           string `db:"court_name" json:"court_name"`
	ReservationsCreated int    `db:"reservations_created" json:"reservations_created"`
	ReservationsPaid    int    `db:"reservations_paid" json:"reservations_paid"`
	RevenueCents        int64  `db:"revenue_cents" json:"revenue_cents"`
}

type MonthlyUtilization struct {
	Month         string  `db:"month" json:"month"`
	CourtID       int     `db:"court_id" json:"court_id"`
	CourtName     string  `db:"court_name" json:"court_name"`
	TotalSlots    int     `db:"total_slots" json:"total_slots"`
	ReservedSlots int     `db:"reserved_slots" json:"reserved_slots"`
	Utilization   float64 `db:"utilization" json:"utilization"`
}

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCourtUsage(ctx context.Context, from, to time.Time) ([]CourtUsage, error) {
	query := `
SELECT
  c.id   AS court_id,
  c.name AS court_name,
  COUNT(res.*) FILTER (WHERE res.status IN ('pending', 'confirmed', 'paid')) AS reservations_created,
  COUNT(res.*) FILTER (WHERE res.status = 'paid')                            AS reservations_paid,
  COALESCE(SUM(res.price_cents) FILTER (WHERE res.status = 'paid'), 0)       AS revenue_cents
FROM courts c
LEFT JOIN reservations res ON res.court_id = c.id
  AND res.created_at BETWEEN $1 AND $2
GROUP BY c.id, c.name
ORDER BY c.id;
`
	var usage []CourtUsage
	if err := r.db.SelectContext(ctx, &usage, query, from, to); err != nil {
		return nil, err
	}
	return usage, nil
}

func (r *Repository) GetMonthlyUtilization(ctx context.Context, from, to time.Time) ([]MonthlyUtilization, error) {
	query := `
SELECT
  TO_CHAR(s.date, 'YYYY-MM') AS month,
  c.id   AS court_id,
  c.name AS court_name,
  COUNT(s.*)                                   AS total_slots,
  COUNT(s.*) FILTER (WHERE s.status = 'held')  AS reserved_slots,
  CASE WHEN COUNT(s.*) = 0 THEN 0
       ELSE COUNT(s.*) FILTER (WHERE s.status = 'held')::float / COUNT(s.*)
  END AS utilization
FROM courts c
LEFT JOIN slots s ON s.court_id = c.id
WHERE s.date BETWEEN $1 AND $2
GROUP BY TO_CHAR(s.date, 'YYYY-MM'), c.id, c.name
ORDER BY month, c.id;
`
	var utilization []MonthlyUtilization
	if err := r.db.SelectContext(ctx, &utilization, query, from, to); err != nil {
		return nil, err
	}
	return utilization, nil
}
