package payment

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrPaymentNotFound = errors.New("payment not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *Payment) (*Payment, error) {
	query := `
		INSERT INTO payments (reservation_id, amount_cents, method, status, receipt_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, reservation_id, amount_cents, method, status, receipt_number, created_at
	`

	var created Payment
	err := r.db.GetContext(ctx, &created, query,
		p.ReservationID, p.AmountCents, p.Method, p.Status, p.ReceiptNumber)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Payment, error) {
	query := `
		SELECT id, reservation_id, amount_cents, method, status, receipt_number, created_at
		FROM payments
		WHERE id = $1
	`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *Repository) ListByReservation(ctx context.Context, reservationID int) ([]Payment, error) {
	query := `
		SELECT id, reservation_id, amount_cents, method, status, receipt_number, created_at
		FROM payments
		WHERE reservation_id = $1
		ORDER BY created_at DESC
	`

	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, query, reservationID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// ExistsForReservation reports whether an approved payment is already
// recorded. Satisfies the reservation coordinator's payment lookup.
func (r *Repository) ExistsForReservation(ctx context.Context, reservationID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM payments
			WHERE reservation_id = $1
			  AND status = 'approved'
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, reservationID)
	if err != nil {
		return false, err
	}

	return exists, nil
}
