package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const reservationColumns = `id, user_id, court_id, slot_id, extra_service_id, tournament_id, status, origin, price_cents, created_at, updated_at`

const reservationColumnsQualified = `r.id, r.user_id, r.court_id, r.slot_id, r.extra_service_id, r.tournament_id, r.status, r.origin, r.price_cents, r.created_at, r.updated_at`

type store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) Store {
	return &store{db: db}
}

func (s *store) GetByID(ctx context.Context, id int) (*Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	var r Reservation
	err := s.db.GetContext(ctx, &r, query, id)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

func (s *store) ListAll(ctx context.Context) ([]Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC`

	var reservations []Reservation
	err := s.db.SelectContext(ctx, &reservations, query)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

// ListByUser filters by the reserved slot's date, not the moment the
// reservation row was written.
func (s *store) ListByUser(ctx context.Context, userID int, dateFrom, dateTo *time.Time) ([]Reservation, error) {
	query := `
		SELECT ` + reservationColumnsQualified + `
		FROM reservations r
		JOIN slots s ON s.id = r.slot_id
		WHERE r.user_id = $1
	`
	args := []interface{}{userID}

	if dateFrom != nil {
		args = append(args, *dateFrom)
		query += ` AND s.date >= $2`
	}
	if dateTo != nil {
		args = append(args, *dateTo)
		if dateFrom != nil {
			query += ` AND s.date < $3`
		} else {
			query += ` AND s.date < $2`
		}
	}

	query += ` ORDER BY s.date DESC, s.start_time DESC`

	var reservations []Reservation
	err := s.db.SelectContext(ctx, &reservations, query, args...)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (s *store) ListActiveByTournament(ctx context.Context, tournamentID int) ([]Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE tournament_id = $1
		  AND status IN ('pending', 'confirmed', 'paid')
		ORDER BY id
	`

	var reservations []Reservation
	err := s.db.SelectContext(ctx, &reservations, query, tournamentID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (s *store) SlotHasActiveReservation(ctx context.Context, slotID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE slot_id = $1
			  AND status IN ('pending', 'confirmed', 'paid')
		)
	`

	var exists bool
	err := s.db.GetContext(ctx, &exists, query, slotID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// ActiveForSlotExists is the in-transaction conflict check. It must run
// after the slot row has been locked so that two concurrent creates for
// the same slot cannot both observe false.
func (s *store) ActiveForSlotExists(ctx context.Context, q sqlx.ExtContext, courtID, slotID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE court_id = $1
			  AND slot_id = $2
			  AND status IN ('pending', 'confirmed', 'paid')
		)
	`

	var exists bool
	err := sqlx.GetContext(ctx, q, &exists, query, courtID, slotID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (s *store) Insert(ctx context.Context, q sqlx.ExtContext, r *Reservation) (*Reservation, error) {
	query := `
		INSERT INTO reservations (user_id, court_id, slot_id, extra_service_id, tournament_id, status, origin, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + reservationColumns

	var created Reservation
	err := sqlx.GetContext(ctx, q, &created, query,
		r.UserID, r.CourtID, r.SlotID, r.ExtraServiceID, r.TournamentID, r.Status, r.Origin, r.PriceCents)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Update rewrites a reservation's bookable fields. The status guard in
// the WHERE clause makes the write a no-op when the row advanced past
// pending after the caller last read it.
func (s *store) Update(ctx context.Context, q sqlx.ExtContext, r *Reservation) error {
	query := `
		UPDATE reservations
		SET user_id = $1, court_id = $2, slot_id = $3, extra_service_id = $4, price_cents = $5, updated_at = NOW()
		WHERE id = $6 AND status = 'pending'
	`

	result, err := q.ExecContext(ctx, query, r.UserID, r.CourtID, r.SlotID, r.ExtraServiceID, r.PriceCents, r.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: reservation %d is no longer pending", ErrInvalidState, r.ID)
	}

	return nil
}

// UpdateStatusFrom transitions a reservation to a new status only if it
// is still in one of the given states, so a concurrent transition
// observed after the caller's read cannot be overwritten.
func (s *store) UpdateStatusFrom(ctx context.Context, q sqlx.ExtContext, id int, to string, from ...string) error {
	query, args, err := sqlx.In(
		`UPDATE reservations SET status = ?, updated_at = NOW() WHERE id = ? AND status IN (?)`,
		to, id, from)
	if err != nil {
		return err
	}
	query = s.db.Rebind(query)

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: reservation %d changed state", ErrInvalidState, id)
	}

	return nil
}
