package slot

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrSlotNotFound = errors.New("slot not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Find(ctx context.Context, id int) (*Slot, error) {
	query := `
		SELECT id, court_id, date, start_time, end_time, status, created_at
		FROM slots
		WHERE id = $1
	`

	var s Slot
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) FindAvailable(ctx context.Context, f Filter) ([]Slot, error) {
	query := `
		SELECT id, court_id, date, start_time, end_time, status, created_at
		FROM slots
		WHERE status = 'available'
		  AND date BETWEEN ? AND ?
	`
	args := []interface{}{f.DateFrom, f.DateTo}

	if len(f.CourtIDs) > 0 {
		query += " AND court_id IN (?)"
		args = append(args, f.CourtIDs)
	}
	if f.TimeFrom != "" {
		query += " AND start_time >= ?"
		args = append(args, f.TimeFrom)
	}
	if f.TimeTo != "" {
		query += " AND end_time <= ?"
		args = append(args, f.TimeTo)
	}

	query += " ORDER BY date, start_time, id"

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var slots []Slot
	if err := r.db.SelectContext(ctx, &slots, query, expanded...); err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) ListByCourt(ctx context.Context, courtID int) ([]Slot, error) {
	query := `
		SELECT id, court_id, date, start_time, end_time, status, created_at
		FROM slots
		WHERE court_id = $1
		ORDER BY date, start_time
	`

	var slots []Slot
	err := r.db.SelectContext(ctx, &slots, query, courtID)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) Create(ctx context.Context, s *Slot) (*Slot, error) {
	query := `
		INSERT INTO slots (court_id, date, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, court_id, date, start_time, end_time, status, created_at
	`

	var created Slot
	err := r.db.GetContext(ctx, &created, query, s.CourtID, s.Date, s.StartTime, s.EndTime, s.Status)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) Update(ctx context.Context, s *Slot) error {
	query := `
		UPDATE slots
		SET date = $1, start_time = $2, end_time = $3, status = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query, s.Date, s.StartTime, s.EndTime, s.Status, s.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status string) error {
	return r.setStatus(ctx, r.db, id, status)
}

func (r *repository) OverlapExists(ctx context.Context, courtID int, date time.Time, startTime, endTime string, excludeID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM slots
			WHERE court_id = $1
			  AND date = $2
			  AND id <> $3
			  AND NOT (end_time <= $4 OR start_time >= $5)
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, courtID, date, excludeID, startTime, endTime)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// GetForUpdate locks the slot row for the remainder of the caller's
// transaction, serializing concurrent reservation attempts on the slot.
func (r *repository) GetForUpdate(ctx context.Context, q sqlx.ExtContext, id int) (*Slot, error) {
	query := `
		SELECT id, court_id, date, start_time, end_time, status, created_at
		FROM slots
		WHERE id = $1
		FOR UPDATE
	`

	var s Slot
	err := sqlx.GetContext(ctx, q, &s, query, id)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) MarkHeld(ctx context.Context, q sqlx.ExtContext, id int) error {
	return r.setStatus(ctx, q, id, StatusHeld)
}

func (r *repository) MarkAvailable(ctx context.Context, q sqlx.ExtContext, id int) error {
	return r.setStatus(ctx, q, id, StatusAvailable)
}

func (r *repository) setStatus(ctx context.Context, q sqlx.ExtContext, id int, status string) error {
	result, err := q.ExecContext(ctx, `UPDATE slots SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}
