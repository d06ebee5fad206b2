package tournament

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, t *Tournament) (*Tournament, error) {
	query := `
		INSERT INTO tournaments (name, organizer_id, discipline, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, organizer_id, discipline, start_date, end_date, status, created_at
	`

	var created Tournament
	err := r.db.GetContext(ctx, &created, query,
		t.Name, t.OrganizerID, t.Discipline, t.StartDate, t.EndDate, t.Status)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Tournament, error) {
	query := `
		SELECT id, name, organizer_id, discipline, start_date, end_date, status, created_at
		FROM tournaments
		WHERE id = $1
	`

	var t Tournament
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]Tournament, error) {
	query := `
		SELECT id, name, organizer_id, discipline, start_date, end_date, status, created_at
		FROM tournaments
		ORDER BY start_date, id
	`

	var tournaments []Tournament
	err := r.db.SelectContext(ctx, &tournaments, query)
	if err != nil {
		return nil, err
	}

	return tournaments, nil
}

func (r *Repository) Update(ctx context.Context, t *Tournament) error {
	query := `
		UPDATE tournaments
		SET name = $1, discipline = $2, start_date = $3, end_date = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query, t.Name, t.Discipline, t.StartDate, t.EndDate, t.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTournamentNotFound
	}

	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tournaments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTournamentNotFound
	}

	return nil
}
