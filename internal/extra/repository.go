package extra

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, e *ExtraService) (*ExtraService, error) {
	query := `
		INSERT INTO extra_services (asado_people, referee, match_record, bibs, paddle_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, asado_people, referee, match_record, bibs, paddle_count, created_at
	`

	var created ExtraService
	err := r.db.GetContext(ctx, &created, query,
		e.AsadoPeople, e.Referee, e.MatchRecord, e.Bibs, e.PaddleCount)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*ExtraService, error) {
	query := `
		SELECT id, asado_people, referee, match_record, bibs, paddle_count, created_at
		FROM extra_services
		WHERE id = $1
	`

	var e ExtraService
	err := r.db.GetContext(ctx, &e, query, id)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]ExtraService, error) {
	query := `
		SELECT id, asado_people, referee, match_record, bibs, paddle_count, created_at
		FROM extra_services
		ORDER BY id
	`

	var extras []ExtraService
	err := r.db.SelectContext(ctx, &extras, query)
	if err != nil {
		return nil, err
	}

	return extras, nil
}
