package court

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

func (r *Repository) Create(ctx context.Context, c *Court) (*Court, error) {
	query := `
		INSERT INTO courts (name, type, surface, size, roofed, lighting, status, base_price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, type, surface, size, roofed, lighting, status, base_price_cents, created_at
	`

	var created Court
	err := r.db.GetContext(ctx, &created, query,
		c.Name, c.Type, c.Surface, c.Size, c.Roofed, c.Lighting, c.Status, c.BasePriceCents)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Court, error) {
	query := `
		SELECT id, name, type, surface, size, roofed, lighting, status, base_price_cents, created_at
		FROM courts
		WHERE id = $1
	`

	var c Court
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]Court, error) {
	query := `
		SELECT id, name, type, surface, size, roofed, lighting, status, base_price_cents, created_at
		FROM courts
		ORDER BY id
	`

	var courts []Court
	err := r.db.SelectContext(ctx, &courts, query)
	if err != nil {
		return nil, err
	}

	return courts, nil
}

func (r *Repository) Update(ctx context.Context, c *Court) error {
	query := `
		UPDATE courts
		SET name = $1, surface = $2, size = $3, roofed = $4, lighting = $5,
		    status = $6, base_price_cents = $7
		WHERE id = $8
	`

	_, err := r.db.ExecContext(ctx, query,
		c.Name, c.Surface, c.Size, c.Roofed, c.Lighting, c.Status, c.BasePriceCents, c.ID)
	return err
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM courts WHERE id = $1`, id)
	return err
}
