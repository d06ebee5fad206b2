package court

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

var (
	ErrCourtNotFound = errors.New("court not found")
	ErrInvalidCourt  = errors.New("invalid court data")
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateCourtRequest) (*Court, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidCourt
	}
	if !ValidType(req.Type) {
		return nil, ErrInvalidCourt
	}
	if req.BasePriceCents <= 0 {
		return nil, ErrInvalidCourt
	}

	c := &Court{
		Name:           strings.TrimSpace(req.Name),
		Type:           req.Type,
		Surface:        req.Surface,
		Size:           req.Size,
		Roofed:         req.Roofed,
		Lighting:       req.Lighting,
		Status:         "disponible",
		BasePriceCents: req.BasePriceCents,
	}

	return s.repo.Create(ctx, c)
}

func (s *Service) GetByID(ctx context.Context, id int) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Court, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Update(ctx context.Context, id int, req UpdateCourtRequest) (*Court, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidCourt
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Surface != nil {
		c.Surface = req.Surface
	}
	if req.Size != nil {
		c.Size = req.Size
	}
	if req.Roofed != nil {
		c.Roofed = *req.Roofed
	}
	if req.Lighting != nil {
		c.Lighting = *req.Lighting
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.BasePriceCents != nil {
		if *req.BasePriceCents <= 0 {
			return nil, ErrInvalidCourt
		}
		c.BasePriceCents = *req.BasePriceCents
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
