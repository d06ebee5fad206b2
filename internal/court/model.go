package court

import (
	"math"
	"strings"
	"time"
)

const (
	TypeFutbol  = "futbol"
	TypeBasquet = "basquet"
	TypePadel   = "padel"
)

type Court struct {
	ID             int       `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Type           string    `db:"type" json:"type"`
	Surface        *string   `db:"surface" json:"surface,omitempty"`
	Size           *string   `db:"size" json:"size,omitempty"`
	Roofed         bool      `db:"roofed" json:"roofed"`
	Lighting       bool      `db:"lighting" json:"lighting"`
	Status         string    `db:"status" json:"status"`
	BasePriceCents int64     `db:"base_price_cents" json:"base_price_cents"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// PriceCents applies the per-type pricing factors to the base price.
// Court subtype only ever affects pricing, so it is a tag plus a factor
// table rather than a type hierarchy.
func (c *Court) PriceCents() int64 {
	factor := 1.0

	switch c.Type {
	case TypeFutbol:
		if c.Size != nil && strings.Contains(strings.ToLower(*c.Size), "grande") {
			factor *= 1.2
		}
		if c.Lighting {
			factor *= 1.1
		}
	case TypePadel:
		if c.Roofed {
			factor *= 1.15
		}
		if c.Lighting {
			factor *= 1.10
		}
	case TypeBasquet:
		if c.Lighting {
			factor *= 1.2
		}
	}

	return int64(math.Round(float64(c.BasePriceCents) * factor))
}

func ValidType(t string) bool {
	switch t {
	case TypeFutbol, TypeBasquet, TypePadel:
		return true
	}
	return false
}

type CreateCourtRequest struct {
	Name           string  `json:"name" binding:"required"`
	Type           string  `json:"type" binding:"required"`
	Surface        *string `json:"surface"`
	Size           *string `json:"size"`
	Roofed         bool    `json:"roofed"`
	Lighting       bool    `json:"lighting"`
	BasePriceCents int64   `json:"base_price_cents" binding:"required,gt=0"`
}

type UpdateCourtRequest struct {
	Name           *string `json:"name"`
	Surface        *string `json:"surface"`
	Size           *string `json:"size"`
	Roofed         *bool   `json:"roofed"`
	Lighting       *bool   `json:"lighting"`
	Status         *string `json:"status"`
	BasePriceCents *int64  `json:"base_price_cents"`
}
