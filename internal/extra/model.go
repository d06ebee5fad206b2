package extra

import "time"

// ExtraService is a bookable add-on owned by the reservation, not by the
// slot: referee, match recording, bibs, asado catering, paddle rental.
type ExtraService struct {
	ID           int       `db:"id" json:"id"`
	AsadoPeople  int       `db:"asado_people" json:"asado_people"`
	Referee      bool      `db:"referee" json:"referee"`
	MatchRecord  bool      `db:"match_record" json:"match_record"`
	Bibs         bool      `db:"bibs" json:"bibs"`
	PaddleCount  int       `db:"paddle_count" json:"paddle_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

const (
	refereePriceCents     = 2000_00
	matchRecordPriceCents = 1500_00
	bibsPriceCents        = 800_00
	asadoPerPersonCents   = 500_00
	perPaddleCents        = 300_00
)

func (e *ExtraService) PriceCents() int64 {
	var total int64
	if e.Referee {
		total += refereePriceCents
	}
	if e.MatchRecord {
		total += matchRecordPriceCents
	}
	if e.Bibs {
		total += bibsPriceCents
	}
	total += int64(e.AsadoPeople) * asadoPerPersonCents
	total += int64(e.PaddleCount) * perPaddleCents
	return total
}

type CreateExtraServiceRequest struct {
	AsadoPeople int  `json:"asado_people" binding:"gte=0"`
	Referee     bool `json:"referee"`
	MatchRecord bool `json:"match_record"`
	Bibs        bool `json:"bibs"`
	PaddleCount int  `json:"paddle_count" binding:"gte=0"`
}
