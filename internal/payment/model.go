package payment

import "time"

const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	MethodCash     = "cash"
	MethodCard     = "card"
	MethodTransfer = "transfer"
)

type Payment struct {
	ID            int       `db:"id" json:"id"`
	ReservationID int       `db:"reservation_id" json:"reservation_id"`
	AmountCents   int64     `db:"amount_cents" json:"amount_cents"`
	Method        string    `db:"method" json:"method"`
	Status        string    `db:"status" json:"status"`
	ReceiptNumber string    `db:"receipt_number" json:"receipt_number"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type ProcessPaymentRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Method      string `json:"method" binding:"required"`
}

func ValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer:
		return true
	}
	return false
}
