package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"courtslot/internal/logger"
	"courtslot/internal/metrics"
	"courtslot/internal/reservation"
	"courtslot/internal/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidPayment   = errors.New("invalid payment data")
	ErrDuplicatePayment = errors.New("reservation already has an approved payment")
	ErrAmountMismatch   = errors.New("payment amount does not match reservation price")
)

// Coordinator is the slice of the reservation coordinator payments need.
type Coordinator interface {
	GetByID(ctx context.Context, id int) (*reservation.Reservation, error)
	SetPaid(ctx context.Context, id int) error
}

// Store persists payments.
type Store interface {
	Create(ctx context.Context, p *Payment) (*Payment, error)
	GetByID(ctx context.Context, id int) (*Payment, error)
	ListByReservation(ctx context.Context, reservationID int) ([]Payment, error)
	ExistsForReservation(ctx context.Context, reservationID int) (bool, error)
}

// UserGetter resolves the payer for the receipt email.
type UserGetter interface {
	GetByID(ctx context.Context, id int) (*user.User, error)
}

// Notifier queues receipt emails.
type Notifier interface {
	SendPaymentReceipt(ctx context.Context, email, name, receiptNumber string, amountCents int64) error
}

type Service struct {
	store       Store
	coordinator Coordinator
	users       UserGetter
	notifier    Notifier
}

func NewService(store Store, coordinator Coordinator, users UserGetter, notifier Notifier) *Service {
	return &Service{
		store:       store,
		coordinator: coordinator,
		users:       users,
		notifier:    notifier,
	}
}

// Process records a payment against a reservation and, on approval,
// advances the reservation to paid. Approval is simulated: any valid
// amount on a payable reservation is approved.
func (s *Service) Process(ctx context.Context, reservationID int, req ProcessPaymentRequest) (*Payment, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidPayment)
	}
	if !ValidMethod(req.Method) {
		return nil, fmt.Errorf("%w: unknown method %q", ErrInvalidPayment, req.Method)
	}

	r, err := s.coordinator.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if r.Status == reservation.StatusCancelled {
		return nil, fmt.Errorf("%w: reservation is cancelled", reservation.ErrInvalidState)
	}
	if r.Status == reservation.StatusPaid {
		return nil, ErrDuplicatePayment
	}

	exists, err := s.store.ExistsForReservation(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatePayment
	}

	if req.AmountCents != r.PriceCents {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrAmountMismatch, r.PriceCents, req.AmountCents)
	}

	created, err := s.store.Create(ctx, &Payment{
		ReservationID: r.ID,
		AmountCents:   req.AmountCents,
		Method:        req.Method,
		Status:        StatusApproved,
		ReceiptNumber: uuid.New().String(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.coordinator.SetPaid(ctx, r.ID); err != nil {
		// Payment row is kept; the reservation state is reconciled manually.
		logger.Errorf("Payment %d recorded but reservation %d not marked paid: %v", created.ID, r.ID, err)
		return created, err
	}

	metrics.RecordPayment(StatusApproved)
	logger.Infof("Payment %d approved: reservation=%d amount_cents=%d method=%s",
		created.ID, r.ID, created.AmountCents, created.Method)

	s.notifyReceipt(ctx, r.UserID, created)

	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*Payment, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) ListByReservation(ctx context.Context, reservationID int) ([]Payment, error) {
	return s.store.ListByReservation(ctx, reservationID)
}

func (s *Service) notifyReceipt(ctx context.Context, userID int, p *Payment) {
	if s.notifier == nil {
		return
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.Errorf("Failed to load user %d for receipt email: %v", userID, err)
		return
	}

	if err := s.notifier.SendPaymentReceipt(ctx, u.Email, u.Name, p.ReceiptNumber, p.AmountCents); err != nil {
		logger.Errorf("Failed to queue receipt email for payment %d: %v", p.ID, err)
	}
}
