package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"courtslot/internal/court"
	"courtslot/internal/db"
	"courtslot/internal/extra"
	"courtslot/internal/logger"
	"courtslot/internal/metrics"
	"courtslot/internal/slot"
	"courtslot/internal/user"

	"github.com/jmoiron/sqlx"
)

// CourtGetter resolves courts for pricing.
type CourtGetter interface {
	GetByID(ctx context.Context, id int) (*court.Court, error)
}

// ExtraGetter resolves extra-service bundles for pricing.
type ExtraGetter interface {
	GetByID(ctx context.Context, id int) (*extra.ExtraService, error)
}

// UserGetter resolves the reservation owner for notifications.
type UserGetter interface {
	GetByID(ctx context.Context, id int) (*user.User, error)
}

// PaymentLookup reports whether a payment has been recorded against a
// reservation. Implemented by the payment repository.
type PaymentLookup interface {
	ExistsForReservation(ctx context.Context, reservationID int) (bool, error)
}

// Notifier queues outbound reservation emails.
type Notifier interface {
	SendReservationConfirmation(ctx context.Context, email, name, courtName, slotDetails string, priceCents int64) error
	SendReservationCancellation(ctx context.Context, email, name, slotDetails string) error
}

// Coordinator owns every state transition of a reservation. Each
// mutating operation runs inside one transaction that locks the slot
// row before the conflict check, so two concurrent attempts on the same
// slot are serialized by the database.
type Coordinator struct {
	db       *sqlx.DB
	store    Store
	slots    slot.Repository
	courts   CourtGetter
	extras   ExtraGetter
	users    UserGetter
	payments PaymentLookup
	notifier Notifier
}

func NewCoordinator(
	database *sqlx.DB,
	store Store,
	slots slot.Repository,
	courts CourtGetter,
	extras ExtraGetter,
	users UserGetter,
	payments PaymentLookup,
	notifier Notifier,
) *Coordinator {
	return &Coordinator{
		db:       database,
		store:    store,
		slots:    slots,
		courts:   courts,
		extras:   extras,
		users:    users,
		payments: payments,
		notifier: notifier,
	}
}

// Create books a slot for a user through the online flow.
func (c *Coordinator) Create(ctx context.Context, userID int, req CreateReservationRequest) (*Reservation, error) {
	return c.create(ctx, userID, req.SlotID, req.ExtraServiceID, OriginOnline, nil)
}

// CreateForTournament books a slot for a tournament's customer. The
// batch orchestrator calls it once per slot; each call is its own
// transaction so one conflict never rolls back sibling slots.
func (c *Coordinator) CreateForTournament(ctx context.Context, userID, slotID, tournamentID int, extraID *int) (*Reservation, error) {
	return c.create(ctx, userID, slotID, extraID, OriginTournament, &tournamentID)
}

// CreateWalkIn books a slot registered at the front desk.
func (c *Coordinator) CreateWalkIn(ctx context.Context, userID int, req CreateReservationRequest) (*Reservation, error) {
	return c.create(ctx, userID, req.SlotID, req.ExtraServiceID, OriginWalkIn, nil)
}

func (c *Coordinator) create(ctx context.Context, userID, slotID int, extraID *int, origin string, tournamentID *int) (*Reservation, error) {
	if slotID <= 0 {
		return nil, fmt.Errorf("%w: slot_id is required", ErrValidation)
	}

	var created *Reservation
	err := db.WithinTx(ctx, c.db, func(tx *sqlx.Tx) error {
		sl, err := c.slots.GetForUpdate(ctx, tx, slotID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: slot %d", ErrNotFound, slotID)
			}
			return err
		}

		if sl.Status != slot.StatusAvailable {
			metrics.RecordSlotConflict()
			return fmt.Errorf("%w: slot %d is %s", ErrSlotUnavailable, sl.ID, sl.Status)
		}

		taken, err := c.store.ActiveForSlotExists(ctx, tx, sl.CourtID, sl.ID)
		if err != nil {
			return err
		}
		if taken {
			metrics.RecordSlotConflict()
			return fmt.Errorf("%w: slot %d already reserved", ErrSlotUnavailable, sl.ID)
		}

		price, err := c.price(ctx, sl.CourtID, extraID)
		if err != nil {
			return err
		}

		created, err = c.store.Insert(ctx, tx, &Reservation{
			UserID:         userID,
			CourtID:        sl.CourtID,
			SlotID:         sl.ID,
			ExtraServiceID: extraID,
			TournamentID:   tournamentID,
			Status:         StatusPending,
			Origin:         origin,
			PriceCents:     price,
		})
		if err != nil {
			return err
		}

		return c.slots.MarkHeld(ctx, tx, sl.ID)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordReservation(origin)
	logger.Infof("Reservation %d created: user=%d court=%d slot=%d origin=%s",
		created.ID, created.UserID, created.CourtID, created.SlotID, origin)

	c.notifyConfirmation(ctx, created)

	return created, nil
}

// Modify moves a pending reservation to another slot, reassigns it to
// another customer, and/or swaps its extras, recomputing the price.
// Anything past pending is immutable. The status guard on the final
// UPDATE re-validates pending inside the transaction, so a reservation
// paid after the pre-checks is left untouched.
func (c *Coordinator) Modify(ctx context.Context, id int, req ModifyReservationRequest) (*Reservation, error) {
	r, err := c.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.Status != StatusPending {
		return nil, fmt.Errorf("%w: reservation is %s", ErrInvalidState, r.Status)
	}

	paid, err := c.payments.ExistsForReservation(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	if paid {
		return nil, fmt.Errorf("%w: reservation has a recorded payment", ErrInvalidState)
	}

	userID := r.UserID
	if req.UserID != nil && *req.UserID != r.UserID {
		if _, err := c.users.GetByID(ctx, *req.UserID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return nil, fmt.Errorf("%w: user %d", ErrNotFound, *req.UserID)
			}
			return nil, err
		}
		userID = *req.UserID
	}

	extraID := r.ExtraServiceID
	if req.ClearExtra {
		extraID = nil
	} else if req.ExtraServiceID != nil {
		extraID = req.ExtraServiceID
	}

	err = db.WithinTx(ctx, c.db, func(tx *sqlx.Tx) error {
		courtID := r.CourtID
		slotID := r.SlotID

		if req.SlotID != nil && *req.SlotID != r.SlotID {
			newSlot, err := c.slots.GetForUpdate(ctx, tx, *req.SlotID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("%w: slot %d", ErrNotFound, *req.SlotID)
				}
				return err
			}

			if newSlot.Status != slot.StatusAvailable {
				metrics.RecordSlotConflict()
				return fmt.Errorf("%w: slot %d is %s", ErrSlotUnavailable, newSlot.ID, newSlot.Status)
			}

			taken, err := c.store.ActiveForSlotExists(ctx, tx, newSlot.CourtID, newSlot.ID)
			if err != nil {
				return err
			}
			if taken {
				metrics.RecordSlotConflict()
				return fmt.Errorf("%w: slot %d already reserved", ErrSlotUnavailable, newSlot.ID)
			}

			if err := c.slots.MarkAvailable(ctx, tx, r.SlotID); err != nil {
				return err
			}
			if err := c.slots.MarkHeld(ctx, tx, newSlot.ID); err != nil {
				return err
			}

			courtID = newSlot.CourtID
			slotID = newSlot.ID
		}

		price, err := c.price(ctx, courtID, extraID)
		if err != nil {
			return err
		}

		r.UserID = userID
		r.CourtID = courtID
		r.SlotID = slotID
		r.ExtraServiceID = extraID
		r.PriceCents = price

		return c.store.Update(ctx, tx, r)
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Reservation %d modified: court=%d slot=%d price_cents=%d", r.ID, r.CourtID, r.SlotID, r.PriceCents)

	return r, nil
}

// Cancel releases a pending reservation and frees its slot. A
// reservation that advanced past pending, or that has a recorded
// payment, can no longer be cancelled. The transition re-checks
// pending inside the transaction; the slot is only released when the
// guarded update actually flipped the row.
func (c *Coordinator) Cancel(ctx context.Context, id int) error {
	r, err := c.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if r.Status != StatusPending {
		return fmt.Errorf("%w: reservation is %s", ErrInvalidState, r.Status)
	}

	paid, err := c.payments.ExistsForReservation(ctx, r.ID)
	if err != nil {
		return err
	}
	if paid {
		return fmt.Errorf("%w: reservation has a recorded payment", ErrInvalidState)
	}

	err = db.WithinTx(ctx, c.db, func(tx *sqlx.Tx) error {
		if err := c.store.UpdateStatusFrom(ctx, tx, r.ID, StatusCancelled, StatusPending); err != nil {
			return err
		}
		return c.slots.MarkAvailable(ctx, tx, r.SlotID)
	})
	if err != nil {
		return err
	}

	metrics.RecordReservationCancellation()
	logger.Infof("Reservation %d cancelled: slot %d released", r.ID, r.SlotID)

	c.notifyCancellation(ctx, r)

	return nil
}

// SetConfirmed advances a pending reservation to confirmed. The slot
// stays held, so no slot write is needed.
func (c *Coordinator) SetConfirmed(ctx context.Context, id int) error {
	r, err := c.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if r.Status != StatusPending {
		return fmt.Errorf("%w: reservation is %s", ErrInvalidState, r.Status)
	}

	return c.store.UpdateStatusFrom(ctx, c.db, id, StatusConfirmed, StatusPending)
}

// SetPaid marks a reservation paid. Called by the payment service after
// it records an approved payment.
func (c *Coordinator) SetPaid(ctx context.Context, id int) error {
	r, err := c.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if r.Status != StatusPending && r.Status != StatusConfirmed {
		return fmt.Errorf("%w: reservation is %s", ErrInvalidState, r.Status)
	}

	return c.store.UpdateStatusFrom(ctx, c.db, id, StatusPaid, StatusPending, StatusConfirmed)
}

func (c *Coordinator) GetByID(ctx context.Context, id int) (*Reservation, error) {
	r, err := c.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: reservation %d", ErrNotFound, id)
		}
		return nil, err
	}
	return r, nil
}

func (c *Coordinator) ListAll(ctx context.Context) ([]Reservation, error) {
	return c.store.ListAll(ctx)
}

func (c *Coordinator) ListByUser(ctx context.Context, userID int, dateFrom, dateTo *time.Time) ([]Reservation, error) {
	return c.store.ListByUser(ctx, userID, dateFrom, dateTo)
}

func (c *Coordinator) ListActiveByTournament(ctx context.Context, tournamentID int) ([]Reservation, error) {
	return c.store.ListActiveByTournament(ctx, tournamentID)
}

func (c *Coordinator) price(ctx context.Context, courtID int, extraID *int) (int64, error) {
	crt, err := c.courts.GetByID(ctx, courtID)
	if err != nil {
		return 0, err
	}

	total := crt.PriceCents()

	if extraID != nil {
		ex, err := c.extras.GetByID(ctx, *extraID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, fmt.Errorf("%w: extra service %d", ErrNotFound, *extraID)
			}
			return 0, err
		}
		total += ex.PriceCents()
	}

	return total, nil
}

func (c *Coordinator) notifyConfirmation(ctx context.Context, r *Reservation) {
	if c.notifier == nil {
		return
	}

	u, err := c.users.GetByID(ctx, r.UserID)
	if err != nil {
		logger.Errorf("Failed to load user %d for confirmation email: %v", r.UserID, err)
		return
	}

	crt, err := c.courts.GetByID(ctx, r.CourtID)
	if err != nil {
		logger.Errorf("Failed to load court %d for confirmation email: %v", r.CourtID, err)
		return
	}

	details := c.slotDetails(ctx, r.SlotID)
	if err := c.notifier.SendReservationConfirmation(ctx, u.Email, u.Name, crt.Name, details, r.PriceCents); err != nil {
		logger.Errorf("Failed to queue confirmation email for reservation %d: %v", r.ID, err)
	}
}

func (c *Coordinator) notifyCancellation(ctx context.Context, r *Reservation) {
	if c.notifier == nil {
		return
	}

	u, err := c.users.GetByID(ctx, r.UserID)
	if err != nil {
		logger.Errorf("Failed to load user %d for cancellation email: %v", r.UserID, err)
		return
	}

	details := c.slotDetails(ctx, r.SlotID)
	if err := c.notifier.SendReservationCancellation(ctx, u.Email, u.Name, details); err != nil {
		logger.Errorf("Failed to queue cancellation email for reservation %d: %v", r.ID, err)
	}
}

func (c *Coordinator) slotDetails(ctx context.Context, slotID int) string {
	sl, err := c.slots.Find(ctx, slotID)
	if err != nil {
		return fmt.Sprintf("slot %d", slotID)
	}
	return fmt.Sprintf("%s %s-%s", sl.Date.Format("2006-01-02"), sl.StartTime, sl.EndTime)
}
