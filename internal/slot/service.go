package slot

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"courtslot/internal/court"
)

var (
	ErrInvalidSlot = errors.New("invalid slot data")
	ErrSlotOverlap = errors.New("slot overlaps an existing slot on the same court and date")
	ErrSlotInUse   = errors.New("slot is referenced by an active reservation")
)

// CourtGetter resolves the court a slot belongs to.
type CourtGetter interface {
	GetByID(ctx context.Context, id int) (*court.Court, error)
}

// ReservationChecker reports whether a slot is referenced by a
// reservation that still counts against the conflict invariant.
type ReservationChecker interface {
	SlotHasActiveReservation(ctx context.Context, slotID int) (bool, error)
}

type Service struct {
	repo         Repository
	courts       CourtGetter
	reservations ReservationChecker
}

func NewService(repo Repository, courts CourtGetter, reservations ReservationChecker) *Service {
	return &Service{
		repo:         repo,
		courts:       courts,
		reservations: reservations,
	}
}

func (s *Service) Create(ctx context.Context, courtID int, req CreateSlotRequest) (*Slot, error) {
	date, startTime, endTime, err := parseSlotTimes(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if _, err := s.courts.GetByID(ctx, courtID); err != nil {
		return nil, err
	}

	overlaps, err := s.repo.OverlapExists(ctx, courtID, date, startTime, endTime, 0)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, ErrSlotOverlap
	}

	return s.repo.Create(ctx, &Slot{
		CourtID:   courtID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    StatusAvailable,
	})
}

func (s *Service) Find(ctx context.Context, id int) (*Slot, error) {
	sl, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return sl, nil
}

func (s *Service) FindAvailable(ctx context.Context, f Filter) ([]Slot, error) {
	if f.DateFrom.IsZero() || f.DateTo.IsZero() || f.DateTo.Before(f.DateFrom) {
		return nil, ErrInvalidSlot
	}
	return s.repo.FindAvailable(ctx, f)
}

func (s *Service) ListByCourt(ctx context.Context, courtID int) ([]Slot, error) {
	return s.repo.ListByCourt(ctx, courtID)
}

func (s *Service) Update(ctx context.Context, id int, req UpdateSlotRequest) (*Slot, error) {
	sl, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	dateStr := sl.Date.Format("2006-01-02")
	if req.Date != nil {
		dateStr = *req.Date
	}
	startStr := sl.StartTime
	if req.StartTime != nil {
		startStr = *req.StartTime
	}
	endStr := sl.EndTime
	if req.EndTime != nil {
		endStr = *req.EndTime
	}

	date, startTime, endTime, err := parseSlotTimes(dateStr, startStr, endStr)
	if err != nil {
		return nil, err
	}

	overlaps, err := s.repo.OverlapExists(ctx, sl.CourtID, date, startTime, endTime, sl.ID)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, ErrSlotOverlap
	}

	sl.Date = date
	sl.StartTime = startTime
	sl.EndTime = endTime

	if err := s.repo.Update(ctx, sl); err != nil {
		return nil, err
	}

	return sl, nil
}

// Delete removes a slot. A slot referenced by a pending, confirmed or
// paid reservation cannot be deleted.
func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.Find(ctx, id); err != nil {
		return err
	}

	inUse, err := s.reservations.SlotHasActiveReservation(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrSlotInUse
	}

	return s.repo.Delete(ctx, id)
}

// Cancel retires a slot from the bookable pool without deleting it.
func (s *Service) Cancel(ctx context.Context, id int) error {
	if _, err := s.Find(ctx, id); err != nil {
		return err
	}

	inUse, err := s.reservations.SlotHasActiveReservation(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrSlotInUse
	}

	return s.repo.UpdateStatus(ctx, id, StatusCancelled)
}

func parseSlotTimes(dateStr, startStr, endStr string) (time.Time, string, string, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, "", "", ErrInvalidSlot
	}

	start, err := time.Parse("15:04", startStr)
	if err != nil {
		return time.Time{}, "", "", ErrInvalidSlot
	}
	end, err := time.Parse("15:04", endStr)
	if err != nil {
		return time.Time{}, "", "", ErrInvalidSlot
	}

	if !start.Before(end) {
		return time.Time{}, "", "", ErrInvalidSlot
	}

	return date, start.Format("15:04"), end.Format("15:04"), nil
}
