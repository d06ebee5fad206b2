package tournament

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"courtslot/internal/logger"
	"courtslot/internal/metrics"
	"courtslot/internal/reservation"
	"courtslot/internal/slot"
)

var (
	ErrInvalidTournament = errors.New("invalid tournament data")
	ErrNoCandidateSlots  = errors.New("no available slots match the batch request")
)

// Coordinator is the slice of the reservation coordinator the batch
// orchestrator needs.
type Coordinator interface {
	CreateForTournament(ctx context.Context, userID, slotID, tournamentID int, extraID *int) (*reservation.Reservation, error)
	Cancel(ctx context.Context, id int) error
	ListActiveByTournament(ctx context.Context, tournamentID int) ([]reservation.Reservation, error)
}

// SlotFinder queries the bookable slot pool.
type SlotFinder interface {
	FindAvailable(ctx context.Context, f slot.Filter) ([]slot.Slot, error)
}

type Service struct {
	repo        *Repository
	coordinator Coordinator
	slots       SlotFinder
}

func NewService(repo *Repository, coordinator Coordinator, slots SlotFinder) *Service {
	return &Service{
		repo:        repo,
		coordinator: coordinator,
		slots:       slots,
	}
}

func (s *Service) Create(ctx context.Context, organizerID int, req CreateTournamentRequest) (*Tournament, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidTournament
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrInvalidTournament
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrInvalidTournament
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidTournament
	}

	return s.repo.Create(ctx, &Tournament{
		Name:        strings.TrimSpace(req.Name),
		OrganizerID: organizerID,
		Discipline:  req.Discipline,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      StatusScheduled,
	})
}

func (s *Service) GetByID(ctx context.Context, id int) (*Tournament, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Tournament, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Update(ctx context.Context, id int, req UpdateTournamentRequest) (*Tournament, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.Status == StatusCancelled {
		return nil, ErrInvalidTournament
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidTournament
		}
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Discipline != nil {
		t.Discipline = *req.Discipline
	}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, ErrInvalidTournament
		}
		t.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, ErrInvalidTournament
		}
		t.EndDate = endDate
	}
	if t.EndDate.Before(t.StartDate) {
		return nil, ErrInvalidTournament
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// ReserveBatch books up to req.SlotCount available slots for the
// tournament. Every slot is booked in its own transaction, so one
// conflicting slot fails alone and the rest of the batch proceeds.
// Candidates are walked in (date, start_time) order.
func (s *Service) ReserveBatch(ctx context.Context, tournamentID int, req BatchReserveRequest) (*BatchResult, error) {
	t, err := s.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status == StatusCancelled {
		return nil, ErrInvalidTournament
	}

	filter, err := batchFilter(req)
	if err != nil {
		return nil, err
	}

	candidates, err := s.slots.FindAvailable(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidateSlots
	}

	result := &BatchResult{
		TournamentID: t.ID,
		Requested:    req.SlotCount,
		Succeeded:    []reservation.Reservation{},
		Failed:       []BatchFailure{},
	}

	for _, candidate := range candidates {
		if len(result.Succeeded) == req.SlotCount {
			break
		}

		r, err := s.coordinator.CreateForTournament(ctx, req.UserID, candidate.ID, t.ID, req.ExtraServiceID)
		if err != nil {
			if errors.Is(err, reservation.ErrSlotUnavailable) || errors.Is(err, reservation.ErrNotFound) {
				metrics.RecordBatchOutcome("failed")
				result.Failed = append(result.Failed, BatchFailure{
					SlotID:  candidate.ID,
					CourtID: candidate.CourtID,
					Reason:  err.Error(),
				})
				continue
			}
			return nil, err
		}

		metrics.RecordBatchOutcome("succeeded")
		result.Succeeded = append(result.Succeeded, *r)
	}

	logger.Infof("Batch for tournament %d: %d/%d slots booked, %d failed",
		t.ID, len(result.Succeeded), req.SlotCount, len(result.Failed))

	return result, nil
}

// Cancel cancels the tournament and releases its active reservations.
// Reservations that can no longer be cancelled are reported, not fatal.
func (s *Service) Cancel(ctx context.Context, id int) ([]BatchFailure, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status == StatusCancelled {
		return nil, fmt.Errorf("%w: tournament already cancelled", ErrInvalidTournament)
	}

	active, err := s.coordinator.ListActiveByTournament(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	var failures []BatchFailure
	for _, r := range active {
		if err := s.coordinator.Cancel(ctx, r.ID); err != nil {
			logger.Errorf("Tournament %d: failed to cancel reservation %d: %v", t.ID, r.ID, err)
			failures = append(failures, BatchFailure{
				SlotID:  r.SlotID,
				CourtID: r.CourtID,
				Reason:  err.Error(),
			})
		}
	}

	if err := s.repo.UpdateStatus(ctx, t.ID, StatusCancelled); err != nil {
		return failures, err
	}

	logger.Infof("Tournament %d cancelled: %d reservations released, %d could not be cancelled",
		t.ID, len(active)-len(failures), len(failures))

	return failures, nil
}

func batchFilter(req BatchReserveRequest) (slot.Filter, error) {
	dateFrom, err := time.Parse("2006-01-02", req.DateFrom)
	if err != nil {
		return slot.Filter{}, ErrInvalidTournament
	}
	dateTo, err := time.Parse("2006-01-02", req.DateTo)
	if err != nil {
		return slot.Filter{}, ErrInvalidTournament
	}
	if dateTo.Before(dateFrom) {
		return slot.Filter{}, ErrInvalidTournament
	}

	return slot.Filter{
		CourtIDs: req.CourtIDs,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		TimeFrom: req.TimeFrom,
		TimeTo:   req.TimeTo,
	}, nil
}
