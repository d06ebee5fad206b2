package tournament

import (
	"context"
	"os"
	"testing"
	"time"

	"courtslot/internal/logger"
	"courtslot/internal/reservation"
	"courtslot/internal/slot"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

type MockCoordinator struct {
	mock.Mock
}

func (m *MockCoordinator) CreateForTournament(ctx context.Context, userID, slotID, tournamentID int, extraID *int) (*reservation.Reservation, error) {
	args := m.Called(ctx, userID, slotID, tournamentID, extraID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockCoordinator) Cancel(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCoordinator) ListActiveByTournament(ctx context.Context, tournamentID int) ([]reservation.Reservation, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.Reservation), args.Error(1)
}

type MockSlotFinder struct {
	mock.Mock
}

func (m *MockSlotFinder) FindAvailable(ctx context.Context, f slot.Filter) ([]slot.Slot, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]slot.Slot), args.Error(1)
}

func tournamentColumns() []string {
	return []string{"id", "name", "organizer_id", "discipline", "start_date", "end_date", "status", "created_at"}
}

func newServiceFixture(t *testing.T) (*Service, sqlmock.Sqlmock, *MockCoordinator, *MockSlotFinder) {
	rawDB, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { rawDB.Close() })

	coord := new(MockCoordinator)
	finder := new(MockSlotFinder)
	svc := NewService(NewRepository(sqlx.NewDb(rawDB, "sqlmock")), coord, finder)
	return svc, dbMock, coord, finder
}

func expectTournamentRow(dbMock sqlmock.Sqlmock, id int, status string) {
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	dbMock.ExpectQuery("FROM tournaments").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(tournamentColumns()).
			AddRow(id, "Copa Primavera", 4, "futbol", start, end, status, time.Now()))
}

func batchRequest(count int) BatchReserveRequest {
	return BatchReserveRequest{
		UserID:    9,
		CourtIDs:  []int{1, 2},
		DateFrom:  "2026-09-10",
		DateTo:    "2026-09-14",
		TimeFrom:  "18:00",
		TimeTo:    "22:00",
		SlotCount: count,
	}
}

func candidateSlots(n int) []slot.Slot {
	slots := make([]slot.Slot, 0, n)
	for i := 1; i <= n; i++ {
		slots = append(slots, slot.Slot{
			ID:        i,
			CourtID:   1 + i%2,
			Date:      time.Date(2026, 9, 10+i, 0, 0, 0, 0, time.UTC),
			StartTime: "18:00",
			EndTime:   "19:00",
			Status:    slot.StatusAvailable,
		})
	}
	return slots
}

func TestReserveBatch_AllSucceed(t *testing.T) {
	svc, dbMock, coord, finder := newServiceFixture(t)

	expectTournamentRow(dbMock, 7, StatusScheduled)
	finder.On("FindAvailable", mock.Anything, mock.Anything).Return(candidateSlots(3), nil)

	for i := 1; i <= 3; i++ {
		coord.On("CreateForTournament", mock.Anything, 9, i, 7, (*int)(nil)).
			Return(&reservation.Reservation{ID: 100 + i, UserID: 9, SlotID: i, Origin: reservation.OriginTournament}, nil)
	}

	result, err := svc.ReserveBatch(context.Background(), 7, batchRequest(3))

	assert.NoError(t, err)
	assert.True(t, result.Complete())
	require.Len(t, result.Succeeded, 3)
	for i, r := range result.Succeeded {
		assert.Equal(t, 101+i, r.ID)
		assert.Equal(t, 9, r.UserID)
	}
	assert.Empty(t, result.Failed)
	coord.AssertExpectations(t)
}

func TestReserveBatch_CarriesExtraService(t *testing.T) {
	svc, dbMock, coord, finder := newServiceFixture(t)

	expectTournamentRow(dbMock, 7, StatusScheduled)
	finder.On("FindAvailable", mock.Anything, mock.Anything).Return(candidateSlots(1), nil)

	extraID := 3
	coord.On("CreateForTournament", mock.Anything, 9, 1, 7, &extraID).
		Return(&reservation.Reservation{ID: 101, UserID: 9, SlotID: 1}, nil)

	req := batchRequest(1)
	req.ExtraServiceID = &extraID

	result, err := svc.ReserveBatch(context.Background(), 7, req)

	assert.NoError(t, err)
	assert.True(t, result.Complete())
	coord.AssertExpectations(t)
}

func TestReserveBatch_PartialFailureKeepsSiblings(t *testing.T) {
	svc, dbMock, coord, finder := newServiceFixture(t)

	expectTournamentRow(dbMock, 7, StatusScheduled)
	finder.On("FindAvailable", mock.Anything, mock.Anything).Return(candidateSlots(5), nil)

	for i := 1; i <= 5; i++ {
		if i == 3 {
			coord.On("CreateForTournament", mock.Anything, 9, i, 7, (*int)(nil)).
				Return(nil, reservation.ErrSlotUnavailable)
			continue
		}
		coord.On("CreateForTournament", mock.Anything, 9, i, 7, (*int)(nil)).
			Return(&reservation.Reservation{ID: 100 + i, UserID: 9, SlotID: i}, nil)
	}

	result, err := svc.ReserveBatch(context.Background(), 7, batchRequest(5))

	assert.NoError(t, err)
	assert.False(t, result.Complete())
	assert.Len(t, result.Succeeded, 4)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 3, result.Failed[0].SlotID)
	coord.AssertExpectations(t)
}

func TestReserveBatch_StopsAtRequestedCount(t *testing.T) {
	svc, dbMock, coord, finder := newServiceFixture(t)

	expectTournamentRow(dbMock, 7, StatusScheduled)
	finder.On("FindAvailable", mock.Anything, mock.Anything).Return(candidateSlots(5), nil)

	coord.On("CreateForTournament", mock.Anything, 9, 1, 7, (*int)(nil)).Return(&reservation.Reservation{ID: 101}, nil)
	coord.On("CreateForTournament", mock.Anything, 9, 2, 7, (*int)(nil)).Return(&reservation.Reservation{ID: 102}, nil)

	result, err := svc.ReserveBatch(context.Background(), 7, batchRequest(2))

	assert.NoError(t, err)
	assert.True(t, result.Complete())
	coord.AssertNotCalled(t, "CreateForTournament", mock.Anything, 9, 3, 7, (*int)(nil))
}

func TestReserveBatch_NoCandidates(t *testing.T) {
	svc, dbMock, coord, finder := newServiceFixture(t)

	expectTournamentRow(dbMock, 7, StatusScheduled)
	finder.On("FindAvailable", mock.Anything, mock.Anything).Return([]slot.Slot{}, nil)

	_, err := svc.ReserveBatch(context.Background(), 7, batchRequest(3))

	assert.ErrorIs(t, err, ErrNoCandidateSlots)
	coord.AssertNotCalled(t, "CreateForTournament", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReserveBatch_RejectsCancelledTournament(t *testing.T) {
	svc, dbMock, _, finder := newServiceFixture(t)

	expectTournamentRow(dbMock, 7, StatusCancelled)

	_, err := svc.ReserveBatch(context.Background(), 7, batchRequest(3))

	assert.ErrorIs(t, err, ErrInvalidTournament)
	finder.AssertNotCalled(t, "FindAvailable", mock.Anything, mock.Anything)
}

func TestCancel_ReleasesActiveReservations(t *testing.T) {
	svc, dbMock, coord, _ := newServiceFixture(t)

	expectTournamentRow(dbMock, 7, StatusScheduled)
	coord.On("ListActiveByTournament", mock.Anything, 7).Return([]reservation.Reservation{
		{ID: 101, SlotID: 1, CourtID: 1, Status: reservation.StatusPending},
		{ID: 102, SlotID: 2, CourtID: 2, Status: reservation.StatusPending},
	}, nil)
	coord.On("Cancel", mock.Anything, 101).Return(nil)
	coord.On("Cancel", mock.Anything, 102).Return(reservation.ErrInvalidState)

	dbMock.ExpectExec("UPDATE tournaments SET status").
		WithArgs(StatusCancelled, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	failures, err := svc.Cancel(context.Background(), 7)

	assert.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, 2, failures[0].SlotID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreateTournament_Validation(t *testing.T) {
	svc, _, _, _ := newServiceFixture(t)

	_, err := svc.Create(context.Background(), 4, CreateTournamentRequest{
		Name:       " ",
		Discipline: "futbol",
		StartDate:  "2026-09-10",
		EndDate:    "2026-09-14",
	})
	assert.ErrorIs(t, err, ErrInvalidTournament)

	_, err = svc.Create(context.Background(), 4, CreateTournamentRequest{
		Name:       "Copa",
		Discipline: "futbol",
		StartDate:  "2026-09-14",
		EndDate:    "2026-09-10",
	})
	assert.ErrorIs(t, err, ErrInvalidTournament)
}
