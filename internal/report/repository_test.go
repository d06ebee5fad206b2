package report

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCourtUsage(t *testing.T) {
	rawDB, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { rawDB.Close() })
	repo := NewRepository(sqlx.NewDb(rawDB, "sqlmock"))

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	dbMock.ExpectQuery("FROM courts c").
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"court_id", "court_name", "reservations_created", "reservations_paid", "revenue_cents"}).
			AddRow(1, "Cancha 1", 12, 9, int64(9000000)).
			AddRow(2, "Cancha 2", 3, 1, int64(800000)))

	usage, err := repo.GetCourtUsage(context.Background(), from, to)

	assert.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "Cancha 1", usage[0].CourtName)
	assert.Equal(t, int64(9000000), usage[0].RevenueCents)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestGetMonthlyUtilization(t *testing.T) {
	rawDB, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { rawDB.Close() })
	repo := NewRepository(sqlx.NewDb(rawDB, "sqlmock"))

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	dbMock.ExpectQuery("FROM courts c").
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"month", "court_id", "court_name", "total_slots", "reserved_slots", "utilization"}).
			AddRow("2026-09", 1, "Cancha 1", 40, 30, 0.75))

	utilization, err := repo.GetMonthlyUtilization(context.Background(), from, to)

	assert.NoError(t, err)
	require.Len(t, utilization, 1)
	assert.InDelta(t, 0.75, utilization[0].Utilization, 0.001)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
