package reservations

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_TransitionStatus(t *testing.T) {
	id := uuid.New()
	at := time.Now()

	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"applied", 1, nil},
		{"status moved underneath", 0, ErrStatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reservations" SET`) + `.*` + regexp.QuoteMeta(`WHERE id = $`) + `.*` + regexp.QuoteMeta(`AND status = $`)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectCommit()

			err := repo.TransitionStatus(context.Background(), id, StatusPending, StatusConfirmed, at)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reservations" WHERE id = $1`)).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestRepository_List_AppliesFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)
	restaurantID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "reservations" WHERE restaurant_id = $1 AND date = $2 AND status = $3 ORDER BY created_at DESC`)).
		WithArgs(restaurantID.String(), "2026-11-02", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference", "status"}))

	list, err := repo.List(context.Background(), ListQuery{
		RestaurantID: restaurantID.String(),
		CustomerID:   "not-a-uuid",
		Date:         "2026-11-02",
		Status:       "confirmed",
	})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		existing int64
		wantErr  error
	}{
		{"applied", 1, 0, nil},
		{"missing", 0, 0, ErrReservationNotFound},
		{"status moved underneath", 0, 1, ErrStatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reservations" SET`)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			if tt.affected == 0 {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "reservations"`)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.existing))
				mock.ExpectRollback()
			} else {
				mock.ExpectCommit()
			}

			err := repo.Update(context.Background(), uuid.New(), StatusPending,
				map[string]interface{}{"customer_name": "Minji", "status": StatusConfirmed})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
