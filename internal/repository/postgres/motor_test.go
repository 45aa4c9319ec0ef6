package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitColumnNames = []string{"id", "motor_type_id", "plate_number", "color", "year", "daily_rate", "status", "image_url", "created_on", "updated_on"}

func TestMotorTypeRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewMotorTypeRepository(db)
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		mt := &domain.MotorType{Name: "Scoopy", Brand: "Honda", EngineCC: 110, DailyRate: 75000}
		mock.ExpectQuery("INSERT INTO motor_types").
			WithArgs(mt.Name, mt.Brand, mt.EngineCC, mt.DailyRate, "", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		require.NoError(t, repo.Create(ctx, mt))
		assert.Equal(t, int32(1), mt.ID)
	})

	t.Run("Delete missing", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM motor_types WHERE id = \\$1").
			WithArgs(int32(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 9), repository.ErrNotFound)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM motor_types WHERE id = \\$1").
			WithArgs(int32(9)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 9)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestMotorUnitRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewMotorUnitRepository(db)
	ctx := context.Background()

	t.Run("List with filters", func(t *testing.T) {
		rows := sqlmock.NewRows(unitColumnNames).
			AddRow(1, 2, "AB 1234 XY", "Merah", 2022, 75000, "AVAILABLE", "", "2023-01-01T00:00:00Z", "2023-01-01T00:00:00Z")
		mock.ExpectQuery(regexp.QuoteMeta("FROM motor_units WHERE 1=1 AND motor_type_id = $1 AND status = $2 ORDER BY plate_number")).
			WithArgs(int32(2), "AVAILABLE").
			WillReturnRows(rows)

		units, err := repo.List(ctx, 2, "AVAILABLE")
		require.NoError(t, err)
		require.Len(t, units, 1)
		assert.Equal(t, domain.MotorUnitStatusAvailable, units[0].Status)
		assert.Equal(t, "AB 1234 XY", units[0].PlateNumber)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		mock.ExpectExec("UPDATE motor_units SET status=\\$1").
			WithArgs(domain.MotorUnitStatusRented, sqlmock.AnyArg(), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, 1, domain.MotorUnitStatusRented))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
