package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/repository"
)

type motorTypeRepository struct {
	db *sql.DB
}

func NewMotorTypeRepository(db *sql.DB) repository.MotorTypeRepository {
	return &motorTypeRepository{db: db}
}

func (r *motorTypeRepository) Create(ctx context.Context, mt *domain.MotorType) error {
	query := `INSERT INTO motor_types (name, brand, engine_cc, daily_rate, description, image_url, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, mt.Name, mt.Brand, mt.EngineCC, mt.DailyRate, mt.Description, mt.ImageURL, now, now).Scan(&mt.ID)
}

func (r *motorTypeRepository) GetByID(ctx context.Context, id int32) (*domain.MotorType, error) {
	mt := &domain.MotorType{}
	query := `SELECT id, name, brand, engine_cc, daily_rate, description, image_url, created_on, updated_on FROM motor_types WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&mt.ID, &mt.Name, &mt.Brand, &mt.EngineCC, &mt.DailyRate, &mt.Description, &mt.ImageURL, &mt.CreatedOn, &mt.UpdatedOn)
	if err != nil {
		return nil, notFound(err)
	}
	return mt, nil
}

func (r *motorTypeRepository) Update(ctx context.Context, mt *domain.MotorType) error {
	query := `UPDATE motor_types SET name=$1, brand=$2, engine_cc=$3, daily_rate=$4, description=$5, image_url=$6, updated_on=$7 WHERE id=$8`
	return expectOne(r.db.ExecContext(ctx, query, mt.Name, mt.Brand, mt.EngineCC, mt.DailyRate, mt.Description, mt.ImageURL, time.Now(), mt.ID))
}

func (r *motorTypeRepository) Delete(ctx context.Context, id int32) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM motor_types WHERE id = $1`, id))
}

func (r *motorTypeRepository) List(ctx context.Context) ([]domain.MotorType, error) {
	query := `SELECT id, name, brand, engine_cc, daily_rate, description, image_url, created_on, updated_on FROM motor_types ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []domain.MotorType
	for rows.Next() {
		var mt domain.MotorType
		if err := rows.Scan(&mt.ID, &mt.Name, &mt.Brand, &mt.EngineCC, &mt.DailyRate, &mt.Description, &mt.ImageURL, &mt.CreatedOn, &mt.UpdatedOn); err != nil {
			return nil, err
		}
		types = append(types, mt)
	}
	return types, rows.Err()
}

type motorUnitRepository struct {
	db *sql.DB
}

func NewMotorUnitRepository(db *sql.DB) repository.MotorUnitRepository {
	return &motorUnitRepository{db: db}
}

const unitColumns = `id, motor_type_id, plate_number, color, year, daily_rate, status, image_url, created_on, updated_on`

func (r *motorUnitRepository) Create(ctx context.Context, u *domain.MotorUnit) error {
	query := `INSERT INTO motor_units (motor_type_id, plate_number, color, year, daily_rate, status, image_url, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, u.MotorTypeID, u.PlateNumber, u.Color, u.Year, u.DailyRate, u.Status, u.ImageURL, now, now).Scan(&u.ID)
}

func (r *motorUnitRepository) GetByID(ctx context.Context, id int32) (*domain.MotorUnit, error) {
	u := &domain.MotorUnit{}
	query := `SELECT ` + unitColumns + ` FROM motor_units WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.MotorTypeID, &u.PlateNumber, &u.Color, &u.Year, &u.DailyRate, &u.Status, &u.ImageURL, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *motorUnitRepository) Update(ctx context.Context, u *domain.MotorUnit) error {
	query := `UPDATE motor_units SET motor_type_id=$1, plate_number=$2, color=$3, year=$4, daily_rate=$5, status=$6, image_url=$7, updated_on=$8 WHERE id=$9`
	return expectOne(r.db.ExecContext(ctx, query, u.MotorTypeID, u.PlateNumber, u.Color, u.Year, u.DailyRate, u.Status, u.ImageURL, time.Now(), u.ID))
}

func (r *motorUnitRepository) UpdateStatus(ctx context.Context, id int32, status domain.MotorUnitStatus) error {
	query := `UPDATE motor_units SET status=$1, updated_on=$2 WHERE id=$3`
	return expectOne(r.db.ExecContext(ctx, query, status, time.Now(), id))
}

func (r *motorUnitRepository) Delete(ctx context.Context, id int32) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM motor_units WHERE id = $1`, id))
}

func (r *motorUnitRepository) List(ctx context.Context, motorTypeID int32, status string) ([]domain.MotorUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM motor_units WHERE 1=1`
	var args []interface{}
	if motorTypeID > 0 {
		args = append(args, motorTypeID)
		query += fmt.Sprintf(" AND motor_type_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY plate_number"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []domain.MotorUnit
	for rows.Next() {
		var u domain.MotorUnit
		if err := rows.Scan(&u.ID, &u.MotorTypeID, &u.PlateNumber, &u.Color, &u.Year, &u.DailyRate, &u.Status, &u.ImageURL, &u.CreatedOn, &u.UpdatedOn); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}
