package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/repository"
)

type adminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

const adminColumns = `id, username, email, name, password_hash, device_token, created_on, updated_on`

func (r *adminRepository) Create(ctx context.Context, a *domain.Admin) error {
	query := `INSERT INTO admins (username, email, name, password_hash, device_token, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, a.Username, a.Email, a.Name, a.PasswordHash, a.DeviceToken, now, now).Scan(&a.ID)
}

func (r *adminRepository) GetByID(ctx context.Context, id int32) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE username = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *adminRepository) scanOne(row *sql.Row) (*domain.Admin, error) {
	a := &domain.Admin{}
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.Name, &a.PasswordHash, &a.DeviceToken, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *adminRepository) Update(ctx context.Context, a *domain.Admin) error {
	query := `UPDATE admins SET email=$1, name=$2, password_hash=$3, device_token=$4, updated_on=$5 WHERE id=$6`
	return expectOne(r.db.ExecContext(ctx, query, a.Email, a.Name, a.PasswordHash, a.DeviceToken, time.Now(), a.ID))
}

func (r *adminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []domain.Admin
	for rows.Next() {
		var a domain.Admin
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.Name, &a.PasswordHash, &a.DeviceToken, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}
