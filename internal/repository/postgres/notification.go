package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	logger.EnterMethod("notificationRepository.Create", "adminID", n.AdminID, "title", n.Title)

	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "reason", "failed to marshal attributes")
		return err
	}

	query := `INSERT INTO notifications (admin_id, title, message, is_read, attributes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	logger.DatabaseCall("INSERT", "notifications", "adminID", n.AdminID)

	err = r.db.QueryRowContext(ctx, query, n.AdminID, n.Title, n.Message, n.IsRead, attrs, time.Now()).Scan(&n.ID)
	logger.DatabaseResult("INSERT", 1, err, "notificationID", n.ID)

	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "adminID", n.AdminID)
	} else {
		logger.ExitMethod("notificationRepository.Create", "notificationID", n.ID)
	}
	return err
}

// List returns the admin's own notifications together with broadcasts
func (r *notificationRepository) List(ctx context.Context, adminID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM notifications WHERE admin_id = $1 OR admin_id = 0`
	if err := r.db.QueryRowContext(ctx, countQuery, adminID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, admin_id, title, message, is_read, attributes, created_on
	          FROM notifications WHERE admin_id = $1 OR admin_id = 0 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, adminID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		var createdOn time.Time
		if err := rows.Scan(&n.ID, &n.AdminID, &n.Title, &n.Message, &n.IsRead, &attrs, &createdOn); err != nil {
			return nil, 0, err
		}
		n.CreatedOn = createdOn.Format(time.RFC3339)
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, 0, err
			}
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, adminID int32) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND (admin_id = $2 OR admin_id = 0)`
	return expectOne(r.db.ExecContext(ctx, query, id, adminID))
}
