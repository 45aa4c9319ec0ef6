package service

import (
	"context"
	"strings"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/notify"
	"rentalmotor-backend/internal/repository"
)

type notificationService struct {
	noteRepo    repository.NotificationRepository
	adminRepo   repository.AdminRepository
	email       notify.EmailSender
	push        notify.PushSender
	extraEmails []string
}

// NewNotificationService wires the feed with the email and push channels.
// extraEmails receive every email in addition to the admins' own addresses.
func NewNotificationService(
	noteRepo repository.NotificationRepository,
	adminRepo repository.AdminRepository,
	email notify.EmailSender,
	push notify.PushSender,
	extraEmails []string,
) NotificationService {
	if email == nil {
		email = notify.NoopSender{}
	}
	if push == nil {
		push = notify.NoopSender{}
	}
	return &notificationService{
		noteRepo:    noteRepo,
		adminRepo:   adminRepo,
		email:       email,
		push:        push,
		extraEmails: extraEmails,
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, adminID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, adminID, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, adminID, notificationID int32) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, adminID)
}

func (s *notificationService) Notify(ctx context.Context, note *domain.Notification) {
	log := logger.WithService("notification")

	if err := s.noteRepo.Create(ctx, note); err != nil {
		log.Error("Failed to store notification", "title", note.Title, "error", err)
	}

	recipients, err := s.recipients(ctx, note.AdminID)
	if err != nil {
		log.Error("Failed to load notification recipients", "adminID", note.AdminID, "error", err)
	}

	seen := make(map[string]bool)
	sendEmail := func(to, name string) {
		key := strings.ToLower(strings.TrimSpace(to))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		err := s.email.SendEmail(ctx, notify.Email{To: to, ToName: name, Subject: note.Title, Text: note.Message})
		if err != nil {
			log.Warn("Email notification failed", "to", to, "error", err)
		}
	}

	for _, admin := range recipients {
		sendEmail(admin.Email, admin.Name)
		if admin.DeviceToken == "" {
			continue
		}
		err := s.push.SendPush(ctx, notify.Push{
			Token: admin.DeviceToken,
			Title: note.Title,
			Body:  note.Message,
			Data:  note.Attributes,
		})
		if err != nil {
			log.Warn("Push notification failed", "adminID", admin.ID, "error", err)
		}
	}
	for _, to := range s.extraEmails {
		sendEmail(to, "")
	}
}

func (s *notificationService) recipients(ctx context.Context, adminID int32) ([]domain.Admin, error) {
	if adminID != 0 {
		admin, err := s.adminRepo.GetByID(ctx, adminID)
		if err != nil {
			return nil, err
		}
		return []domain.Admin{*admin}, nil
	}
	return s.adminRepo.List(ctx)
}
