package notify

import (
	"context"

	"rentalmotor-backend/internal/config"
	"rentalmotor-backend/internal/logger"
)

// EmailSenderFromConfig returns a SendGrid sender, or a no-op when SendGrid is not configured
func EmailSenderFromConfig(cfg config.SendGridConfig) EmailSender {
	if cfg.APIKey == "" || cfg.FromEmail == "" {
		logger.Warn("SendGrid is not configured, notification emails are disabled")
		return NoopSender{}
	}
	logger.Info("Email notifications via SendGrid", "from", cfg.FromEmail)
	return NewSendGridSender(cfg.APIKey, cfg.FromEmail, cfg.FromName)
}

// PushSenderFromConfig returns a Firebase sender, or a no-op when Firebase is not configured or fails to start
func PushSenderFromConfig(ctx context.Context, cfg config.FirebaseConfig) PushSender {
	if cfg.CredentialsFile == "" {
		logger.Warn("Firebase is not configured, push notifications are disabled")
		return NoopSender{}
	}
	sender, err := NewFirebaseSender(ctx, cfg.CredentialsFile, cfg.ProjectID)
	if err != nil {
		logger.Error("Failed to initialize Firebase, push notifications are disabled", "error", err)
		return NoopSender{}
	}
	logger.Info("Push notifications via Firebase Cloud Messaging", "project_id", cfg.ProjectID)
	return sender
}
