package notify

import (
	"context"
	"fmt"

	"rentalmotor-backend/internal/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FirebaseSender delivers push notifications through Firebase Cloud Messaging
type FirebaseSender struct {
	client messagingClient
}

// NewFirebaseSender initializes the Firebase app from a service account file
func NewFirebaseSender(ctx context.Context, credentialsFile, projectID string) (*FirebaseSender, error) {
	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &FirebaseSender{client: client}, nil
}

func (s *FirebaseSender) SendPush(ctx context.Context, push Push) error {
	if push.Token == "" {
		return nil
	}
	logger.ExternalServiceCall("firebase", "SendPush", "title", push.Title)

	id, err := s.client.Send(ctx, &messaging.Message{
		Token: push.Token,
		Notification: &messaging.Notification{
			Title: push.Title,
			Body:  push.Body,
		},
		Data: push.Data,
	})
	if err != nil {
		err = fmt.Errorf("failed to send push notification: %w", err)
		logger.ExternalServiceResult("firebase", "SendPush", err)
		return err
	}

	logger.ExternalServiceResult("firebase", "SendPush", nil, "message_id", id)
	return nil
}
