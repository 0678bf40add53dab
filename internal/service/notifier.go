package service

import (
	"context"
	"log"
	"time"

	"qaplatform/internal/model"
	"qaplatform/internal/repository"
)

// Notifier delivers a notification to a user.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// NotificationService stores the notification row and, when a publisher
// is wired, announces it on the queue. The row insert is the delivery
// guarantee; the queue publish is best effort and runs off the request
// path.
type NotificationService struct {
	Repo    *repository.NotificationRepo
	Publish func(ctx context.Context, n model.Notification) error
}

func NewNotificationService(repo *repository.NotificationRepo, publish func(ctx context.Context, n model.Notification) error) *NotificationService {
	return &NotificationService{Repo: repo, Publish: publish}
}

func (s *NotificationService) Notify(ctx context.Context, n model.Notification) error {
	if err := s.Repo.Create(ctx, &n); err != nil {
		return err
	}
	if s.Publish != nil {
		go func(n model.Notification) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.Publish(ctx, n); err != nil {
				log.Printf("[notify] queue publish failed for notification %d: %v", n.ID, err)
			}
		}(n)
	}
	return nil
}
