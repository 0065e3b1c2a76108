package service

import (
	"context"

	"skillforge_backend/internal/model"
	"skillforge_backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
	Logger           *zap.Logger
}

func NewNotificationService(repo *repository.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{NotificationRepo: repo, Logger: logger}
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.NotificationRepo.FindByUser(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.NotificationRepo.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	return s.NotificationRepo.MarkRead(ctx, objID, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.NotificationRepo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id, userID string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	return s.NotificationRepo.Delete(ctx, objID, userID)
}

// notify writes a notification for the user. Failures are logged and
// swallowed: an inbox miss must not abort the action that triggered it.
func (s *NotificationService) notify(ctx context.Context, userID, content string, kind model.NotificationType, relatedID string) {
	n := &model.Notification{
		UserID:  userID,
		Content: content,
		Type:    kind,
	}
	if relatedID != "" {
		n.RelatedID = &relatedID
	}
	if err := s.NotificationRepo.Create(ctx, n); err != nil {
		s.Logger.Error("notification write failed",
			zap.String("userId", userID),
			zap.String("type", string(kind)),
			zap.Error(err))
	}
}

func (s *NotificationService) notifyAchievement(ctx context.Context, userID, content, relatedID string) {
	s.notify(ctx, userID, content, model.NotificationAchievement, relatedID)
}

func (s *NotificationService) notifyProgress(ctx context.Context, userID, content, relatedID string) {
	s.notify(ctx, userID, content, model.NotificationProgress, relatedID)
}
