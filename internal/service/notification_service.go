package service

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/sales-report-service/internal/events"
)

const unreadCommentsKey = "notifications:unread_comments:%d"

// NotificationService keeps per-staff unread-comment counters in Redis.
// A comment on someone's report increments the owner's counter; reading the
// dashboard clears it.
type NotificationService struct {
	redis      *redis.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService builds the service.
func NewNotificationService(client *redis.Client, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{redis: client, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes the service to comment events.
func (s *NotificationService) RegisterHandlers() {
	s.dispatcher.Subscribe(events.EventCommentAdded, s.onCommentAdded)
}

func (s *NotificationService) onCommentAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CommentAddedPayload)
	if !ok {
		return nil
	}
	// Own comments on own reports are not notifications.
	if payload.ReportOwner == event.ActorID {
		return nil
	}
	key := fmt.Sprintf(unreadCommentsKey, payload.ReportOwner)
	if err := s.redis.Incr(ctx, key).Err(); err != nil {
		s.logger.Warn("failed to increment unread comments", zap.Int64("staff", payload.ReportOwner), zap.Error(err))
		return err
	}
	return nil
}

// UnreadCount returns the pending counter for a staff member.
func (s *NotificationService) UnreadCount(ctx context.Context, salesID int64) (int64, error) {
	key := fmt.Sprintf(unreadCommentsKey, salesID)
	count, err := s.redis.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}

// MarkRead resets the counter after the dashboard has surfaced it.
func (s *NotificationService) MarkRead(ctx context.Context, salesID int64) error {
	key := fmt.Sprintf(unreadCommentsKey, salesID)
	return s.redis.Del(ctx, key).Err()
}
