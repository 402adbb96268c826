// FILE: internal/service/notification_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"rag-admin-be/internal/model"
	"rag-admin-be/internal/pkg/logger"
	"rag-admin-be/internal/repository"
	"rag-admin-be/pkg/events"
	pktNats "rag-admin-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

// notificationTemplate renders one event type into an inbox entry.
// {placeholders} are substituted from the event payload.
type notificationTemplate struct {
	Title string
	Body  string
}

// Admin-facing templates per event type. Events without a template are
// consumed silently; they still live in the NATS stream for other
// consumers.
var notificationTemplates = map[string]notificationTemplate{
	events.TypeDatasourceCreated:    {Title: "Ingestion queued", Body: "Data source {name} was queued for ingestion."},
	events.TypeDatasourceIngested:   {Title: "Data source indexed", Body: "{name} finished ingesting: {documents} documents, {chunks} chunks."},
	events.TypeDatasourceFailed:     {Title: "Ingestion failed", Body: "Data source {name} failed: {reason}"},
	events.TypeEvaluationStarted:    {Title: "Evaluation started", Body: "Evaluation {name} started over {total} items."},
	events.TypeEvaluationCompleted:  {Title: "Evaluation finished", Body: "Evaluation {name} finished: {succeeded} succeeded, {failed} failed."},
	events.TypeEvaluationFailed:     {Title: "Evaluation failed", Body: "Evaluation {name} failed: {reason}"},
	events.TypeEvaluationCancelled:  {Title: "Evaluation cancelled", Body: "Evaluation {name} was cancelled."},
	events.TypeFeedbackCreated:      {Title: "New feedback", Body: "A user left {rating} feedback on a conversation."},
	events.TypeUserCreated:          {Title: "User created", Body: "{full_name} ({email}) was added to the platform."},
	events.TypeSystemBroadcast:      {Title: "{title}", Body: "{message}"},
}

// NotificationService turns bus events into persisted inbox rows for
// admins and pushes them over the websocket hub.
type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	tmpl, ok := notificationTemplates[event.EventType()]
	if !ok {
		return nil
	}

	recipients, err := s.resolveAdmins(ctx)
	if err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error resolving recipients for %s", event.EventType()), map[string]interface{}{"error": err})
		return err // nacked, NATS redelivers
	}

	for _, userID := range recipients {
		notif := s.buildNotification(userID, tmpl, event)

		if err := s.repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err})
			continue
		}

		if s.delivery != nil {
			s.delivery.Send(userID, notif)
		}
	}

	return nil
}

func (s *NotificationService) resolveAdmins(ctx context.Context) ([]uuid.UUID, error) {
	admins, err := s.repo.GetUsersByRole(ctx, "admin")
	if err != nil {
		return nil, err
	}
	userIDs := make([]uuid.UUID, 0, len(admins))
	for _, u := range admins {
		userIDs = append(userIDs, u.Id)
	}
	return userIDs, nil
}

func (s *NotificationService) buildNotification(userID uuid.UUID, tmpl notificationTemplate, event events.Event) model.Notification {
	payload := event.Payload()

	title := tmpl.Title
	body := tmpl.Body
	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		title = strings.ReplaceAll(title, placeholder, fmt.Sprintf("%v", v))
		body = strings.ReplaceAll(body, placeholder, fmt.Sprintf("%v", v))
	}

	// Enrich with action_url for deep linking when entity info is present.
	metaMap := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		metaMap[k] = v
	}
	entityType, _ := payload["entity_type"].(string)
	entityID, _ := payload["entity_id"].(string)
	if entityType != "" && entityID != "" {
		metaMap["action_url"] = fmt.Sprintf("/%ss/%s", entityType, entityID)
	}
	metaJSON, _ := json.Marshal(metaMap)

	return model.Notification{
		Id:        uuid.New(),
		UserId:    userID,
		Type:      event.EventType(),
		Title:     title,
		Body:      body,
		Payload:   datatypes.JSON(metaJSON),
		Read:      false,
		CreatedAt: time.Now(),
	}
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks a notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// SweepOlderThan deletes read notifications older than the given number of
// days. Called by the maintenance scheduler.
func (s *NotificationService) SweepOlderThan(ctx context.Context, days int) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, days)
}
