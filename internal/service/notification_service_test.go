// FILE: internal/service/notification_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"rag-admin-be/internal/model"
	"rag-admin-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	admins  []model.User
	created []model.Notification
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, n *model.Notification) error {
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) GetNotificationsByUserID(context.Context, uuid.UUID, int, int) ([]model.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotificationRepo) GetUnreadCount(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepo) MarkAsRead(context.Context, uuid.UUID) error { return nil }

func (f *fakeNotificationRepo) MarkAllAsRead(context.Context, uuid.UUID) error { return nil }

func (f *fakeNotificationRepo) DeleteOlderThan(context.Context, int) (int64, error) { return 0, nil }

func (f *fakeNotificationRepo) GetUsersByRole(context.Context, string) ([]model.User, error) {
	return f.admins, nil
}

type fakeDelivery struct {
	sent []model.Notification
}

func (f *fakeDelivery) Send(_ uuid.UUID, n model.Notification) { f.sent = append(f.sent, n) }

func (f *fakeDelivery) Broadcast(n model.Notification) { f.sent = append(f.sent, n) }

func TestBuildNotificationSubstitutesPlaceholders(t *testing.T) {
	s := &NotificationService{}
	userID := uuid.New()

	evt := events.BaseEvent{
		Type: events.TypeDatasourceIngested,
		Data: map[string]interface{}{
			"name":      "docs.example.com",
			"documents": 12,
			"chunks":    340,
		},
		OccurredAt: time.Now(),
	}

	n := s.buildNotification(userID, notificationTemplates[events.TypeDatasourceIngested], evt)

	assert.Equal(t, "Data source indexed", n.Title)
	assert.Equal(t, "docs.example.com finished ingesting: 12 documents, 340 chunks.", n.Body)
	assert.Equal(t, userID, n.UserId)
	assert.False(t, n.Read)
}

func TestBuildNotificationSubstitutesTitle(t *testing.T) {
	s := &NotificationService{}

	evt := events.BaseEvent{
		Type: events.TypeSystemBroadcast,
		Data: map[string]interface{}{
			"title":   "Maintenance window",
			"message": "The platform goes down at 22:00 UTC.",
		},
		OccurredAt: time.Now(),
	}

	n := s.buildNotification(uuid.New(), notificationTemplates[events.TypeSystemBroadcast], evt)

	assert.Equal(t, "Maintenance window", n.Title)
	assert.Equal(t, "The platform goes down at 22:00 UTC.", n.Body)
}

func TestBuildNotificationAddsActionURL(t *testing.T) {
	s := &NotificationService{}
	dsID := uuid.New()

	evt := events.BaseEvent{
		Type: events.TypeDatasourceFailed,
		Data: map[string]interface{}{
			"name":        "broken source",
			"reason":      "fetch timed out",
			"entity_type": "datasource",
			"entity_id":   dsID.String(),
		},
		OccurredAt: time.Now(),
	}

	n := s.buildNotification(uuid.New(), notificationTemplates[events.TypeDatasourceFailed], evt)

	assert.Contains(t, string(n.Payload), `"action_url":"/datasources/`+dsID.String()+`"`)
	assert.Equal(t, "Data source broken source failed: fetch timed out", n.Body)
}

func TestHandleEventFansOutToAdmins(t *testing.T) {
	admin1 := model.User{Id: uuid.New(), Role: "admin"}
	admin2 := model.User{Id: uuid.New(), Role: "admin"}

	repo := &fakeNotificationRepo{admins: []model.User{admin1, admin2}}
	delivery := &fakeDelivery{}
	s := NewNotificationService(repo, nil, delivery, nil)

	evt := events.BaseEvent{
		Type:       events.TypeFeedbackCreated,
		Data:       map[string]interface{}{"rating": "negative"},
		OccurredAt: time.Now(),
	}

	err := s.handleEvent(context.Background(), evt)
	require.NoError(t, err)

	assert.Len(t, repo.created, 2)
	assert.Len(t, delivery.sent, 2)
	assert.Equal(t, admin1.Id, repo.created[0].UserId)
	assert.Equal(t, admin2.Id, repo.created[1].UserId)
	assert.Equal(t, "A user left negative feedback on a conversation.", repo.created[0].Body)
}

func TestHandleEventIgnoresUntemplatedTypes(t *testing.T) {
	repo := &fakeNotificationRepo{admins: []model.User{{Id: uuid.New(), Role: "admin"}}}
	s := NewNotificationService(repo, nil, &fakeDelivery{}, nil)

	evt := events.BaseEvent{
		Type:       "wire.internal",
		Data:       map[string]interface{}{},
		OccurredAt: time.Now(),
	}

	err := s.handleEvent(context.Background(), evt)
	require.NoError(t, err)
	assert.Empty(t, repo.created)
}
