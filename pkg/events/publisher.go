// FILE: pkg/events/publisher.go
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event type codes double as NATS subject suffixes (events.<code>).
const (
	TypeDatasourceCreated  = "datasource.created"
	TypeDatasourceIngested = "datasource.ingested"
	TypeDatasourceFailed   = "datasource.failed"

	TypeEvaluationStarted   = "evaluation.started"
	TypeEvaluationCompleted = "evaluation.completed"
	TypeEvaluationFailed    = "evaluation.failed"
	TypeEvaluationCancelled = "evaluation.cancelled"

	TypeFeedbackCreated = "feedback.created"
	TypeUserCreated     = "user.created"

	TypeSystemBroadcast = "system.broadcast"
)

// Sink is where typed events land; satisfied by *nats.Publisher.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// ErrorLogger is the slice of logger.ILogger the publisher needs.
type ErrorLogger interface {
	Error(module string, message string, details map[string]interface{})
}

// Publisher abstracts event publication for the platform's operations.
// Publishing is advisory: failures are logged, never propagated, so a
// NATS outage cannot fail the operation that triggered the event.
type Publisher interface {
	PublishDatasourceCreated(ctx context.Context, datasourceId, knowledgeBaseId uuid.UUID, name, sourceType string)
	PublishDatasourceIngested(ctx context.Context, datasourceId, knowledgeBaseId uuid.UUID, name string, documents, chunks int)
	PublishDatasourceFailed(ctx context.Context, datasourceId, knowledgeBaseId uuid.UUID, name, reason string)
	PublishEvaluationStarted(ctx context.Context, taskId uuid.UUID, name string, total int)
	PublishEvaluationCompleted(ctx context.Context, taskId uuid.UUID, name string, succeeded, failed int, averageScore float64)
	PublishEvaluationFailed(ctx context.Context, taskId uuid.UUID, name, reason string)
	PublishEvaluationCancelled(ctx context.Context, taskId uuid.UUID, name string)
	PublishFeedbackCreated(ctx context.Context, feedbackId, chatId uuid.UUID, rating string)
	PublishUserCreated(ctx context.Context, userId uuid.UUID, email, fullName string)
	PublishSystemBroadcast(ctx context.Context, title, message string)
}

// NatsPublisher implements Publisher over the NATS events stream.
type NatsPublisher struct {
	sink   Sink
	logger ErrorLogger
}

func NewNatsPublisher(sink Sink, logger ErrorLogger) *NatsPublisher {
	return &NatsPublisher{
		sink:   sink,
		logger: logger,
	}
}

var _ Publisher = &NatsPublisher{}

func (p *NatsPublisher) PublishDatasourceCreated(ctx context.Context, datasourceId, knowledgeBaseId uuid.UUID, name, sourceType string) {
	p.emit(ctx, TypeDatasourceCreated, map[string]interface{}{
		"datasource_id":     datasourceId,
		"knowledge_base_id": knowledgeBaseId,
		"name":              name,
		"source_type":       sourceType,
		"entity_type":       "datasource",
		"entity_id":         datasourceId.String(),
	})
}

func (p *NatsPublisher) PublishDatasourceIngested(ctx context.Context, datasourceId, knowledgeBaseId uuid.UUID, name string, documents, chunks int) {
	p.emit(ctx, TypeDatasourceIngested, map[string]interface{}{
		"datasource_id":     datasourceId,
		"knowledge_base_id": knowledgeBaseId,
		"name":              name,
		"documents":         documents,
		"chunks":            chunks,
		"entity_type":       "datasource",
		"entity_id":         datasourceId.String(),
	})
}

func (p *NatsPublisher) PublishDatasourceFailed(ctx context.Context, datasourceId, knowledgeBaseId uuid.UUID, name, reason string) {
	p.emit(ctx, TypeDatasourceFailed, map[string]interface{}{
		"datasource_id":     datasourceId,
		"knowledge_base_id": knowledgeBaseId,
		"name":              name,
		"reason":            reason,
		"entity_type":       "datasource",
		"entity_id":         datasourceId.String(),
	})
}

func (p *NatsPublisher) PublishEvaluationStarted(ctx context.Context, taskId uuid.UUID, name string, total int) {
	p.emit(ctx, TypeEvaluationStarted, map[string]interface{}{
		"task_id":     taskId,
		"name":        name,
		"total":       total,
		"entity_type": "evaluation_task",
		"entity_id":   taskId.String(),
	})
}

func (p *NatsPublisher) PublishEvaluationCompleted(ctx context.Context, taskId uuid.UUID, name string, succeeded, failed int, averageScore float64) {
	p.emit(ctx, TypeEvaluationCompleted, map[string]interface{}{
		"task_id":       taskId,
		"name":          name,
		"succeeded":     succeeded,
		"failed":        failed,
		"average_score": averageScore,
		"entity_type":   "evaluation_task",
		"entity_id":     taskId.String(),
	})
}

func (p *NatsPublisher) PublishEvaluationFailed(ctx context.Context, taskId uuid.UUID, name, reason string) {
	p.emit(ctx, TypeEvaluationFailed, map[string]interface{}{
		"task_id":     taskId,
		"name":        name,
		"reason":      reason,
		"entity_type": "evaluation_task",
		"entity_id":   taskId.String(),
	})
}

func (p *NatsPublisher) PublishEvaluationCancelled(ctx context.Context, taskId uuid.UUID, name string) {
	p.emit(ctx, TypeEvaluationCancelled, map[string]interface{}{
		"task_id":     taskId,
		"name":        name,
		"entity_type": "evaluation_task",
		"entity_id":   taskId.String(),
	})
}

func (p *NatsPublisher) PublishFeedbackCreated(ctx context.Context, feedbackId, chatId uuid.UUID, rating string) {
	p.emit(ctx, TypeFeedbackCreated, map[string]interface{}{
		"feedback_id": feedbackId,
		"chat_id":     chatId,
		"rating":      rating,
		"entity_type": "feedback",
		"entity_id":   feedbackId.String(),
	})
}

func (p *NatsPublisher) PublishUserCreated(ctx context.Context, userId uuid.UUID, email, fullName string) {
	p.emit(ctx, TypeUserCreated, map[string]interface{}{
		"user_id":     userId,
		"email":       email,
		"full_name":   fullName,
		"entity_type": "user",
		"entity_id":   userId.String(),
	})
}

func (p *NatsPublisher) PublishSystemBroadcast(ctx context.Context, title, message string) {
	p.emit(ctx, TypeSystemBroadcast, map[string]interface{}{
		"title":   title,
		"message": message,
	})
}

func (p *NatsPublisher) emit(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.sink == nil {
		return
	}

	evt := BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := p.sink.Publish(ctx, evt); err != nil && p.logger != nil {
		p.logger.Error("Events", "Failed to publish "+eventType, map[string]interface{}{"error": err.Error()})
	}
}

// NoopPublisher satisfies Publisher when NATS is not configured.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) PublishDatasourceCreated(context.Context, uuid.UUID, uuid.UUID, string, string) {
}

func (NoopPublisher) PublishDatasourceIngested(context.Context, uuid.UUID, uuid.UUID, string, int, int) {
}

func (NoopPublisher) PublishDatasourceFailed(context.Context, uuid.UUID, uuid.UUID, string, string) {
}

func (NoopPublisher) PublishEvaluationStarted(context.Context, uuid.UUID, string, int) {}

func (NoopPublisher) PublishEvaluationCompleted(context.Context, uuid.UUID, string, int, int, float64) {
}

func (NoopPublisher) PublishEvaluationFailed(context.Context, uuid.UUID, string, string) {}

func (NoopPublisher) PublishEvaluationCancelled(context.Context, uuid.UUID, string) {}

func (NoopPublisher) PublishFeedbackCreated(context.Context, uuid.UUID, uuid.UUID, string) {}

func (NoopPublisher) PublishUserCreated(context.Context, uuid.UUID, string, string) {}

func (NoopPublisher) PublishSystemBroadcast(context.Context, string, string) {}
