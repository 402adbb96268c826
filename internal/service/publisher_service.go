// FILE: internal/service/publisher_service.go
package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IPublisherService pushes pre-marshalled task messages onto one topic.
// Each async pipeline (ingestion, evaluation) gets its own instance.
type IPublisherService interface {
	Publish(ctx context.Context, msgJson []byte) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (p *publisherService) Publish(ctx context.Context, msgJson []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), msgJson)
	msg.SetContext(ctx)
	return p.publisher.Publish(p.topicName, msg)
}
