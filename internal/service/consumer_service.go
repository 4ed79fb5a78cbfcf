package service

import (
	"context"
	"encoding/json"

	"booknotion-be/internal/pkg/logger"
	"booknotion-be/internal/repository/memory"
	"booknotion-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	statsCache *memory.StatsCache
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	statsCache *memory.StatsCache,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		statsCache: statsCache,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads are never retriable
		return
	}

	switch event.Type {
	case events.TopicNotebookChanged:
		cs.handleNotebookChanged(event)
	case events.TopicUserLogin:
		cs.logger.Info("consumer", "user logged in", event.Data)
	default:
		cs.logger.Warn("consumer", "unknown event type", map[string]interface{}{
			"type": event.Type,
		})
	}
	msg.Ack()
}

// handleNotebookChanged drops the cached stats of every section touched by a
// notebook write, so the next stats read recomputes from the store.
func (cs *consumerService) handleNotebookChanged(event events.BaseEvent) {
	for _, k := range []string{"section_id", "previous_section_id"} {
		raw, ok := event.Data[k].(string)
		if !ok || raw == "" {
			continue
		}
		sectionId, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		cs.statsCache.Invalidate(sectionId)
	}
}
