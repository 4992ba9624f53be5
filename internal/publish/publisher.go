package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Envelope is the payload stored in the stream
type Envelope struct {
	ID         string    `json:"id"`
	Document   string    `json:"document"`
	RenderedAt time.Time `json:"rendered_at"`
}

// Publisher appends rendered documents to a Redis stream
type Publisher struct {
	client *redis.Client
	stream string
	logger *zap.Logger
	now    func() time.Time
}

// NewPublisher creates a new Redis stream publisher
func NewPublisher(client *redis.Client, stream string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client: client,
		stream: stream,
		logger: logger,
		now:    time.Now,
	}
}

// Publish publishes a rendered document and returns its envelope
func (p *Publisher) Publish(ctx context.Context, document string) (*Envelope, error) {
	envelope := &Envelope{
		ID:         uuid.NewString(),
		Document:   document,
		RenderedAt: p.now().UTC(),
	}

	// Marshal envelope to JSON
	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}

	// Publish to Redis stream
	streamID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to publish document: %w", err)
	}

	p.logger.Info("published rendered document",
		zap.String("stream", p.stream),
		zap.String("stream_id", streamID),
		zap.String("document_id", envelope.ID),
	)

	return envelope, nil
}

// Stream returns the stream key documents are published to
func (p *Publisher) Stream() string {
	return p.stream
}
