package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/lake-evaporation-service/internal/config"
	"github.com/couchcryptid/lake-evaporation-service/internal/domain"
)

// Publisher produces computed evaporation results to a Kafka topic so
// downstream consumers see new values without polling the portal.
// It implements pipeline.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured result topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaResultTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishResults serializes and publishes the results of one cycle in a
// single WriteMessages call for efficiency.
func (p *Publisher) PublishResults(ctx context.Context, results []domain.Result) error {
	if len(results) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(results))
	for i := range results {
		msg, err := serializeToMessage(results[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a Result into a Kafka message keyed by the
// target series so values of one lake stay in partition order.
func serializeToMessage(result domain.Result) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize result: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(result.Location.SeriesID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "location", Value: []byte(result.Location.Name)},
			{Key: "date", Value: []byte(result.Date.Format("2006-01-02"))},
			{Key: "processed_at", Value: []byte(result.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
