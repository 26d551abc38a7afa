package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"downtimes/internal/config"
	"downtimes/internal/model"
)

// Publish sends each record as one JSON message, keyed by host so
// downtimes for the same host land on the same partition.
func Publish(ctx context.Context, cfg config.PublishConfig, records []model.Downtime, logger *slog.Logger) error {
	if !cfg.Enabled {
		return fmt.Errorf("publish is not enabled in the config")
	}
	if len(records) == 0 {
		if logger != nil {
			logger.Info("no downtime records to publish")
		}
		return nil
	}
	w := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.Hash{},
	}
	defer w.Close()

	msgs := make([]kafka.Message, 0, len(records))
	for i := range records {
		value, err := json.Marshal(&records[i])
		if err != nil {
			return fmt.Errorf("encode downtime record: %w", err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(records[i].HostName),
			Value: value,
		})
	}
	if err := w.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write to kafka: %w", err)
	}
	if logger != nil {
		logger.Info("published downtime records", "topic", cfg.Topic, "count", len(msgs))
	}
	return nil
}
