// Package eventlog is the event publisher used when no broker is configured:
// every event becomes one structured log record.
package eventlog

import (
	"context"
	"log/slog"

	"repairshop/internal/core/ports"
)

type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger.With("component", "event_log")}
}

// Publish never fails.
func (p *Publisher) Publish(ctx context.Context, events ...ports.Event) error {
	for _, e := range events {
		attrs := make([]any, 0, 2*len(e.Data))
		for k, v := range e.Data {
			attrs = append(attrs, k, v)
		}

		p.logger.InfoContext(ctx, "event",
			"event_type", string(e.Type),
			"event_id", e.ID.String(),
			"aggregate_id", e.AggregateID.String(),
			"occurred_at", e.OccurredAt,
			slog.Group("data", attrs...),
		)
	}
	return nil
}
