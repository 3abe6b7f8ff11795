package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

// Publisher sends one serialized event body to the broker.
type Publisher interface {
	Publish(ctx context.Context, body []byte) error
}

// OutboxPublisher drains committed outbox rows to RabbitMQ. Events are
// written inside the checkout transaction, so a row is only ever visible
// here if its order exists.
type OutboxPublisher struct {
	Repo         usecase.OutboxRepo
	Producer     Publisher
	PollInterval time.Duration
	BatchSize    int
	RetryBackoff time.Duration
	Logger       *slog.Logger
}

func NewOutboxPublisher(repo usecase.OutboxRepo, producer Publisher, log *slog.Logger) *OutboxPublisher {
	return &OutboxPublisher{
		Repo:         repo,
		Producer:     producer,
		PollInterval: time.Second,
		BatchSize:    100,
		RetryBackoff: 30 * time.Second,
		Logger:       log,
	}
}

// Run polls until ctx is cancelled.
func (p *OutboxPublisher) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.drain(ctx); err != nil {
				p.Logger.Error("outbox drain", "error", err)
			}
		}
	}
}

func (p *OutboxPublisher) drain(ctx context.Context) error {
	msgs, err := p.Repo.FetchPending(ctx, p.BatchSize)
	if err != nil {
		return err
	}
	for _, m := range msgs {
		if err := p.Producer.Publish(ctx, m.Payload); err != nil {
			p.Logger.Warn("outbox publish failed",
				"outbox_id", m.ID, "channel", m.Channel, "retries", m.RetryCount, "error", err)
			if err := p.Repo.MarkFailed(ctx, m.ID, time.Now().Add(p.RetryBackoff)); err != nil {
				return err
			}
			continue
		}
		if err := p.Repo.MarkSent(ctx, m.ID); err != nil {
			return err
		}
	}
	return nil
}
