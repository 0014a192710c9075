package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const natsQueueGroup = "blood-webhook-workers"

// NewNATSConn подключается к NATS с бесконечным переподключением
func NewNATSConn(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("blood-mobilization"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return nc, nil
}

// NATSWebhookPublisher публикует события в subject NATS
type NATSWebhookPublisher struct {
	nc      *nats.Conn
	subject string
}

func NewNATSWebhookPublisher(nc *nats.Conn, subject string) *NATSWebhookPublisher {
	return &NATSWebhookPublisher{nc: nc, subject: subject}
}

// Publish публикует событие вебхука в NATS
func (p *NATSWebhookPublisher) Publish(ctx context.Context, event DonorResponseEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = payload
	msg.Header.Set("Nats-Msg-Id", event.ResponseID)
	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish webhook event to NATS: %w", err)
	}
	return nil
}

// StartNATS подписывает воркер на subject через queue group, чтобы каждое
// событие доставлялось одним экземпляром сервиса
func (w *WebhookWorker) StartNATS(ctx context.Context, nc *nats.Conn, subject string) error {
	sub, err := nc.QueueSubscribe(subject, natsQueueGroup, func(msg *nats.Msg) {
		w.handlePayload(ctx, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe nats subject %s: %w", subject, err)
	}

	w.logger.WithField("subject", subject).Info("Starting NATS webhook worker...")
	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
		w.logger.Info("Stopping NATS webhook worker.")
	}()
	return nil
}
