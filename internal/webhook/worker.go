package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/blood_mobilization_system/internal/config"
	"github.com/sirupsen/logrus"
)

// WebhookWorker - структура для обработки и отправки вебхуков
type WebhookWorker struct {
	logger     *logrus.Logger
	cfg        *config.Config
	httpClient *http.Client
}

// NewWebhookWorker создает новый WebhookWorker
func NewWebhookWorker(logger *logrus.Logger, cfg *config.Config) *WebhookWorker {
	return &WebhookWorker{
		logger: logger,
		cfg:    cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
	}
}

// StartRedis запускает горутину для обработки очереди вебхуков в Redis
func (w *WebhookWorker) StartRedis(ctx context.Context, redisClient *redis.Client) {
	w.logger.Info("Starting Redis webhook worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping Redis webhook worker.")
				return
			default:
			}

			// BRPOP - блокирующее извлечение из правой части списка, 0 означает бесконечное ожидание
			result, err := redisClient.BRPop(ctx, 0, webhookQueueKey).Result()
			if err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop webhook event from Redis")
				w.wait(ctx, w.cfg.WebhookTimeout)
				continue
			}

			// result[0] - ключ, result[1] - значение
			w.handlePayload(ctx, []byte(result[1]))
		}
	}()
}

func (w *WebhookWorker) handlePayload(ctx context.Context, payload []byte) {
	var event DonorResponseEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		w.logger.WithError(err).Error("Failed to unmarshal webhook event")
		return
	}

	log := w.logger.WithFields(logrus.Fields{
		"event_id":    event.EventID,
		"response_id": event.ResponseID,
	})
	if err := w.Deliver(ctx, payload); err != nil {
		log.WithError(err).Error("Webhook delivery failed")
		return
	}
	log.Info("Webhook delivered successfully.")
}

// Deliver отправляет payload на WEBHOOK_URL с экспоненциальной задержкой между попытками
func (w *WebhookWorker) Deliver(ctx context.Context, payload []byte) error {
	if w.cfg.WebhookURL == "" {
		w.logger.Warn("Webhook URL is not configured. Skipping webhook delivery.")
		return nil
	}

	maxRetries := w.cfg.WebhookMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	delay := w.cfg.WebhookBaseDelay

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			if !w.wait(ctx, delay) {
				return ctx.Err()
			}
			delay *= 2
		}

		lastErr = w.send(ctx, payload)
		if lastErr == nil {
			return nil
		}
		w.logger.WithError(lastErr).Warnf("Webhook attempt failed. Retries left: %d", maxRetries-1-i)
	}

	return fmt.Errorf("failed to deliver webhook after %d attempts: %w", maxRetries, lastErr)
}

func (w *WebhookWorker) send(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(payload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status code %d", resp.StatusCode)
	}
	return nil
}

// wait возвращает false, если контекст отменили раньше
func (w *WebhookWorker) wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
