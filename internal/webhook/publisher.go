package webhook

//go:generate mockgen -source=publisher.go -destination=mocks/publisher_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/blood_mobilization_system/internal/models"
)

const (
	webhookQueueKey = "donor_responses"
)

// DonorResponseEvent - уведомление больнице об ответе донора
type DonorResponseEvent struct {
	ResponseID         string                `json:"response_id"`
	EventID            string                `json:"event_id"`
	UserID             string                `json:"user_id"`
	HospitalName       string                `json:"hospital_name"`
	BloodGroupRequired models.BloodGroup     `json:"blood_group_required"`
	UrgencyLevel       models.UrgencyLevel   `json:"urgency_level"`
	ResponseStatus     models.ResponseStatus `json:"response_status"`
	DerivedStatus      models.DerivedStatus  `json:"derived_status"`
	Timestamp          time.Time             `json:"timestamp"`
}

// NewDonorResponseEvent собирает уведомление из события и ответа донора
func NewDonorResponseEvent(event *models.EmergencyEvent, response *models.UserResponse) DonorResponseEvent {
	return DonorResponseEvent{
		ResponseID:         response.ID,
		EventID:            response.EventID,
		UserID:             response.UserID,
		HospitalName:       event.HospitalName,
		BloodGroupRequired: event.BloodGroupRequired,
		UrgencyLevel:       event.UrgencyLevel,
		ResponseStatus:     response.ResponseStatus,
		DerivedStatus:      response.DerivedStatus(),
		Timestamp:          response.ResponseTime,
	}
}

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event DonorResponseEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event DonorResponseEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH в левую часть списка, воркер забирает справа через BRPOP
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}

// NopWebhookPublisher отбрасывает события, когда уведомления выключены
type NopWebhookPublisher struct{}

func (NopWebhookPublisher) Publish(context.Context, DonorResponseEvent) error {
	return nil
}
