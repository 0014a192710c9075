package service

//go:generate mockgen -source=emergency.go -destination=mocks/emergency_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shenikar/blood_mobilization_system/internal/clock"
	"github.com/shenikar/blood_mobilization_system/internal/engine"
	"github.com/shenikar/blood_mobilization_system/internal/models"
	"github.com/shenikar/blood_mobilization_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// EventRepository определяет контракт для работы с бд срочных запросов
type EventRepository interface {
	Create(ctx context.Context, event *models.EmergencyEvent) error
	GetByID(ctx context.Context, id string) (*models.EmergencyEvent, error)
	List(ctx context.Context, page, pageSize int) ([]*models.EmergencyEvent, error)
	ListActive(ctx context.Context) ([]*models.EmergencyEvent, error)
	Close(ctx context.Context, id string) error
}

// ResponseRepository хранит ответы доноров. Create обязан атомарно отклонять
// второй ответ той же пары (пользователь, событие) с models.ErrDuplicateResponse.
type ResponseRepository interface {
	Create(ctx context.Context, response *models.UserResponse) error
	ListByUser(ctx context.Context, userID string) ([]*models.UserResponse, error)
	CountByEvent(ctx context.Context, eventID string) (map[models.ResponseStatus]int, error)
}

// CatalogCache кеширует каталог активных событий; промах возвращает nil, nil
type CatalogCache interface {
	GetActiveEvents(ctx context.Context) ([]*models.EmergencyEvent, error)
	SetActiveEvents(ctx context.Context, events []*models.EmergencyEvent) error
	InvalidateActiveEvents(ctx context.Context) error
}

// EmergencyService определяет контракт бизнес-логики срочной мобилизации доноров
type EmergencyService interface {
	CreateEvent(ctx context.Context, event *models.EmergencyEvent) error
	GetEvent(ctx context.Context, id string) (*models.EmergencyEvent, error)
	ListEvents(ctx context.Context, page, pageSize int) ([]*models.EmergencyEvent, error)
	CloseEvent(ctx context.Context, id string) error
	ListActiveEvents(ctx context.Context, userLoc *models.Location) ([]models.AnnotatedEvent, error)
	CheckEligibility(ctx context.Context, required models.BloodGroup, profile models.UserProfile) (*models.EligibilityVerdict, error)
	CheckEventEligibility(ctx context.Context, eventID string, profile models.UserProfile) (*models.EligibilityVerdict, error)
	SubmitResponse(ctx context.Context, userID, eventID string, status models.ResponseStatus) (*models.UserResponse, error)
	ListUserResponses(ctx context.Context, userID string) ([]*models.UserResponse, error)
	GetEventStats(ctx context.Context, eventID string) (*models.EventResponseStats, error)
}

// ErrInvalidEvent - событие не прошло проверку при создании
var ErrInvalidEvent = errors.New("invalid emergency event")

type emergencyService struct {
	events    EventRepository
	responses ResponseRepository
	cache     CatalogCache
	publisher webhook.WebhookPublisher
	engine    *engine.Engine
	clock     clock.Clock
	logger    *logrus.Logger
}

func NewEmergencyService(
	events EventRepository,
	responses ResponseRepository,
	cache CatalogCache,
	publisher webhook.WebhookPublisher,
	clk clock.Clock,
	logger *logrus.Logger,
) EmergencyService {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &emergencyService{
		events:    events,
		responses: responses,
		cache:     cache,
		publisher: publisher,
		engine:    engine.New(clk),
		clock:     clk,
		logger:    logger,
	}
}

// CreateEvent создает срочный запрос в статусе ACTIVE
func (s *emergencyService) CreateEvent(ctx context.Context, event *models.EmergencyEvent) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "emergency",
		"method":   "CreateEvent",
		"hospital": event.HospitalName,
	})
	log.Info("Attempting to create a new emergency event")

	now := s.clock.Now()
	if event.UnitsRequired <= 0 {
		return fmt.Errorf("%w: units required must be positive", ErrInvalidEvent)
	}
	if !event.EstimatedEndTime.After(now) {
		return fmt.Errorf("%w: estimated end time must be in the future", ErrInvalidEvent)
	}
	if strings.TrimSpace(event.ID) == "" {
		event.ID = "EMG-" + uuid.NewString()
	}
	if event.BloodGroupRequired == "" {
		event.BloodGroupRequired = models.BloodGroupAny
	}
	event.Status = models.EventStatusActive
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.events.Create(ctx, event); err != nil {
		log.WithError(err).Error("Failed to create emergency event in repository")
		return fmt.Errorf("service: could not create emergency event: %w", err)
	}
	s.invalidateCatalog(ctx, log)

	log.WithFields(logrus.Fields{
		"event_id": event.ID,
		"ends":     humanize.RelTime(now, event.EstimatedEndTime, "ago", "from now"),
	}).Info("Emergency event created successfully")
	return nil
}

// GetEvent получает событие по ID
func (s *emergencyService) GetEvent(ctx context.Context, id string) (*models.EmergencyEvent, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "emergency",
		"method":   "GetEvent",
		"event_id": id,
	})
	log.Info("Fetching emergency event by ID")

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get emergency event from repository")
		return nil, fmt.Errorf("service: could not get emergency event: %w", err)
	}
	return event, nil
}

// ListEvents возвращает список событий с пагинацией
func (s *emergencyService) ListEvents(ctx context.Context, page, pageSize int) ([]*models.EmergencyEvent, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "emergency",
		"method":    "ListEvents",
		"page":      page,
		"page_size": pageSize,
	})
	log.Info("Listing emergency events")

	events, err := s.events.List(ctx, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list emergency events from repository")
		return nil, fmt.Errorf("service: could not list emergency events: %w", err)
	}

	log.WithField("count", len(events)).Info("Emergency events listed successfully")
	return events, nil
}

// CloseEvent закрывает событие, после чего оно пропадает из подбора
func (s *emergencyService) CloseEvent(ctx context.Context, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "emergency",
		"method":   "CloseEvent",
		"event_id": id,
	})
	log.Info("Attempting to close emergency event")

	if err := s.events.Close(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to close emergency event in repository")
		return fmt.Errorf("service: could not close emergency event: %w", err)
	}
	s.invalidateCatalog(ctx, log)

	log.Info("Emergency event closed successfully")
	return nil
}

// ListActiveEvents возвращает ранжированный список активных событий для пользователя
func (s *emergencyService) ListActiveEvents(ctx context.Context, userLoc *models.Location) ([]models.AnnotatedEvent, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "emergency",
		"method":       "ListActiveEvents",
		"has_location": userLoc != nil,
	})

	catalog, err := s.activeCatalog(ctx, log)
	if err != nil {
		return nil, err
	}

	result := s.engine.ListActiveEvents(catalog, userLoc)
	log.WithField("count", len(result)).Info("Active emergency events listed")
	return result, nil
}

// CheckEligibility проверяет донора против явно заданной группы крови
func (s *emergencyService) CheckEligibility(_ context.Context, required models.BloodGroup, profile models.UserProfile) (*models.EligibilityVerdict, error) {
	verdict := s.engine.CheckEligibility(required, profile)
	s.logger.WithFields(logrus.Fields{
		"service":  "emergency",
		"method":   "CheckEligibility",
		"required": required,
		"eligible": verdict.Eligible,
	}).Debug("Eligibility checked")
	return &verdict, nil
}

// CheckEventEligibility проверяет донора против требования конкретного события
func (s *emergencyService) CheckEventEligibility(ctx context.Context, eventID string, profile models.UserProfile) (*models.EligibilityVerdict, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "emergency",
		"method":   "CheckEventEligibility",
		"event_id": eventID,
	})

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		log.WithError(err).Warn("Failed to get emergency event for eligibility check")
		return nil, fmt.Errorf("service: could not check eligibility: %w", err)
	}

	verdict := s.engine.CheckEligibility(event.BloodGroupRequired, profile)
	log.WithField("eligible", verdict.Eligible).Info("Eligibility checked")
	return &verdict, nil
}

// SubmitResponse записывает ответ пользователя на событие, один раз на пару (пользователь, событие).
// Проверка дубликата в движке работает по снимку ответов, окончательно её гарантирует хранилище.
func (s *emergencyService) SubmitResponse(ctx context.Context, userID, eventID string, status models.ResponseStatus) (*models.UserResponse, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":         "emergency",
		"method":          "SubmitResponse",
		"event_id":        eventID,
		"user_id":         userID,
		"response_status": status,
	})
	log.Info("Submitting donor response")

	catalog, err := s.activeCatalog(ctx, log)
	if err != nil {
		return nil, err
	}

	existing, err := s.responses.ListByUser(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to list user responses")
		return nil, fmt.Errorf("service: could not list user responses: %w", err)
	}

	_, response, err := s.engine.SubmitResponse(catalog, existing, userID, eventID, status)
	if err != nil {
		log.WithError(err).Warn("Donor response rejected")
		return nil, fmt.Errorf("service: %w", err)
	}

	if err := s.responses.Create(ctx, response); err != nil {
		log.WithError(err).Warn("Failed to store donor response")
		return nil, fmt.Errorf("service: could not store response: %w", err)
	}

	if response.ResponseStatus == models.ResponseResponded {
		event := findEvent(catalog, eventID)
		if err := s.publisher.Publish(ctx, webhook.NewDonorResponseEvent(event, response)); err != nil {
			// уведомление best effort: ответ уже сохранен
			log.WithError(err).Error("Failed to publish donor response webhook")
		}
	}

	log.WithFields(logrus.Fields{
		"response_id":    response.ID,
		"derived_status": response.DerivedStatus(),
	}).Info("Donor response recorded")
	return response, nil
}

// ListUserResponses возвращает все ответы пользователя
func (s *emergencyService) ListUserResponses(ctx context.Context, userID string) ([]*models.UserResponse, error) {
	responses, err := s.responses.ListByUser(ctx, userID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "emergency",
			"method":  "ListUserResponses",
			"user_id": userID,
		}).WithError(err).Error("Failed to list user responses")
		return nil, fmt.Errorf("service: could not list user responses: %w", err)
	}
	return responses, nil
}

// GetEventStats возвращает количество ответов по статусам для события
func (s *emergencyService) GetEventStats(ctx context.Context, eventID string) (*models.EventResponseStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "emergency",
		"method":   "GetEventStats",
		"event_id": eventID,
	})

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		log.WithError(err).Warn("Failed to get emergency event for stats")
		return nil, fmt.Errorf("service: could not get event stats: %w", err)
	}

	counts, err := s.responses.CountByEvent(ctx, eventID)
	if err != nil {
		log.WithError(err).Error("Failed to count event responses")
		return nil, fmt.Errorf("service: could not count event responses: %w", err)
	}

	stats := &models.EventResponseStats{
		EventID:       event.ID,
		UnitsRequired: event.UnitsRequired,
		Counts:        make(map[models.ResponseStatus]int, 3),
	}
	for _, st := range []models.ResponseStatus{models.ResponseResponded, models.ResponseNotAvailable, models.ResponseRemindLater} {
		stats.Counts[st] = counts[st]
		stats.Total += counts[st]
	}
	return stats, nil
}

// activeCatalog читает каталог активных событий из кеша, при промахе - из бд
func (s *emergencyService) activeCatalog(ctx context.Context, log *logrus.Entry) ([]*models.EmergencyEvent, error) {
	cached, err := s.cache.GetActiveEvents(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to read active catalog from cache")
	}
	if cached != nil {
		return cached, nil
	}

	catalog, err := s.events.ListActive(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list active emergency events from repository")
		return nil, fmt.Errorf("service: could not load active emergency events: %w", err)
	}

	if err := s.cache.SetActiveEvents(ctx, catalog); err != nil {
		log.WithError(err).Warn("Failed to store active catalog in cache")
	}
	return catalog, nil
}

func (s *emergencyService) invalidateCatalog(ctx context.Context, log *logrus.Entry) {
	if err := s.cache.InvalidateActiveEvents(ctx); err != nil {
		log.WithError(err).Warn("Failed to invalidate active catalog cache")
	}
}

func findEvent(catalog []*models.EmergencyEvent, id string) *models.EmergencyEvent {
	for _, event := range catalog {
		if event.ID == id {
			return event
		}
	}
	return &models.EmergencyEvent{ID: id}
}
