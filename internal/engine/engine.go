package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/blood_mobilization_system/internal/clock"
	"github.com/shenikar/blood_mobilization_system/internal/models"
)

const (
	// DonationIntervalDays - минимальный перерыв между донациями
	DonationIntervalDays = 90

	eligibleMessage = "You are eligible to donate!"
)

// Engine отбирает и ранжирует срочные запросы и проверяет пригодность донора.
// Состояния между вызовами не хранит: каталог и ответы передаёт вызывающий.
type Engine struct {
	clock clock.Clock
}

func New(c clock.Clock) *Engine {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Engine{clock: c}
}

// ListActiveEvents возвращает активные неистёкшие события, отсортированные
// по срочности, а при равной срочности - по расстоянию до пользователя.
// userLoc == nil означает, что местоположение неизвестно.
func (e *Engine) ListActiveEvents(catalog []*models.EmergencyEvent, userLoc *models.Location) []models.AnnotatedEvent {
	now := e.clock.Now()
	result := make([]models.AnnotatedEvent, 0, len(catalog))

	for _, event := range catalog {
		if event == nil || event.Status != models.EventStatusActive {
			continue
		}

		annotated := models.AnnotatedEvent{EmergencyEvent: *event}
		if userLoc != nil {
			d := Distance(*userLoc, event.Location)
			annotated.Distance = &d
		}
		annotated.HoursRemaining = math.Max(0, event.EstimatedEndTime.Sub(now).Hours())
		annotated.IsExpired = annotated.HoursRemaining <= 0

		if annotated.IsExpired {
			continue
		}
		result = append(result, annotated)
	}

	sort.SliceStable(result, func(i, j int) bool {
		ri, rj := result[i].UrgencyLevel.Rank(), result[j].UrgencyLevel.Rank()
		if ri != rj {
			return ri < rj
		}
		return distanceKey(result[i].Distance) < distanceKey(result[j].Distance)
	})

	return result
}

// неизвестное расстояние уходит в конец
func distanceKey(d *float64) float64 {
	if d == nil {
		return math.MaxFloat64
	}
	return *d
}

// CheckEligibility проверяет группу крови и перерыв между донациями.
// Отсутствие данных в профиле трактуется в пользу донора.
func (e *Engine) CheckEligibility(required models.BloodGroup, profile models.UserProfile) models.EligibilityVerdict {
	verdict := models.EligibilityVerdict{
		BloodGroupMatch: required.IsWildcard() || profile.BloodGroup == "" || profile.BloodGroup == required,
		DonationGapMet:  true,
		Reasons:         make([]string, 0, 2),
	}

	daysSince := 0
	if profile.LastDonationDate != nil {
		elapsed := e.clock.Now().Sub(*profile.LastDonationDate)
		daysSince = int(math.Floor(elapsed.Hours() / 24))
		verdict.DonationGapMet = elapsed >= DonationIntervalDays*24*time.Hour
	}

	verdict.Eligible = verdict.BloodGroupMatch && verdict.DonationGapMet

	if !verdict.BloodGroupMatch {
		verdict.Reasons = append(verdict.Reasons, fmt.Sprintf("Blood group mismatch. Required: %s", required))
	}
	if !verdict.DonationGapMet {
		verdict.Reasons = append(verdict.Reasons,
			fmt.Sprintf("Must wait %d more days since last donation", DonationIntervalDays-daysSince))
	}
	if verdict.Eligible {
		verdict.Reasons = append(verdict.Reasons, eligibleMessage)
	}

	return verdict
}

// SubmitResponse фиксирует ответ пользователя на событие. Пользователь может ответить
// на событие только один раз; existing не изменяется, возвращается новый набор ответов.
func (e *Engine) SubmitResponse(
	catalog []*models.EmergencyEvent,
	existing []*models.UserResponse,
	userID, eventID string,
	status models.ResponseStatus,
) ([]*models.UserResponse, *models.UserResponse, error) {
	if !status.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", models.ErrInvalidResponseStatus, status)
	}

	if findEvent(catalog, eventID) == nil {
		return nil, nil, fmt.Errorf("%w: %s", models.ErrEventNotFound, eventID)
	}

	for _, r := range existing {
		if r != nil && r.EventID == eventID && r.UserID == userID {
			return nil, nil, fmt.Errorf("%w: event %s", models.ErrDuplicateResponse, eventID)
		}
	}

	response := &models.UserResponse{
		ID:             uuid.NewString(),
		EventID:        eventID,
		UserID:         userID,
		ResponseStatus: status,
		ResponseTime:   e.clock.Now(),
	}

	updated := make([]*models.UserResponse, 0, len(existing)+1)
	updated = append(updated, existing...)
	updated = append(updated, response)

	return updated, response, nil
}

func findEvent(catalog []*models.EmergencyEvent, id string) *models.EmergencyEvent {
	for _, event := range catalog {
		if event != nil && event.ID == id {
			return event
		}
	}
	return nil
}
