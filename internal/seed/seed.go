// Package seed загружает тестовые срочные запросы из TOML-файла в хранилище.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/shenikar/blood_mobilization_system/internal/models"
	"github.com/sirupsen/logrus"
)

// Fixture - содержимое файла с событиями
type Fixture struct {
	Emergencies []EmergencyFixture `toml:"emergency"`
}

// EmergencyFixture описывает одно событие. Время окончания задаётся либо
// абсолютно (ends_at), либо относительно момента загрузки (ends_in).
type EmergencyFixture struct {
	ID           string     `toml:"id"`
	HospitalName string     `toml:"hospital_name"`
	Description  string     `toml:"description"`
	ContactPhone string     `toml:"contact_phone"`
	Latitude     float64    `toml:"latitude"`
	Longitude    float64    `toml:"longitude"`
	BloodGroup   string     `toml:"blood_group"`
	Units        int        `toml:"units"`
	Urgency      string     `toml:"urgency"`
	Status       string     `toml:"status"`
	EndsIn       string     `toml:"ends_in"`
	EndsAt       *time.Time `toml:"ends_at"`
}

// EventWriter - всё, что нужно от хранилища для загрузки
type EventWriter interface {
	Upsert(ctx context.Context, event *models.EmergencyEvent) error
}

// Load читает и разбирает файл
func Load(path string) (*Fixture, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	fixture, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fixture, nil
}

// Parse разбирает TOML; неизвестные ключи считаются ошибкой
func Parse(body []byte) (*Fixture, error) {
	var fixture Fixture
	dec := toml.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fixture); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("parse seed file: %w\n%s", err, strict.String())
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &fixture, nil
}

// Events превращает описания в модели, проверяя каждое
func (f *Fixture) Events(now time.Time) ([]*models.EmergencyEvent, error) {
	events := make([]*models.EmergencyEvent, 0, len(f.Emergencies))
	seen := make(map[string]struct{}, len(f.Emergencies))
	for i, item := range f.Emergencies {
		event, err := item.toModel(now)
		if err != nil {
			return nil, fmt.Errorf("emergency #%d (%s): %w", i+1, item.ID, err)
		}
		if _, dup := seen[event.ID]; dup {
			return nil, fmt.Errorf("emergency #%d: duplicate id %s", i+1, event.ID)
		}
		seen[event.ID] = struct{}{}
		events = append(events, event)
	}
	return events, nil
}

func (e EmergencyFixture) toModel(now time.Time) (*models.EmergencyEvent, error) {
	id := strings.TrimSpace(e.ID)
	if id == "" {
		return nil, errors.New("id is required")
	}
	if strings.TrimSpace(e.HospitalName) == "" {
		return nil, errors.New("hospital_name is required")
	}
	if e.Units <= 0 {
		return nil, errors.New("units must be positive")
	}
	if e.Latitude < -90 || e.Latitude > 90 || e.Longitude < -180 || e.Longitude > 180 {
		return nil, errors.New("coordinates out of range")
	}

	group := models.BloodGroup(strings.ToUpper(strings.TrimSpace(e.BloodGroup)))
	if group == "" {
		group = models.BloodGroupAny
	}
	if !group.Valid() {
		return nil, fmt.Errorf("unknown blood_group %q", e.BloodGroup)
	}

	urgency := models.UrgencyLevel(strings.ToUpper(e.Urgency))
	if !urgency.Valid() {
		return nil, fmt.Errorf("unknown urgency %q", e.Urgency)
	}

	status := models.EventStatus(strings.ToUpper(e.Status))
	switch status {
	case "":
		status = models.EventStatusActive
	case models.EventStatusActive, models.EventStatusClosed:
	default:
		return nil, fmt.Errorf("unknown status %q", e.Status)
	}

	var end time.Time
	switch {
	case e.EndsAt != nil && e.EndsIn != "":
		return nil, errors.New("ends_at and ends_in are mutually exclusive")
	case e.EndsAt != nil:
		end = e.EndsAt.UTC()
	case e.EndsIn != "":
		d, err := time.ParseDuration(e.EndsIn)
		if err != nil {
			return nil, fmt.Errorf("invalid ends_in: %w", err)
		}
		end = now.Add(d)
	default:
		return nil, errors.New("one of ends_at or ends_in is required")
	}

	return &models.EmergencyEvent{
		ID:                 id,
		HospitalName:       e.HospitalName,
		Description:        e.Description,
		ContactPhone:       e.ContactPhone,
		Location:           models.Location{Latitude: e.Latitude, Longitude: e.Longitude},
		BloodGroupRequired: group,
		UnitsRequired:      e.Units,
		UrgencyLevel:       urgency,
		Status:             status,
		CreatedAt:          now,
		UpdatedAt:          now,
		EstimatedEndTime:   end,
	}, nil
}

// Apply записывает события по одному и останавливается на первой ошибке
func Apply(ctx context.Context, w EventWriter, events []*models.EmergencyEvent, log *logrus.Logger) (int, error) {
	for i, event := range events {
		if err := w.Upsert(ctx, event); err != nil {
			return i, fmt.Errorf("upsert %s: %w", event.ID, err)
		}
		log.WithFields(logrus.Fields{
			"event_id": event.ID,
			"urgency":  event.UrgencyLevel,
			"status":   event.Status,
		}).Debug("Emergency event seeded")
	}
	return len(events), nil
}
