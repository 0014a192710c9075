package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/blood_mobilization_system/internal/models"
)

const eventColumns = `
	id,
	hospital_name,
	description,
	contact_phone,
	latitude,
	longitude,
	blood_group_required,
	units_required,
	urgency_level,
	status,
	estimated_end_time,
	created_at,
	updated_at`

type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// rowScanner - общий интерфейс pgx.Row и pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.EmergencyEvent, error) {
	event := &models.EmergencyEvent{}
	err := row.Scan(
		&event.ID,
		&event.HospitalName,
		&event.Description,
		&event.ContactPhone,
		&event.Location.Latitude,
		&event.Location.Longitude,
		&event.BloodGroupRequired,
		&event.UnitsRequired,
		&event.UrgencyLevel,
		&event.Status,
		&event.EstimatedEndTime,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Create создает новую запись о срочном запросе в бд
func (r *EventRepository) Create(ctx context.Context, event *models.EmergencyEvent) error {
	query := `
		INSERT INTO emergency_events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query, eventArgs(event)...)
	if err != nil {
		return fmt.Errorf("failed to create emergency event: %w", err)
	}
	return nil
}

// Upsert создает событие или перезаписывает существующее с тем же id
func (r *EventRepository) Upsert(ctx context.Context, event *models.EmergencyEvent) error {
	query := `
		INSERT INTO emergency_events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			hospital_name = EXCLUDED.hospital_name,
			description = EXCLUDED.description,
			contact_phone = EXCLUDED.contact_phone,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			blood_group_required = EXCLUDED.blood_group_required,
			units_required = EXCLUDED.units_required,
			urgency_level = EXCLUDED.urgency_level,
			status = EXCLUDED.status,
			estimated_end_time = EXCLUDED.estimated_end_time,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.db.Exec(ctx, query, eventArgs(event)...); err != nil {
		return fmt.Errorf("failed to upsert emergency event: %w", err)
	}
	return nil
}

func eventArgs(event *models.EmergencyEvent) []any {
	return []any{
		event.ID,
		event.HospitalName,
		event.Description,
		event.ContactPhone,
		event.Location.Latitude,
		event.Location.Longitude,
		string(event.BloodGroupRequired),
		event.UnitsRequired,
		string(event.UrgencyLevel),
		string(event.Status),
		event.EstimatedEndTime,
		event.CreatedAt,
		event.UpdatedAt,
	}
}

// GetByID возвращает событие по id
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.EmergencyEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM emergency_events WHERE id = $1;`

	event, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", models.ErrEventNotFound, id)
		}
		return nil, fmt.Errorf("failed to get emergency event by id: %w", err)
	}
	return event, nil
}

// List возвращает список событий с пагинацией, новые первыми
func (r *EventRepository) List(ctx context.Context, page, pageSize int) ([]*models.EmergencyEvent, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := `
		SELECT ` + eventColumns + `
		FROM emergency_events
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	return r.query(ctx, "List", query, pageSize, offset)
}

// ListActive возвращает события в статусе ACTIVE; окно времени проверяет движок
func (r *EventRepository) ListActive(ctx context.Context) ([]*models.EmergencyEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM emergency_events
		WHERE status = $1;
	`
	return r.query(ctx, "ListActive", query, string(models.EventStatusActive))
}

func (r *EventRepository) query(ctx context.Context, op, query string, args ...any) ([]*models.EmergencyEvent, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query emergency events in %s: %w", op, err)
	}
	defer rows.Close()

	events := make([]*models.EmergencyEvent, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan emergency event row in %s: %w", op, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in %s: %w", op, err)
	}
	return events, nil
}

// Close устанавливает статус CLOSED для события
func (r *EventRepository) Close(ctx context.Context, id string) error {
	query := `
		UPDATE emergency_events SET
			status = $1,
			updated_at = NOW()
		WHERE id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, string(models.EventStatusClosed), id)
	if err != nil {
		return fmt.Errorf("failed to close emergency event: %w", err)
	}

	// RowsAffected() == 0 - события с таким id не существует
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", models.ErrEventNotFound, id)
	}
	return nil
}
