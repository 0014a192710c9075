package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shenikar/blood_mobilization_system/internal/models"
)

const eventColumns = `id, hospital_name, description, contact_phone, latitude, longitude,
	blood_group_required, units_required, urgency_level, status,
	estimated_end_time, created_at, updated_at`

// EventRepository - хранилище срочных запросов в SQLite. Время хранится в наносекундах Unix.
type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.EmergencyEvent, error) {
	var (
		event                       models.EmergencyEvent
		endAt, createdAt, updatedAt int64
	)
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
		&endAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	event.EstimatedEndTime = fromUnixNano(endAt)
	event.CreatedAt = fromUnixNano(createdAt)
	event.UpdatedAt = fromUnixNano(updatedAt)
	return &event, nil
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
		event.EstimatedEndTime.UnixNano(),
		event.CreatedAt.UnixNano(),
		event.UpdatedAt.UnixNano(),
	}
}

func (r *EventRepository) Create(ctx context.Context, event *models.EmergencyEvent) error {
	query := `INSERT INTO emergency_events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, eventArgs(event)...); err != nil {
		return fmt.Errorf("failed to create emergency event: %w", err)
	}
	return nil
}

// Upsert создает событие или перезаписывает существующее с тем же id
func (r *EventRepository) Upsert(ctx context.Context, event *models.EmergencyEvent) error {
	query := `INSERT INTO emergency_events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			hospital_name = excluded.hospital_name,
			description = excluded.description,
			contact_phone = excluded.contact_phone,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			blood_group_required = excluded.blood_group_required,
			units_required = excluded.units_required,
			urgency_level = excluded.urgency_level,
			status = excluded.status,
			estimated_end_time = excluded.estimated_end_time,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, eventArgs(event)...); err != nil {
		return fmt.Errorf("failed to upsert emergency event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.EmergencyEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM emergency_events WHERE id = ?`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", models.ErrEventNotFound, id)
		}
		return nil, fmt.Errorf("failed to get emergency event by id: %w", err)
	}
	return event, nil
}

func (r *EventRepository) List(ctx context.Context, page, pageSize int) ([]*models.EmergencyEvent, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + eventColumns + ` FROM emergency_events
		ORDER BY created_at DESC LIMIT ? OFFSET ?`
	return r.query(ctx, "List", query, pageSize, offset)
}

func (r *EventRepository) ListActive(ctx context.Context) ([]*models.EmergencyEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM emergency_events WHERE status = ?`
	return r.query(ctx, "ListActive", query, string(models.EventStatusActive))
}

func (r *EventRepository) query(ctx context.Context, op, query string, args ...any) ([]*models.EmergencyEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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

func (r *EventRepository) Close(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE emergency_events SET status = ?, updated_at = ? WHERE id = ?`,
		string(models.EventStatusClosed), time.Now().UTC().UnixNano(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to close emergency event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to close emergency event: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", models.ErrEventNotFound, id)
	}
	return nil
}

func fromUnixNano(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
