package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/blood_mobilization_system/internal/models"
)

type ResponseRepository struct {
	db *pgxpool.Pool
}

func NewResponseRepository(db *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// Create сохраняет ответ донора. Уникальность пары (user_id, event_id) держит
// ограничение в бд, поэтому два параллельных запроса не пройдут оба.
func (r *ResponseRepository) Create(ctx context.Context, response *models.UserResponse) error {
	query := `
		INSERT INTO user_responses (id, event_id, user_id, response_status, response_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, event_id) DO NOTHING;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		response.ID,
		response.EventID,
		response.UserID,
		string(response.ResponseStatus),
		response.ResponseTime,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("%w: %s", models.ErrEventNotFound, response.EventID)
		}
		return fmt.Errorf("failed to save user response: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: event %s", models.ErrDuplicateResponse, response.EventID)
	}
	return nil
}

// ListByUser возвращает ответы пользователя, новые первыми
func (r *ResponseRepository) ListByUser(ctx context.Context, userID string) ([]*models.UserResponse, error) {
	query := `
		SELECT id, event_id, user_id, response_status, response_time
		FROM user_responses
		WHERE user_id = $1
		ORDER BY response_time DESC;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user responses: %w", err)
	}
	defer rows.Close()

	responses := make([]*models.UserResponse, 0)
	for rows.Next() {
		response := &models.UserResponse{}
		if err := rows.Scan(
			&response.ID,
			&response.EventID,
			&response.UserID,
			&response.ResponseStatus,
			&response.ResponseTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user response row: %w", err)
		}
		responses = append(responses, response)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in ListByUser: %w", err)
	}
	return responses, nil
}

// CountByEvent возвращает количество ответов на событие по статусам
func (r *ResponseRepository) CountByEvent(ctx context.Context, eventID string) (map[models.ResponseStatus]int, error) {
	query := `
		SELECT response_status, COUNT(*)
		FROM user_responses
		WHERE event_id = $1
		GROUP BY response_status;
	`
	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to count event responses: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ResponseStatus]int)
	for rows.Next() {
		var (
			status models.ResponseStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan response count row: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in CountByEvent: %w", err)
	}
	return counts, nil
}
