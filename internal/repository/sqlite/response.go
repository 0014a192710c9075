package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shenikar/blood_mobilization_system/internal/models"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type ResponseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// Create сохраняет ответ; UNIQUE (user_id, event_id) отсекает повтор атомарно
func (r *ResponseRepository) Create(ctx context.Context, response *models.UserResponse) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO user_responses (id, event_id, user_id, response_status, response_time)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, event_id) DO NOTHING`,
		response.ID,
		response.EventID,
		response.UserID,
		string(response.ResponseStatus),
		response.ResponseTime.UnixNano(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", models.ErrEventNotFound, response.EventID)
		}
		return fmt.Errorf("failed to save user response: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save user response: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: event %s", models.ErrDuplicateResponse, response.EventID)
	}
	return nil
}

func (r *ResponseRepository) ListByUser(ctx context.Context, userID string) ([]*models.UserResponse, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_id, user_id, response_status, response_time
		FROM user_responses
		WHERE user_id = ?
		ORDER BY response_time DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user responses: %w", err)
	}
	defer rows.Close()

	responses := make([]*models.UserResponse, 0)
	for rows.Next() {
		var (
			response models.UserResponse
			at       int64
		)
		if err := rows.Scan(&response.ID, &response.EventID, &response.UserID, &response.ResponseStatus, &at); err != nil {
			return nil, fmt.Errorf("failed to scan user response row: %w", err)
		}
		response.ResponseTime = fromUnixNano(at)
		responses = append(responses, &response)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in ListByUser: %w", err)
	}
	return responses, nil
}

func (r *ResponseRepository) CountByEvent(ctx context.Context, eventID string) (map[models.ResponseStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT response_status, COUNT(*)
		FROM user_responses
		WHERE event_id = ?
		GROUP BY response_status`, eventID)
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

func isForeignKeyViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
