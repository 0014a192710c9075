package models

import (
	"time"
)

type ResponseStatus string

const (
	ResponseResponded    ResponseStatus = "RESPONDED"
	ResponseNotAvailable ResponseStatus = "NOT_AVAILABLE"
	ResponseRemindLater  ResponseStatus = "REMIND_LATER"
)

// Valid проверяет, что статус входит в закрытый набор значений
func (s ResponseStatus) Valid() bool {
	switch s {
	case ResponseResponded, ResponseNotAvailable, ResponseRemindLater:
		return true
	}
	return false
}

type DerivedStatus string

const (
	DerivedPendingConfirmation DerivedStatus = "PENDING_CONFIRMATION"
	DerivedRecorded            DerivedStatus = "RECORDED"
)

// UserResponse представляет ответ пользователя на срочный запрос.
// Статус ответа устанавливается один раз и больше не меняется.
type UserResponse struct {
	ID             string         `json:"id"`
	EventID        string         `json:"event_id"`
	UserID         string         `json:"user_id"`
	ResponseStatus ResponseStatus `json:"response_status"`
	ResponseTime   time.Time      `json:"response_time"`
}

// DerivedStatus вычисляет отображаемый статус из ResponseStatus
func (r *UserResponse) DerivedStatus() DerivedStatus {
	if r.ResponseStatus == ResponseResponded {
		return DerivedPendingConfirmation
	}
	return DerivedRecorded
}

// EventResponseStats - сводка ответов по одному событию
type EventResponseStats struct {
	EventID       string                 `json:"event_id"`
	UnitsRequired int                    `json:"units_required"`
	Counts        map[ResponseStatus]int `json:"counts"`
	Total         int                    `json:"total"`
}
