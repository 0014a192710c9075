package models

import (
	"time"
)

type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"

	// BloodGroupAny - требование события, под которое подходит любая группа крови
	BloodGroupAny BloodGroup = "ANY"
)

// IsWildcard сообщает, принимает ли требование любую группу крови (пустое значение тоже считается "любой")
func (g BloodGroup) IsWildcard() bool {
	return g == "" || g == BloodGroupAny
}

// Valid проверяет, что группа известна; ANY допустима только как требование события
func (g BloodGroup) Valid() bool {
	switch g {
	case BloodGroupAPos, BloodGroupANeg, BloodGroupBPos, BloodGroupBNeg,
		BloodGroupABPos, BloodGroupABNeg, BloodGroupOPos, BloodGroupONeg, BloodGroupAny:
		return true
	}
	return false
}

type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "CRITICAL"
	UrgencyHigh     UrgencyLevel = "HIGH"
	UrgencyModerate UrgencyLevel = "MODERATE"
)

// unknownUrgencyRank ставит неизвестные уровни после всех известных
const unknownUrgencyRank = 3

// Rank возвращает порядок сортировки: чем меньше, тем срочнее
func (u UrgencyLevel) Rank() int {
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyHigh:
		return 1
	case UrgencyModerate:
		return 2
	}
	return unknownUrgencyRank
}

func (u UrgencyLevel) Valid() bool {
	return u.Rank() != unknownUrgencyRank
}

type EventStatus string

const (
	EventStatusActive EventStatus = "ACTIVE"
	EventStatusClosed EventStatus = "CLOSED"
)

// Location - координаты в градусах
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// EmergencyEvent - срочный запрос больницы на донорскую кровь
type EmergencyEvent struct {
	ID                 string       `json:"id"`
	HospitalName       string       `json:"hospital_name"`
	Description        string       `json:"description,omitempty"`
	ContactPhone       string       `json:"contact_phone,omitempty"`
	Location           Location     `json:"location"`
	BloodGroupRequired BloodGroup   `json:"blood_group_required"`
	UnitsRequired      int          `json:"units_required"`
	UrgencyLevel       UrgencyLevel `json:"urgency_level"`
	Status             EventStatus  `json:"status"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
	EstimatedEndTime   time.Time    `json:"estimated_end_time"`
}

// IsMatchable - событие участвует в подборе, только если оно активно и его окно ещё не закрылось
func (e *EmergencyEvent) IsMatchable(now time.Time) bool {
	return e.Status == EventStatusActive && now.Before(e.EstimatedEndTime)
}

// AnnotatedEvent - событие с расстоянием до пользователя и оставшимся временем
type AnnotatedEvent struct {
	EmergencyEvent
	Distance       *float64 `json:"distance"`
	HoursRemaining float64  `json:"hours_remaining"`
	IsExpired      bool     `json:"is_expired"`
}
