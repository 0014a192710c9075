package v1

import (
	"time"
)

// CreateEmergencyRequest DTO для создания срочного запроса
// @Description DTO для создания срочного запроса
type CreateEmergencyRequest struct {
	ID                 string    `json:"id,omitempty" validate:"omitempty,max=64"`
	HospitalName       string    `json:"hospital_name" validate:"required,min=2,max=255"`
	Description        string    `json:"description,omitempty"`
	ContactPhone       string    `json:"contact_phone,omitempty" validate:"omitempty,max=32"`
	Latitude           float64   `json:"latitude" validate:"latitude"`
	Longitude          float64   `json:"longitude" validate:"longitude"`
	BloodGroupRequired string    `json:"blood_group_required,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O- ANY"`
	UnitsRequired      int       `json:"units_required" validate:"required,gt=0"`
	UrgencyLevel       string    `json:"urgency_level" validate:"required,oneof=CRITICAL HIGH MODERATE"`
	EstimatedEndTime   time.Time `json:"estimated_end_time"`
}

// EmergencyResponse DTO для ответа с информацией о срочном запросе
// @Description DTO для ответа с информацией о срочном запросе
type EmergencyResponse struct {
	ID                 string    `json:"id"`
	HospitalName       string    `json:"hospital_name"`
	Description        string    `json:"description,omitempty"`
	ContactPhone       string    `json:"contact_phone,omitempty"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	BloodGroupRequired string    `json:"blood_group_required"`
	UnitsRequired      int       `json:"units_required"`
	UrgencyLevel       string    `json:"urgency_level"`
	Status             string    `json:"status"`
	EstimatedEndTime   time.Time `json:"estimated_end_time"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ActiveEmergencyResponse DTO активного события с расстоянием и оставшимся временем
// @Description DTO активного события с расстоянием и оставшимся временем
type ActiveEmergencyResponse struct {
	EmergencyResponse
	DistanceKm     *float64 `json:"distance_km"`
	HoursRemaining float64  `json:"hours_remaining"`
	EndsIn         string   `json:"ends_in"`
}

// ActiveEventsQuery параметры запроса активных событий; координаты передаются парой
type ActiveEventsQuery struct {
	Lat *float64 `form:"lat" validate:"omitempty,latitude"`
	Lng *float64 `form:"lng" validate:"omitempty,longitude"`
}

// EligibilityRequest DTO профиля донора для проверки пригодности
// @Description DTO профиля донора для проверки пригодности
type EligibilityRequest struct {
	BloodGroup       string     `json:"blood_group,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
}

// BloodGroupEligibilityRequest DTO проверки пригодности против явно заданной группы крови
// @Description DTO проверки пригодности против явно заданной группы крови
type BloodGroupEligibilityRequest struct {
	RequiredBloodGroup string `json:"required_blood_group,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O- ANY"`
	EligibilityRequest
}

// EligibilityResponse DTO вердикта о пригодности
// @Description DTO вердикта о пригодности
type EligibilityResponse struct {
	BloodGroupMatch bool     `json:"blood_group_match"`
	DonationGapMet  bool     `json:"donation_gap_met"`
	Eligible        bool     `json:"eligible"`
	Reasons         []string `json:"reasons"`
}

// SubmitResponseRequest DTO ответа донора на событие
// @Description DTO ответа донора на событие
type SubmitResponseRequest struct {
	UserID         string `json:"user_id" validate:"required,max=128"`
	ResponseStatus string `json:"response_status" validate:"required,oneof=RESPONDED NOT_AVAILABLE REMIND_LATER"`
}

// UserResponseDTO DTO сохраненного ответа донора
// @Description DTO сохраненного ответа донора
type UserResponseDTO struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	UserID         string    `json:"user_id"`
	ResponseStatus string    `json:"response_status"`
	DerivedStatus  string    `json:"derived_status"`
	ResponseTime   time.Time `json:"response_time"`
}

// StatsResponse DTO для ответа со статистикой по событию
// @Description DTO для ответа со статистикой по событию
type StatsResponse struct {
	EventID       string         `json:"event_id"`
	UnitsRequired int            `json:"units_required"`
	Counts        map[string]int `json:"counts"`
	Total         int            `json:"total"`
}
