package v1

import (
	"github.com/dustin/go-humanize"
	"github.com/shenikar/blood_mobilization_system/internal/models"
)

// DTOToEmergencyModel преобразует DTO создания в доменную модель
func DTOToEmergencyModel(dto CreateEmergencyRequest) *models.EmergencyEvent {
	return &models.EmergencyEvent{
		ID:                 dto.ID,
		HospitalName:       dto.HospitalName,
		Description:        dto.Description,
		ContactPhone:       dto.ContactPhone,
		Location:           models.Location{Latitude: dto.Latitude, Longitude: dto.Longitude},
		BloodGroupRequired: models.BloodGroup(dto.BloodGroupRequired),
		UnitsRequired:      dto.UnitsRequired,
		UrgencyLevel:       models.UrgencyLevel(dto.UrgencyLevel),
		EstimatedEndTime:   dto.EstimatedEndTime,
	}
}

// ModelToEmergencyResponse преобразует доменную модель в DTO для ответа
func ModelToEmergencyResponse(model *models.EmergencyEvent) *EmergencyResponse {
	return &EmergencyResponse{
		ID:                 model.ID,
		HospitalName:       model.HospitalName,
		Description:        model.Description,
		ContactPhone:       model.ContactPhone,
		Latitude:           model.Location.Latitude,
		Longitude:          model.Location.Longitude,
		BloodGroupRequired: string(model.BloodGroupRequired),
		UnitsRequired:      model.UnitsRequired,
		UrgencyLevel:       string(model.UrgencyLevel),
		Status:             string(model.Status),
		EstimatedEndTime:   model.EstimatedEndTime,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

// ModelsToEmergencyResponses преобразует слайс моделей в слайс DTO
func ModelsToEmergencyResponses(events []*models.EmergencyEvent) []*EmergencyResponse {
	responses := make([]*EmergencyResponse, len(events))
	for i, event := range events {
		responses[i] = ModelToEmergencyResponse(event)
	}
	return responses
}

// AnnotatedToActiveResponses сохраняет порядок ранжирования движка
func AnnotatedToActiveResponses(events []models.AnnotatedEvent) []*ActiveEmergencyResponse {
	responses := make([]*ActiveEmergencyResponse, len(events))
	for i := range events {
		event := &events[i]
		responses[i] = &ActiveEmergencyResponse{
			EmergencyResponse: *ModelToEmergencyResponse(&event.EmergencyEvent),
			DistanceKm:        event.Distance,
			HoursRemaining:    event.HoursRemaining,
			EndsIn:            humanize.Time(event.EstimatedEndTime),
		}
	}
	return responses
}

func ModelToEligibilityResponse(verdict *models.EligibilityVerdict) *EligibilityResponse {
	return &EligibilityResponse{
		BloodGroupMatch: verdict.BloodGroupMatch,
		DonationGapMet:  verdict.DonationGapMet,
		Eligible:        verdict.Eligible,
		Reasons:         verdict.Reasons,
	}
}

func DTOToUserProfile(dto EligibilityRequest) models.UserProfile {
	return models.UserProfile{
		BloodGroup:       models.BloodGroup(dto.BloodGroup),
		LastDonationDate: dto.LastDonationDate,
	}
}

func ModelToUserResponseDTO(model *models.UserResponse) *UserResponseDTO {
	return &UserResponseDTO{
		ID:             model.ID,
		EventID:        model.EventID,
		UserID:         model.UserID,
		ResponseStatus: string(model.ResponseStatus),
		DerivedStatus:  string(model.DerivedStatus()),
		ResponseTime:   model.ResponseTime,
	}
}

func ModelsToUserResponseDTOs(responses []*models.UserResponse) []*UserResponseDTO {
	dtos := make([]*UserResponseDTO, len(responses))
	for i, response := range responses {
		dtos[i] = ModelToUserResponseDTO(response)
	}
	return dtos
}

func ModelToStatsResponse(stats *models.EventResponseStats) *StatsResponse {
	counts := make(map[string]int, len(stats.Counts))
	for status, n := range stats.Counts {
		counts[string(status)] = n
	}
	return &StatsResponse{
		EventID:       stats.EventID,
		UnitsRequired: stats.UnitsRequired,
		Counts:        counts,
		Total:         stats.Total,
	}
}
