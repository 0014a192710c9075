package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/blood_mobilization_system/internal/config"
	"github.com/shenikar/blood_mobilization_system/internal/models"
	"github.com/shenikar/blood_mobilization_system/internal/service"
	"github.com/shenikar/blood_mobilization_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var adminHeaders = map[string]string{"X-API-Key": "test-api-key"}

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockEmergencyService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockEmergencyService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys: []string{"test-api-key"},
	}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func sampleEvent() *models.EmergencyEvent {
	now := time.Now().UTC()
	return &models.EmergencyEvent{
		ID:                 "EMG-1",
		HospitalName:       "City Hospital",
		Location:           models.Location{Latitude: 28.6139, Longitude: 77.2090},
		BloodGroupRequired: models.BloodGroupONeg,
		UnitsRequired:      3,
		UrgencyLevel:       models.UrgencyCritical,
		Status:             models.EventStatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
		EstimatedEndTime:   now.Add(4 * time.Hour),
	}
}

func TestCreateEvent_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateEmergencyRequest{
		HospitalName:       "City Hospital",
		Latitude:           28.6139,
		Longitude:          77.2090,
		BloodGroupRequired: "O-",
		UnitsRequired:      3,
		UrgencyLevel:       "CRITICAL",
		EstimatedEndTime:   time.Now().Add(4 * time.Hour),
	}

	mockService.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *models.EmergencyEvent) error {
			assert.Equal(t, models.BloodGroupONeg, event.BloodGroupRequired)
			assert.Equal(t, models.UrgencyCritical, event.UrgencyLevel)
			event.ID = "EMG-1"
			event.Status = models.EventStatusActive
			return nil
		}).Times(1)

	w := makeRequest(router, "POST", "/api/v1/emergencies", jsonBody(t, reqBody), adminHeaders)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp EmergencyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "EMG-1", resp.ID)
	assert.Equal(t, "ACTIVE", resp.Status)
	assert.Equal(t, reqBody.HospitalName, resp.HospitalName)
}

func TestCreateEvent_InvalidJSON(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().CreateEvent(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/emergencies", bytes.NewBufferString(`{"hospital_name": "x"`), adminHeaders)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateEvent_ValidationError(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(r *CreateEmergencyRequest)
		expected string
	}{
		{"missing hospital", func(r *CreateEmergencyRequest) { r.HospitalName = "" }, "'HospitalName' failed on the 'required' tag"},
		{"bad urgency", func(r *CreateEmergencyRequest) { r.UrgencyLevel = "LOW" }, "'UrgencyLevel' failed on the 'oneof' tag"},
		{"bad blood group", func(r *CreateEmergencyRequest) { r.BloodGroupRequired = "C+" }, "'BloodGroupRequired' failed on the 'oneof' tag"},
		{"zero units", func(r *CreateEmergencyRequest) { r.UnitsRequired = 0 }, "'UnitsRequired' failed on the 'required' tag"},
		{"latitude out of range", func(r *CreateEmergencyRequest) { r.Latitude = 91 }, "'Latitude' failed on the 'latitude' tag"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, mockService, router := newTestHandler(t)
			reqBody := CreateEmergencyRequest{
				HospitalName:     "City Hospital",
				UnitsRequired:    2,
				UrgencyLevel:     "HIGH",
				EstimatedEndTime: time.Now().Add(time.Hour),
			}
			tc.mutate(&reqBody)

			mockService.EXPECT().CreateEvent(gomock.Any(), gomock.Any()).Times(0)

			w := makeRequest(router, "POST", "/api/v1/emergencies", jsonBody(t, reqBody), adminHeaders)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tc.expected)
		})
	}
}

func TestCreateEvent_InvalidEvent(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateEmergencyRequest{
		HospitalName:     "City Hospital",
		UnitsRequired:    2,
		UrgencyLevel:     "HIGH",
		EstimatedEndTime: time.Now().Add(-time.Hour),
	}

	mockService.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: estimated end time must be in the future", service.ErrInvalidEvent)).Times(1)

	w := makeRequest(router, "POST", "/api/v1/emergencies", jsonBody(t, reqBody), adminHeaders)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "estimated end time must be in the future")
}

func TestCreateEvent_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateEmergencyRequest{
		HospitalName:     "City Hospital",
		UnitsRequired:    2,
		UrgencyLevel:     "HIGH",
		EstimatedEndTime: time.Now().Add(time.Hour),
	}

	mockService.EXPECT().CreateEvent(gomock.Any(), gomock.Any()).Return(errors.New("db down")).Times(1)

	w := makeRequest(router, "POST", "/api/v1/emergencies", jsonBody(t, reqBody), adminHeaders)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestAdminRoutes_RequireAPIKey(t *testing.T) {
	testCases := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{"missing key", nil, "API key required"},
		{"wrong key", map[string]string{"X-API-Key": "nope"}, "Invalid API key"},
		{"wrong bearer", map[string]string{"Authorization": "Bearer nope"}, "Invalid API key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, mockService, router := newTestHandler(t)
			mockService.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			w := makeRequest(router, "GET", "/api/v1/emergencies", nil, tc.headers)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.expected)
		})
	}
}

func TestListEvents_BearerToken(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	event := sampleEvent()

	mockService.EXPECT().ListEvents(gomock.Any(), 2, 5).Return([]*models.EmergencyEvent{event}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies?page=2&pageSize=5", nil, map[string]string{"Authorization": "Bearer test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []EmergencyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, event.ID, resp[0].ID)
}

func TestGetEvent(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		_, mockService, router := newTestHandler(t)
		event := sampleEvent()
		mockService.EXPECT().GetEvent(gomock.Any(), "EMG-1").Return(event, nil).Times(1)

		w := makeRequest(router, "GET", "/api/v1/emergencies/EMG-1", nil, adminHeaders)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp EmergencyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "O-", resp.BloodGroupRequired)
	})

	t.Run("not found", func(t *testing.T) {
		_, mockService, router := newTestHandler(t)
		mockService.EXPECT().GetEvent(gomock.Any(), "EMG-404").
			Return(nil, fmt.Errorf("service: %w", models.ErrEventNotFound)).Times(1)

		w := makeRequest(router, "GET", "/api/v1/emergencies/EMG-404", nil, adminHeaders)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "emergency event not found")
	})
}

func TestCloseEvent(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().CloseEvent(gomock.Any(), "EMG-1").Return(nil).Times(1)

	w := makeRequest(router, "DELETE", "/api/v1/emergencies/EMG-1", nil, adminHeaders)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetEventStats(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	stats := &models.EventResponseStats{
		EventID:       "EMG-1",
		UnitsRequired: 3,
		Counts: map[models.ResponseStatus]int{
			models.ResponseResponded:    2,
			models.ResponseNotAvailable: 1,
		},
		Total: 3,
	}
	mockService.EXPECT().GetEventStats(gomock.Any(), "EMG-1").Return(stats, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies/EMG-1/stats", nil, adminHeaders)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Counts["RESPONDED"])
	assert.Equal(t, 1, resp.Counts["NOT_AVAILABLE"])
	assert.Equal(t, 3, resp.Total)
}

func TestListActiveEvents_WithLocation(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	distance := 12.3
	annotated := []models.AnnotatedEvent{
		{EmergencyEvent: *sampleEvent(), Distance: &distance, HoursRemaining: 4},
	}

	mockService.EXPECT().
		ListActiveEvents(gomock.Any(), &models.Location{Latitude: 19.076, Longitude: 72.8777}).
		Return(annotated, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies/active?lat=19.076&lng=72.8777", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []ActiveEmergencyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	require.NotNil(t, resp[0].DistanceKm)
	assert.Equal(t, 12.3, *resp[0].DistanceKm)
	assert.Equal(t, 4.0, resp[0].HoursRemaining)
	assert.Contains(t, resp[0].EndsIn, "from now")
}

func TestListActiveEvents_WithoutLocation(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ListActiveEvents(gomock.Any(), gomock.Nil()).
		Return([]models.AnnotatedEvent{}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies/active", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListActiveEvents_InvalidCoordinates(t *testing.T) {
	testCases := []struct {
		name  string
		query string
	}{
		{"only lat", "?lat=10"},
		{"not a number", "?lat=abc&lng=10"},
		{"latitude out of range", "?lat=95&lng=10"},
		{"longitude out of range", "?lat=10&lng=-181"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, mockService, router := newTestHandler(t)
			mockService.EXPECT().ListActiveEvents(gomock.Any(), gomock.Any()).Times(0)

			w := makeRequest(router, "GET", "/api/v1/emergencies/active"+tc.query, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCheckEventEligibility(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	lastDonation := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	verdict := &models.EligibilityVerdict{
		BloodGroupMatch: true,
		DonationGapMet:  true,
		Eligible:        true,
		Reasons:         []string{"You are eligible to donate!"},
	}

	mockService.EXPECT().
		CheckEventEligibility(gomock.Any(), "EMG-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, profile models.UserProfile) (*models.EligibilityVerdict, error) {
			assert.Equal(t, models.BloodGroupONeg, profile.BloodGroup)
			require.NotNil(t, profile.LastDonationDate)
			assert.True(t, lastDonation.Equal(*profile.LastDonationDate))
			return verdict, nil
		}).Times(1)

	body := EligibilityRequest{BloodGroup: "O-", LastDonationDate: &lastDonation}
	w := makeRequest(router, "POST", "/api/v1/emergencies/EMG-1/eligibility", jsonBody(t, body))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp EligibilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Eligible)
	assert.Equal(t, []string{"You are eligible to donate!"}, resp.Reasons)
}

func TestCheckEventEligibility_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().
		CheckEventEligibility(gomock.Any(), "EMG-404", gomock.Any()).
		Return(nil, models.ErrEventNotFound).Times(1)

	w := makeRequest(router, "POST", "/api/v1/emergencies/EMG-404/eligibility", bytes.NewBufferString(`{}`))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckEligibility(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	verdict := &models.EligibilityVerdict{
		Reasons: []string{"Blood group mismatch. Required: A+"},
	}

	mockService.EXPECT().
		CheckEligibility(gomock.Any(), models.BloodGroupAPos, models.UserProfile{BloodGroup: models.BloodGroupBPos}).
		Return(verdict, nil).Times(1)

	body := BloodGroupEligibilityRequest{
		RequiredBloodGroup: "A+",
		EligibilityRequest: EligibilityRequest{BloodGroup: "B+"},
	}
	w := makeRequest(router, "POST", "/api/v1/eligibility", jsonBody(t, body))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp EligibilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Eligible)
	assert.Equal(t, verdict.Reasons, resp.Reasons)
}

func TestCheckEligibility_RejectsAnyAsDonorGroup(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().CheckEligibility(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/eligibility", bytes.NewBufferString(`{"blood_group":"ANY"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'BloodGroup' failed on the 'oneof' tag")
}

func TestSubmitResponse(t *testing.T) {
	respondedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	stored := &models.UserResponse{
		ID:             "resp-1",
		EventID:        "EMG-1",
		UserID:         "user-1",
		ResponseStatus: models.ResponseResponded,
		ResponseTime:   respondedAt,
	}

	testCases := []struct {
		name           string
		body           string
		setupMock      func(m *mocks.MockEmergencyService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			body: `{"user_id":"user-1","response_status":"RESPONDED"}`,
			setupMock: func(m *mocks.MockEmergencyService) {
				m.EXPECT().SubmitResponse(gomock.Any(), "user-1", "EMG-1", models.ResponseResponded).Return(stored, nil).Times(1)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"derived_status":"PENDING_CONFIRMATION"`,
		},
		{
			name: "duplicate",
			body: `{"user_id":"user-1","response_status":"RESPONDED"}`,
			setupMock: func(m *mocks.MockEmergencyService) {
				m.EXPECT().SubmitResponse(gomock.Any(), "user-1", "EMG-1", models.ResponseResponded).
					Return(nil, fmt.Errorf("service: %w", models.ErrDuplicateResponse)).Times(1)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "you have already responded to this emergency",
		},
		{
			name: "event not found",
			body: `{"user_id":"user-1","response_status":"NOT_AVAILABLE"}`,
			setupMock: func(m *mocks.MockEmergencyService) {
				m.EXPECT().SubmitResponse(gomock.Any(), "user-1", "EMG-1", models.ResponseNotAvailable).
					Return(nil, models.ErrEventNotFound).Times(1)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "emergency event not found",
		},
		{
			name: "invalid status",
			body: `{"user_id":"user-1","response_status":"MAYBE"}`,
			setupMock: func(m *mocks.MockEmergencyService) {
				m.EXPECT().SubmitResponse(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "'ResponseStatus' failed on the 'oneof' tag",
		},
		{
			name: "missing user",
			body: `{"response_status":"RESPONDED"}`,
			setupMock: func(m *mocks.MockEmergencyService) {
				m.EXPECT().SubmitResponse(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "'UserID' failed on the 'required' tag",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, mockService, router := newTestHandler(t)
			tc.setupMock(mockService)

			w := makeRequest(router, "POST", "/api/v1/emergencies/EMG-1/responses", bytes.NewBufferString(tc.body))

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.expectedBody)
		})
	}
}

func TestListUserResponses(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	responses := []*models.UserResponse{
		{ID: "r1", EventID: "EMG-1", UserID: "user-1", ResponseStatus: models.ResponseResponded},
		{ID: "r2", EventID: "EMG-2", UserID: "user-1", ResponseStatus: models.ResponseRemindLater},
	}
	mockService.EXPECT().ListUserResponses(gomock.Any(), "user-1").Return(responses, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/users/user-1/responses", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []UserResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "PENDING_CONFIRMATION", resp[0].DerivedStatus)
	assert.Equal(t, "RECORDED", resp[1].DerivedStatus)
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
