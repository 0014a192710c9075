package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/blood_mobilization_system/internal/config"
	"github.com/shenikar/blood_mobilization_system/internal/models"
	"github.com/shenikar/blood_mobilization_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	emergencyService service.EmergencyService
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(emergencyService service.EmergencyService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		emergencyService: emergencyService,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// writeError переводит доменные ошибки в HTTP-статусы
func (h *Handler) writeError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, models.ErrEventNotFound):
		log.WithError(err).Warn("Emergency event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "emergency event not found"})
	case errors.Is(err, models.ErrDuplicateResponse):
		log.WithError(err).Warn("Duplicate response rejected")
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrDuplicateResponse.Error()})
	case errors.Is(err, models.ErrInvalidResponseStatus), errors.Is(err, service.ErrInvalidEvent):
		log.WithError(err).Warn("Request rejected by service")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindJSON читает и валидирует тело запроса; при ошибке ответ уже записан
func (h *Handler) bindJSON(c *gin.Context, log *logrus.Entry, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary Create a new emergency event
// @Description Register a hospital blood request. The event is always created ACTIVE. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param event body CreateEmergencyRequest true "Emergency creation request"
// @Success 201 {object} EmergencyResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies [post]
func (h *Handler) createEvent(c *gin.Context) {
	var input CreateEmergencyRequest
	log := h.logger.WithField("method", "createEvent")

	if !h.bindJSON(c, log, &input) {
		return
	}

	model := DTOToEmergencyModel(input)
	if err := h.emergencyService.CreateEvent(c.Request.Context(), model); err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToEmergencyResponse(model))
}

// @Summary Get a list of emergency events
// @Description Get a paginated list of all emergency events, including closed ones. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} EmergencyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies [get]
func (h *Handler) listEvents(c *gin.Context) {
	log := h.logger.WithField("method", "listEvents")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	events, err := h.emergencyService.ListEvents(c.Request.Context(), page, pageSize)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToEmergencyResponses(events))
}

// @Summary Get emergency event by ID
// @Description Get a single emergency event by its ID. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Success 200 {object} EmergencyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency event not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id} [get]
func (h *Handler) getEvent(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getEvent").WithField("id", id)

	event, err := h.emergencyService.GetEvent(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEmergencyResponse(event))
}

// @Summary Close an emergency event
// @Description Mark an emergency event as CLOSED. Closed events are no longer matched. Requires API key.
// @Tags Emergencies
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency event not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id} [delete]
func (h *Handler) closeEvent(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "closeEvent").WithField("id", id)

	if err := h.emergencyService.CloseEvent(c.Request.Context(), id); err != nil {
		h.writeError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get response statistics for an emergency event
// @Description Count donor responses per status. Requires API key.
// @Tags Emergencies
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency event not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/stats [get]
func (h *Handler) getEventStats(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getEventStats").WithField("id", id)

	stats, err := h.emergencyService.GetEventStats(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToStatsResponse(stats))
}

// @Summary List active emergencies
// @Description List matchable emergencies ordered by urgency, then by distance from the donor when coordinates are given.
// @Tags Donor
// @Produce json
// @Param lat query number false "Donor latitude"
// @Param lng query number false "Donor longitude"
// @Success 200 {array} ActiveEmergencyResponse
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/active [get]
func (h *Handler) listActiveEvents(c *gin.Context) {
	var query ActiveEventsQuery
	log := h.logger.WithField("method", "listActiveEvents")

	if err := c.ShouldBindQuery(&query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	}
	if (query.Lat == nil) != (query.Lng == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must be provided together"})
		return
	}
	if err := h.validate.Struct(query); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userLoc *models.Location
	if query.Lat != nil {
		userLoc = &models.Location{Latitude: *query.Lat, Longitude: *query.Lng}
	}

	events, err := h.emergencyService.ListActiveEvents(c.Request.Context(), userLoc)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, AnnotatedToActiveResponses(events))
}

// @Summary Check donor eligibility for an emergency
// @Description Check blood group match and the 90-day donation gap against the event's required group.
// @Tags Donor
// @Accept json
// @Produce json
// @Param id path string true "Emergency ID"
// @Param profile body EligibilityRequest true "Donor profile"
// @Success 200 {object} EligibilityResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 404 {object} map[string]string "Emergency event not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/eligibility [post]
func (h *Handler) checkEventEligibility(c *gin.Context) {
	var input EligibilityRequest
	id := c.Param("id")
	log := h.logger.WithField("method", "checkEventEligibility").WithField("id", id)

	if !h.bindJSON(c, log, &input) {
		return
	}

	verdict, err := h.emergencyService.CheckEventEligibility(c.Request.Context(), id, DTOToUserProfile(input))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEligibilityResponse(verdict))
}

// @Summary Check donor eligibility for a blood group
// @Description Check eligibility against an explicit required blood group (ANY or empty matches every donor).
// @Tags Donor
// @Accept json
// @Produce json
// @Param request body BloodGroupEligibilityRequest true "Required group and donor profile"
// @Success 200 {object} EligibilityResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /eligibility [post]
func (h *Handler) checkEligibility(c *gin.Context) {
	var input BloodGroupEligibilityRequest
	log := h.logger.WithField("method", "checkEligibility")

	if !h.bindJSON(c, log, &input) {
		return
	}

	verdict, err := h.emergencyService.CheckEligibility(
		c.Request.Context(),
		models.BloodGroup(input.RequiredBloodGroup),
		DTOToUserProfile(input.EligibilityRequest),
	)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEligibilityResponse(verdict))
}

// @Summary Respond to an emergency
// @Description Record a donor's response. Only one response per donor and event is accepted.
// @Tags Donor
// @Accept json
// @Produce json
// @Param id path string true "Emergency ID"
// @Param response body SubmitResponseRequest true "Donor response"
// @Success 201 {object} UserResponseDTO
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 404 {object} map[string]string "Emergency event not found or no longer active"
// @Failure 409 {object} map[string]string "Donor already responded"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/responses [post]
func (h *Handler) submitResponse(c *gin.Context) {
	var input SubmitResponseRequest
	id := c.Param("id")
	log := h.logger.WithField("method", "submitResponse").WithField("id", id)

	if !h.bindJSON(c, log, &input) {
		return
	}

	response, err := h.emergencyService.SubmitResponse(
		c.Request.Context(),
		input.UserID,
		id,
		models.ResponseStatus(input.ResponseStatus),
	)
	if err != nil {
		h.writeError(c, log.WithField("user_id", input.UserID), err)
		return
	}
	c.JSON(http.StatusCreated, ModelToUserResponseDTO(response))
}

// @Summary List a donor's responses
// @Description List every response the donor has submitted.
// @Tags Donor
// @Produce json
// @Param user_id path string true "Donor ID"
// @Success 200 {array} UserResponseDTO
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/{user_id}/responses [get]
func (h *Handler) listUserResponses(c *gin.Context) {
	userID := c.Param("user_id")
	log := h.logger.WithField("method", "listUserResponses").WithField("user_id", userID)

	responses, err := h.emergencyService.ListUserResponses(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToUserResponseDTOs(responses))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
