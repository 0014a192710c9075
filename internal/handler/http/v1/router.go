package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	admin := APIKeyAuthMiddleware(h.cfg, h.logger)

	emergencies := api.Group("/emergencies")
	{
		// Публичные маршруты донора
		emergencies.GET("/active", h.listActiveEvents)
		emergencies.POST("/:id/eligibility", h.checkEventEligibility)
		emergencies.POST("/:id/responses", h.submitResponse)

		// Управление событиями (только с API-ключом)
		emergencies.POST("", admin, h.createEvent)
		emergencies.GET("", admin, h.listEvents)
		emergencies.GET("/:id", admin, h.getEvent)
		emergencies.DELETE("/:id", admin, h.closeEvent)
		emergencies.GET("/:id/stats", admin, h.getEventStats)
	}

	api.POST("/eligibility", h.checkEligibility)
	api.GET("/users/:user_id/responses", h.listUserResponses)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
