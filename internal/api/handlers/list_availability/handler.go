package list_availability

import (
	"net/http"

	"github.com/paintly/booking-service/internal/api/handlers"
)

const msgInvalidFilter = "некорректные параметры фильтра"

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /availability - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetByFilter(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /availability - Failed to list availability: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
