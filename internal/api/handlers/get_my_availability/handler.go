package get_my_availability

import (
	"errors"
	"net/http"

	"github.com/paintly/booking-service/internal/api/handlers"
	"github.com/paintly/booking-service/internal/api/middleware"
	"github.com/paintly/booking-service/internal/service/availability"
)

const (
	msgUserNotFound = "пользователь не найден"
	msgNotPainter   = "управлять доступностью может только маляр"
)

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

// Handle GET /api/v1/availability/my
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	result, err := h.service.GetOwn(r.Context(), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrUserNotFound):
			h.logger.Warn("GET /availability/my - User not found: user_id=%s", identity.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, availability.ErrNotPainter):
			h.logger.Warn("GET /availability/my - Not a painter: user_id=%s", identity.UserID)
			handlers.RespondForbidden(w, msgNotPainter)

		default:
			h.logger.Error("GET /availability/my - Failed to list availability: user_id=%s, error=%v",
				identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
