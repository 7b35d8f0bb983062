package get_painter_bookings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/paintly/booking-service/internal/api/handlers"
	"github.com/paintly/booking-service/internal/api/middleware"
	"github.com/paintly/booking-service/internal/service/bookings"
)

const (
	msgInvalidPainterID = "некорректный ID маляра"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/painters/{painterId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	painterID := mux.Vars(r)["painterId"]
	if _, err := uuid.Parse(painterID); err != nil {
		h.logger.Warn("GET /painters/{id}/bookings - Invalid painter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPainterID)
		return
	}

	result, err := h.service.GetPainterBookings(r.Context(), painterID, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /painters/{id}/bookings - Access denied: painter_id=%s, user_id=%s",
				painterID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /painters/{id}/bookings - Failed to list bookings: painter_id=%s, error=%v",
				painterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
