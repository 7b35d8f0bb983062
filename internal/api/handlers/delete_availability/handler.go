package delete_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/paintly/booking-service/internal/api/handlers"
	"github.com/paintly/booking-service/internal/api/middleware"
	"github.com/paintly/booking-service/internal/service/availability"
)

const (
	msgInvalidAvailabilityID = "некорректный ID слота"
	msgNotFound              = "слот не найден"
	msgForbidden             = "доступ запрещен"
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

// Handle DELETE /api/v1/availability/{availabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	availabilityID := mux.Vars(r)["availabilityId"]
	if _, err := uuid.Parse(availabilityID); err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid availability ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAvailabilityID)
		return
	}

	err := h.service.Delete(r.Context(), availabilityID, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAvailabilityNotFound):
			h.logger.Warn("DELETE /availability/{id} - Not found: availability_id=%s", availabilityID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /availability/{id} - Access denied: availability_id=%s, user_id=%s",
				availabilityID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to delete: availability_id=%s, error=%v",
				availabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Availability deleted: id=%s, user_id=%s",
		availabilityID, identity.UserID)
	w.WriteHeader(http.StatusNoContent)
}
