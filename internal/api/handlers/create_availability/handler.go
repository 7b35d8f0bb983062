package create_availability

import (
	"errors"
	"net/http"

	"github.com/paintly/booking-service/internal/api/handlers"
	"github.com/paintly/booking-service/internal/api/middleware"
	"github.com/paintly/booking-service/internal/domain"
	"github.com/paintly/booking-service/internal/service/availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeFormat  = "некорректный формат времени, ожидается RFC3339"
	msgInvalidRange       = "начало слота должно быть раньше конца"
	msgStartInPast        = "начало слота должно быть в будущем"
	msgTooShort           = "слот короче минимальной длительности 15 минут"
	msgTooLong            = "слот длиннее максимальной длительности 12 часов"
	msgUserNotFound       = "пользователь не найден"
	msgNotPainter         = "управлять доступностью может только маляр"
	msgOverlapping        = "слот пересекается с существующим слотом"
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

// Handle POST /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var req CreateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /availability - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	result, err := h.service.Create(r.Context(), identity.UserID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, domain.ErrStartTimeInPast):
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, domain.ErrTooShort):
			handlers.RespondBadRequest(w, msgTooShort)

		case errors.Is(err, domain.ErrTooLong):
			handlers.RespondBadRequest(w, msgTooLong)

		case errors.Is(err, availability.ErrUserNotFound):
			h.logger.Warn("POST /availability - User not found: user_id=%s", identity.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, availability.ErrNotPainter):
			h.logger.Warn("POST /availability - Not a painter: user_id=%s", identity.UserID)
			handlers.RespondForbidden(w, msgNotPainter)

		case errors.Is(err, availability.ErrOverlappingAvailability):
			h.logger.Warn("POST /availability - Overlapping slot: user_id=%s", identity.UserID)
			handlers.RespondError(w, http.StatusConflict, msgOverlapping)

		default:
			h.logger.Error("POST /availability - Failed to create availability: user_id=%s, error=%v",
				identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Availability created: id=%s, painter_id=%s", result.ID, identity.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}
