package create_booking

import (
	"errors"
	"net/http"

	"github.com/paintly/booking-service/internal/api/handlers"
	"github.com/paintly/booking-service/internal/api/middleware"
	"github.com/paintly/booking-service/internal/domain"
	createBooking "github.com/paintly/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeFormat  = "некорректный формат времени, ожидается RFC3339"
	msgInvalidRange       = "начало бронирования должно быть раньше конца"
	msgStartInPast        = "начало бронирования должно быть в будущем"
	msgTooShort           = "бронирование короче минимальной длительности 15 минут"
	msgTooLong            = "бронирование длиннее максимальной длительности 8 часов"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Доступен анонимно: identity опциональна, заказчик привязывается только
// если запрос пришел с валидными заголовками идентификации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var customerID *string
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		customerID = &identity.UserID
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *createBooking.ConflictError
		if errors.As(err, &conflict) {
			h.logger.Warn("POST /bookings - Conflict: code=%s", conflict.Code)
			handlers.RespondJSON(w, http.StatusConflict, FromConflictError(conflict))
			return
		}

		switch {
		case errors.Is(err, domain.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, domain.ErrStartTimeInPast):
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, domain.ErrTooShort):
			handlers.RespondBadRequest(w, msgTooShort)

		case errors.Is(err, domain.ErrTooLong):
			handlers.RespondBadRequest(w, msgTooLong)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: id=%s, painter_id=%s", result.ID, result.PainterID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
