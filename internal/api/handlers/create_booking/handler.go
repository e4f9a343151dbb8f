package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/FTV-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/FTV-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты визита, ожидается YYYY-MM-DD"
	msgInvalidInput         = "некорректные данные бронирования"
	msgInvalidVisitorCount  = "некорректное число посетителей"
	msgVisitorCountTooLarge = "группа превышает вместимость слота, подайте специальную заявку"
	msgDateInPast           = "дата визита уже прошла"
	msgDateClosed           = "завод закрыт в выбранную дату"
	msgSlotFull             = "в выбранном слоте недостаточно мест"
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
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var slotFull *createBooking.SlotFullError
		var dateClosed *createBooking.DateClosedError

		switch {
		case errors.As(err, &slotFull):
			h.logger.Warn("POST /bookings - Slot full: date=%s, slot=%s, available=%d",
				req.VisitDate, req.TimeSlot, slotFull.AvailableSpots)
			handlers.RespondConflict(w, SlotFullResponse{
				Error:          msgSlotFull,
				AvailableSpots: slotFull.AvailableSpots,
			})

		case errors.As(err, &dateClosed):
			h.logger.Warn("POST /bookings - Date closed: date=%s, reason=%s", req.VisitDate, dateClosed.Reason)
			handlers.RespondConflict(w, DateClosedResponse{
				Error:  msgDateClosed,
				Reason: dateClosed.Reason,
			})

		case errors.Is(err, createBooking.ErrVisitorCountTooLarge):
			h.logger.Warn("POST /bookings - Visitor count too large: adults=%d, children=%d",
				req.AdultCount, req.ChildCount)
			handlers.RespondBadRequest(w, msgVisitorCountTooLarge)

		case errors.Is(err, createBooking.ErrInvalidVisitorCount):
			h.logger.Warn("POST /bookings - Invalid visitor count: adults=%d, children=%d",
				req.AdultCount, req.ChildCount)
			handlers.RespondBadRequest(w, msgInvalidVisitorCount)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: date=%s", req.VisitDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: email=%s, error=%v",
				req.VisitorEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: reference=%s, date=%s, slot=%s",
		result.Reference, req.VisitDate, req.TimeSlot)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
