package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/FTV-BookingService/internal/api/handlers"
	rescheduleBooking "github.com/m04kA/FTV-BookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput         = "некорректные данные переноса"
	msgNotFound             = "бронирование не найдено"
	msgNotModifiable        = "бронирование уже нельзя изменить"
	msgVisitorCountTooLarge = "группа превышает вместимость слота, подайте специальную заявку"
	msgDateInPast           = "новая дата визита уже прошла"
	msgDateClosed           = "завод закрыт в выбранную дату"
	msgSlotFull             = "в целевом слоте недостаточно мест"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{reference}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{reference}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reference)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{reference}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var slotFull *rescheduleBooking.SlotFullError
		var dateClosed *rescheduleBooking.DateClosedError

		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{reference}/reschedule - Not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrBookingNotModifiable):
			h.logger.Warn("PATCH /bookings/{reference}/reschedule - Not modifiable: reference=%s", reference)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgNotModifiable})

		case errors.As(err, &slotFull):
			h.logger.Warn("PATCH /bookings/{reference}/reschedule - Slot full: reference=%s, available=%d",
				reference, slotFull.AvailableSpots)
			handlers.RespondConflict(w, SlotFullResponse{
				Error:          msgSlotFull,
				AvailableSpots: slotFull.AvailableSpots,
			})

		case errors.As(err, &dateClosed):
			h.logger.Warn("PATCH /bookings/{reference}/reschedule - Date closed: reference=%s, reason=%s",
				reference, dateClosed.Reason)
			handlers.RespondConflict(w, DateClosedResponse{
				Error:  msgDateClosed,
				Reason: dateClosed.Reason,
			})

		case errors.Is(err, rescheduleBooking.ErrVisitorCountTooLarge):
			h.logger.Warn("PATCH /bookings/{reference}/reschedule - Visitor count too large: reference=%s", reference)
			handlers.RespondBadRequest(w, msgVisitorCountTooLarge)

		case errors.Is(err, rescheduleBooking.ErrDateInPast):
			h.logger.Warn("PATCH /bookings/{reference}/reschedule - Date in past: reference=%s", reference)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{reference}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{reference}/reschedule - Failed: reference=%s, error=%v",
				reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{reference}/reschedule - Rescheduled: reference=%s, newDate=%s, newSlot=%s",
		reference, req.NewDate, req.NewSlot)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
