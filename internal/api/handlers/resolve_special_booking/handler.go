package resolve_special_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/FTV-BookingService/internal/api/handlers"
	"github.com/m04kA/FTV-BookingService/internal/api/middleware"
	resolveSpecial "github.com/m04kA/FTV-BookingService/internal/usecase/resolve_special_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные решения"
	msgNotFound           = "заявка не найдена"
	msgNotSpecial         = "бронирование не является специальной заявкой"
	msgAlreadyResolved    = "заявка уже рассмотрена"
	msgNotModifiable      = "заявка отозвана или завершена и не подлежит рассмотрению"
	msgNotesRequired      = "комментарий к решению обязателен"
)

type Handler struct {
	useCase ResolveSpecialBookingUseCase
	logger  Logger
}

func NewHandler(useCase ResolveSpecialBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/special-bookings/{reference}/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]
	reviewedBy := middleware.AdminIDFromContext(r.Context())

	var req ResolveSpecialBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /special-bookings/{reference}/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reference, reviewedBy))
	if err != nil {
		switch {
		case errors.Is(err, resolveSpecial.ErrBookingNotFound):
			h.logger.Warn("POST /special-bookings/{reference}/resolve - Not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, resolveSpecial.ErrNotSpecialBooking):
			h.logger.Warn("POST /special-bookings/{reference}/resolve - Not a special booking: reference=%s", reference)
			handlers.RespondBadRequest(w, msgNotSpecial)

		case errors.Is(err, resolveSpecial.ErrAlreadyResolved):
			h.logger.Warn("POST /special-bookings/{reference}/resolve - Already resolved: reference=%s", reference)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgAlreadyResolved})

		case errors.Is(err, resolveSpecial.ErrBookingNotModifiable):
			h.logger.Warn("POST /special-bookings/{reference}/resolve - Not modifiable: reference=%s", reference)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgNotModifiable})

		case errors.Is(err, resolveSpecial.ErrNotesRequired):
			h.logger.Warn("POST /special-bookings/{reference}/resolve - Notes required: reference=%s", reference)
			handlers.RespondBadRequest(w, msgNotesRequired)

		case errors.Is(err, resolveSpecial.ErrInvalidInput):
			h.logger.Warn("POST /special-bookings/{reference}/resolve - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /special-bookings/{reference}/resolve - Failed: reference=%s, error=%v",
				reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /special-bookings/{reference}/resolve - Resolved: reference=%s, decision=%s, by=%s",
		reference, req.Decision, reviewedBy)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
