package submit_special_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/FTV-BookingService/internal/api/handlers"
	submitSpecial "github.com/m04kA/FTV-BookingService/internal/usecase/submit_special_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты визита, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные заявки"
	msgBelowThreshold     = "запрошенное число мест не требует специальной заявки, оформите обычное бронирование"
	msgReasonTooShort     = "обоснование заявки слишком короткое"
	msgNoDocuments        = "необходимо приложить хотя бы один подтверждающий документ"
	msgTooManyDocuments   = "превышен лимит документов"
	msgDateInPast         = "дата визита уже прошла"
	msgDateClosed         = "завод закрыт в выбранную дату"
)

type Handler struct {
	useCase SubmitSpecialBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitSpecialBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/special-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitSpecialBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /special-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /special-bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitSpecial.ErrCapacityBelowThreshold):
			h.logger.Warn("POST /special-bookings - Capacity below threshold: requested=%d", req.RequestedCapacity)
			handlers.RespondBadRequest(w, msgBelowThreshold)

		case errors.Is(err, submitSpecial.ErrReasonTooShort):
			h.logger.Warn("POST /special-bookings - Reason too short: email=%s", req.VisitorEmail)
			handlers.RespondBadRequest(w, msgReasonTooShort)

		case errors.Is(err, submitSpecial.ErrNoDocuments):
			h.logger.Warn("POST /special-bookings - No documents attached: email=%s", req.VisitorEmail)
			handlers.RespondBadRequest(w, msgNoDocuments)

		case errors.Is(err, submitSpecial.ErrTooManyDocuments):
			h.logger.Warn("POST /special-bookings - Too many documents: count=%d", len(req.Documents))
			handlers.RespondBadRequest(w, msgTooManyDocuments)

		case errors.Is(err, submitSpecial.ErrDateInPast):
			h.logger.Warn("POST /special-bookings - Date in past: date=%s", req.VisitDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, submitSpecial.ErrDateClosed):
			h.logger.Warn("POST /special-bookings - Date closed: date=%s", req.VisitDate)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgDateClosed})

		case errors.Is(err, submitSpecial.ErrInvalidInput):
			h.logger.Warn("POST /special-bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /special-bookings - Failed to submit request: email=%s, error=%v",
				req.VisitorEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /special-bookings - Request submitted: reference=%s, capacity=%d",
		result.Reference, req.RequestedCapacity)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
