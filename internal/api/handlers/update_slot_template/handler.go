package update_slot_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FTV-BookingService/internal/api/handlers"
	"github.com/m04kA/FTV-BookingService/internal/service/timeslots"
	"github.com/m04kA/FTV-BookingService/internal/service/timeslots/models"
)

const (
	msgInvalidTemplateID  = "некорректный ID шаблона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные шаблона"
	msgNotFound           = "шаблон слота не найден"
)

type Handler struct {
	service TimeSlotService
	logger  Logger
}

func NewHandler(service TimeSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/slot-templates/{templateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	templateIDStr := mux.Vars(r)["templateId"]

	templateID, err := strconv.ParseInt(templateIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /slot-templates/{id} - Invalid template ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	var req models.UpdateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slot-templates/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), templateID, &req)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrTemplateNotFound):
			h.logger.Warn("PUT /slot-templates/{id} - Not found: id=%d", templateID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, timeslots.ErrInvalidInput):
			h.logger.Warn("PUT /slot-templates/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /slot-templates/{id} - Failed: id=%d, error=%v", templateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slot-templates/{id} - Updated: id=%d", templateID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
