package get_slot_templates

import (
	"net/http"

	"github.com/m04kA/FTV-BookingService/internal/api/handlers"
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

// Handle GET /api/v1/slot-templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetAll(r.Context())
	if err != nil {
		h.logger.Error("GET /slot-templates - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slot-templates - Fetched %d templates", len(result.Templates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
