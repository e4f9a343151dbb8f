package list_bookings

import (
	"net/url"
	"time"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/internal/service/bookings/models"
)

// ParseQuery собирает запрос списка бронирований из query-параметров
//
// Поддерживаемые параметры:
// - startDate, endDate: границы периода, YYYY-MM-DD
// - timeSlot: фильтр по слоту, HH:MM
// - status: pending | confirmed | cancelled | completed
// - onlySpecial: только специальные заявки
// - includeInactive: включать отмененные и завершенные
func ParseQuery(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		OnlySpecial:     query.Get("onlySpecial") == "true",
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if v := query.Get("startDate"); v != "" {
		startDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if v := query.Get("endDate"); v != "" {
		endDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if v := query.Get("timeSlot"); v != "" {
		req.TimeSlot = &v
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	return req, nil
}
