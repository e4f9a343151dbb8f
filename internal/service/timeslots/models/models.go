package models

import (
	"time"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// Request модели

// UpdateTemplateRequest запрос на обновление шаблона слота
// nil-поля остаются без изменений
type UpdateTemplateRequest struct {
	StartTime *string `json:"startTime,omitempty"` // "10:00"
	EndTime   *string `json:"endTime,omitempty"`   // "11:30"
	Label     *string `json:"label,omitempty"`
	Capacity  *int    `json:"capacity,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// ApplyTo накладывает непустые поля запроса на существующий шаблон
func (r *UpdateTemplateRequest) ApplyTo(tpl *domain.TimeSlotTemplate) error {
	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return err
		}
		tpl.StartTime = start
	}

	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return err
		}
		tpl.EndTime = end
	}

	if r.Label != nil {
		tpl.Label = *r.Label
	}

	if r.Capacity != nil {
		tpl.Capacity = *r.Capacity
	}

	if r.IsActive != nil {
		tpl.IsActive = *r.IsActive
	}

	return nil
}

// Response модели

// TemplateResponse ответ с данными шаблона слота
type TemplateResponse struct {
	ID              int64     `json:"id"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	Label           string    `json:"label"`
	Capacity        int       `json:"capacity"`
	DurationMinutes int       `json:"durationMinutes"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TemplateListResponse ответ со списком шаблонов
type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

// FromDomainTemplate конвертирует domain модель в DTO
func FromDomainTemplate(t *domain.TimeSlotTemplate) *TemplateResponse {
	if t == nil {
		return nil
	}

	return &TemplateResponse{
		ID:              t.ID,
		StartTime:       t.StartTime.String(),
		EndTime:         t.EndTime.String(),
		Label:           t.Label,
		Capacity:        t.Capacity,
		DurationMinutes: t.Duration(),
		IsActive:        t.IsActive,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// FromDomainTemplateList конвертирует список domain моделей в DTO
func FromDomainTemplateList(templates []*domain.TimeSlotTemplate) *TemplateListResponse {
	resp := &TemplateListResponse{
		Templates: make([]TemplateResponse, 0, len(templates)),
	}

	for _, tpl := range templates {
		if tplResp := FromDomainTemplate(tpl); tplResp != nil {
			resp.Templates = append(resp.Templates, *tplResp)
		}
	}

	return resp
}
