package timeslots

import (
	"context"
	"errors"
	"fmt"

	templateRepo "github.com/m04kA/FTV-BookingService/internal/infra/storage/timeslots"
	"github.com/m04kA/FTV-BookingService/internal/service/timeslots/models"
)

// Service сервис управления шаблонами экскурсионных слотов
// Шаблоны питают витрину сайта, допуск бронирований на них не опирается
type Service struct {
	templateRepo TemplateRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса шаблонов слотов
func NewService(templateRepo TemplateRepository, logger Logger) *Service {
	return &Service{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// GetAll получает все шаблоны слотов
func (s *Service) GetAll(ctx context.Context) (*models.TemplateListResponse, error) {
	s.logger.Info("GetAll: fetching slot templates")

	templates, err := s.templateRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAll: successfully fetched %d templates", len(templates))
	return models.FromDomainTemplateList(templates), nil
}

// Update обновляет шаблон слота по ID
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Update: updating slot template id=%d", id)

	tpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("Update: template id=%d not found", id)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("Update: repository error for template id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := req.ApplyTo(tpl); err != nil {
		s.logger.Warn("Update: invalid input for template id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if tpl.Capacity < 0 {
		s.logger.Warn("Update: negative capacity for template id=%d", id)
		return nil, fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}

	if !tpl.StartTime.IsZero() && !tpl.EndTime.IsZero() && !tpl.StartTime.IsBefore(tpl.EndTime) {
		s.logger.Warn("Update: start time is not before end time for template id=%d", id)
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	if err := s.templateRepo.Update(ctx, tpl); err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("Update: repository error for template id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated template id=%d", id)
	return models.FromDomainTemplate(tpl), nil
}
