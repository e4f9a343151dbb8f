package timeslots

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FTV-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с шаблонами экскурсионных слотов
// Шаблоны управляются из админки и используются сайтом для отображения.
// Арифметика допуска на них не опирается - см. domain.MaxCapacityPerSlot
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый шаблон слота
func (r *Repository) Create(ctx context.Context, tpl *domain.TimeSlotTemplate) (*domain.TimeSlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slot_templates").
		Columns("start_time", "end_time", "label", "capacity", "is_active").
		Values(tpl.StartTime, tpl.EndTime, tpl.Label, tpl.Capacity, tpl.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&tpl.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	tpl.CreatedAt = createdAt.Time
	tpl.UpdatedAt = updatedAt.Time

	return tpl, nil
}

// GetAll получает все шаблоны слотов, отсортированные по времени начала
func (r *Repository) GetAll(ctx context.Context) ([]*domain.TimeSlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"start_time",
		"end_time",
		"label",
		"capacity",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("time_slot_templates").
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.TimeSlotTemplate, 0)
	for rows.Next() {
		var tpl domain.TimeSlotTemplate
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&tpl.ID,
			&tpl.StartTime,
			&tpl.EndTime,
			&tpl.Label,
			&tpl.Capacity,
			&tpl.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}

		tpl.CreatedAt = createdAt.Time
		tpl.UpdatedAt = updatedAt.Time
		templates = append(templates, &tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}

// GetByID получает шаблон слота по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"start_time",
		"end_time",
		"label",
		"capacity",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("time_slot_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var tpl domain.TimeSlotTemplate
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tpl.ID,
		&tpl.StartTime,
		&tpl.EndTime,
		&tpl.Label,
		&tpl.Capacity,
		&tpl.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan template: %v", ErrScanRow, err)
	}

	tpl.CreatedAt = createdAt.Time
	tpl.UpdatedAt = updatedAt.Time

	return &tpl, nil
}

// Update обновляет шаблон слота
func (r *Repository) Update(ctx context.Context, tpl *domain.TimeSlotTemplate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slot_templates").
		Set("start_time", tpl.StartTime).
		Set("end_time", tpl.EndTime).
		Set("label", tpl.Label).
		Set("capacity", tpl.Capacity).
		Set("is_active", tpl.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": tpl.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}
