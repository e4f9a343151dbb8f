package notifylog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FTV-BookingService/pkg/psqlbuilder"
)

// Repository append-only журнал попыток отправки уведомлений
// Записи нужны только для наблюдаемости; бизнес-логика их не читает
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала уведомлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись о попытке отправки уведомления
func (r *Repository) Append(ctx context.Context, rec *domain.NotificationRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notification_log").
		Columns("booking_id", "channel", "template", "recipient", "delivered", "detail").
		Values(rec.BookingID, rec.Channel, rec.Template, rec.Recipient, rec.Delivered, rec.Detail).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByBookingID получает историю уведомлений по бронированию
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.NotificationRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"channel",
		"template",
		"recipient",
		"delivered",
		"detail",
		"attempted_at",
	).
		From("notification_log").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("attempted_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.NotificationRecord, 0)
	for rows.Next() {
		var rec domain.NotificationRecord
		var attemptedAt sql.NullTime

		err := rows.Scan(
			&rec.ID,
			&rec.BookingID,
			&rec.Channel,
			&rec.Template,
			&rec.Recipient,
			&rec.Delivered,
			&rec.Detail,
			&attemptedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBookingID - scan row: %v", ErrScanRow, err)
		}

		rec.AttemptedAt = attemptedAt.Time
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}
