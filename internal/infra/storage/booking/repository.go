package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FTV-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// uniqueViolationCode код ошибки PostgreSQL при нарушении unique-ограничения
const uniqueViolationCode = "23505"

// bookingColumns полный набор колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"reference",
	"visitor_name",
	"visitor_email",
	"visitor_phone",
	"visit_date",
	"time_slot",
	"adult_count",
	"child_count",
	"visitor_count",
	"status",
	"is_special",
	"requested_capacity",
	"special_reason",
	"special_status",
	"review_notes",
	"reviewed_by",
	"reviewed_at",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Проверка вместимости слота и вставка должны выполняться в одной
// сериализуемой транзакции - см. usecase create_booking
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"visitor_name",
			"visitor_email",
			"visitor_phone",
			"visit_date",
			"time_slot",
			"adult_count",
			"child_count",
			"visitor_count",
			"status",
			"is_special",
			"requested_capacity",
			"special_reason",
			"special_status",
		).
		Values(
			booking.Reference,
			booking.VisitorName,
			booking.VisitorEmail,
			booking.VisitorPhone,
			booking.VisitDate,
			booking.TimeSlot,
			booking.AdultCount,
			booking.ChildCount,
			booking.VisitorCount,
			booking.Status,
			booking.IsSpecial,
			booking.RequestedCapacity,
			booking.SpecialReason,
			booking.SpecialStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
			return nil, fmt.Errorf("%w: reference=%s", ErrDuplicateReference, booking.Reference)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// CreateDocuments сохраняет метаданные документов спец. заявки
// Вызывается в той же транзакции, что и Create - бронирование и документы
// фиксируются атомарно
func (r *Repository) CreateDocuments(ctx context.Context, bookingID int64, docs []*domain.BookingDocument) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_documents").
		Columns("booking_id", "name", "url", "public_id", "size_bytes", "mime_type")

	for _, doc := range docs {
		insertBuilder = insertBuilder.Values(bookingID, doc.Name, doc.URL, doc.PublicID, doc.SizeBytes, doc.MimeType)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateDocuments - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateDocuments - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByReference получает бронирование по публичному номеру
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"reference": reference}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByReference")
}

// GetDocuments получает документы, приложенные к бронированию
func (r *Repository) GetDocuments(ctx context.Context, bookingID int64) ([]*domain.BookingDocument, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"name",
		"url",
		"public_id",
		"size_bytes",
		"mime_type",
		"created_at",
	).
		From("booking_documents").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDocuments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDocuments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	docs := make([]*domain.BookingDocument, 0)
	for rows.Next() {
		var doc domain.BookingDocument
		var createdAt sql.NullTime
		if err := rows.Scan(&doc.ID, &doc.BookingID, &doc.Name, &doc.URL, &doc.PublicID, &doc.SizeBytes, &doc.MimeType, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetDocuments - scan row: %v", ErrScanRow, err)
		}
		doc.CreatedAt = createdAt.Time
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDocuments - rows error: %v", ErrScanRow, err)
	}

	return docs, nil
}

// GetActiveBySlot получает активные обычные бронирования на указанный слот.
// Спец. заявки не занимают места и в выборку не входят.
// excludeID исключает бронирование из выборки - используется при
// перепланировании, чтобы бронирование не считалось против самого себя.
//
// Внутри транзакции строки блокируются FOR UPDATE: конкурирующие
// проверки вместимости одного слота сериализуются относительно друг друга
func (r *Repository) GetActiveBySlot(ctx context.Context, date time.Time, slot types.TimeString, excludeID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactiveStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"visit_date": date}).
		Where(squirrel.Eq{"time_slot": slot}).
		Where(squirrel.Eq{"is_special": false}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings}).
		OrderBy("id ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// SumSeatsBySlot возвращает суммарное число мест, занятых активными
// обычными бронированиями слота. Используется для страницы доступности -
// перед вставкой вместимость всегда перепроверяется через GetActiveBySlot
// внутри сериализуемой транзакции
func (r *Repository) SumSeatsBySlot(ctx context.Context, date time.Time, slot types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("COALESCE(SUM(visitor_count), 0)").
		From("bookings").
		Where(squirrel.Eq{"visit_date": date}).
		Where(squirrel.Eq{"time_slot": slot}).
		Where(squirrel.Eq{"is_special": false}).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumSeatsBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumSeatsBySlot - scan total: %v", ErrScanRow, err)
	}

	return total, nil
}

// ListWithFilter получает бронирования с гибкой фильтрацией (админ-консоль)
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"visit_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"visit_date": *filter.EndDate})
	}
	if filter.TimeSlot != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"time_slot": *filter.TimeSlot})
	}
	if filter.OnlySpecial {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_special": true})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	// Для конкретной даты сортируем по слоту, иначе - сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("time_slot ASC, id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("visit_date DESC, time_slot DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Reschedule переносит бронирование на новую дату/слот с новым числом
// посетителей. Проверка вместимости нового слота выполняется в usecase
// в той же транзакции
func (r *Repository) Reschedule(ctx context.Context, id int64, date time.Time, slot types.TimeString, adults, children int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("visit_date", date).
		Set("time_slot", slot).
		Set("adult_count", adults).
		Set("child_count", children).
		Set("visitor_count", adults+children).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reschedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateStatus обновляет статус бронирования (админ: completed и т.п.)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ResolveSpecial фиксирует решение по спец. заявке
// Guard-условия в WHERE защищают от повторного рассмотрения и от
// переоткрытия отозванной заявки: конкурирующий UPDATE не затронет
// ни одной строки
func (r *Repository) ResolveSpecial(
	ctx context.Context,
	id int64,
	status domain.BookingStatus,
	specialStatus domain.SpecialStatus,
	reviewer string,
	notes string,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("special_status", specialStatus).
		Set("review_notes", notes).
		Set("reviewed_by", reviewer).
		Set("reviewed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"is_special": true}).
		Where(squirrel.Eq{"special_status": domain.SpecialStatusPending}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ResolveSpecial - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ResolveSpecial - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ResolveSpecial - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyResolved
	}

	return nil
}

// scanOne сканирует одну строку бронирования
func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.VisitorName,
		&booking.VisitorEmail,
		&booking.VisitorPhone,
		&booking.VisitDate,
		&booking.TimeSlot,
		&booking.AdultCount,
		&booking.ChildCount,
		&booking.VisitorCount,
		&booking.Status,
		&booking.IsSpecial,
		&booking.RequestedCapacity,
		&booking.SpecialReason,
		&booking.SpecialStatus,
		&booking.ReviewNotes,
		&booking.ReviewedBy,
		&booking.ReviewedAt,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.Reference,
			&booking.VisitorName,
			&booking.VisitorEmail,
			&booking.VisitorPhone,
			&booking.VisitDate,
			&booking.TimeSlot,
			&booking.AdultCount,
			&booking.ChildCount,
			&booking.VisitorCount,
			&booking.Status,
			&booking.IsSpecial,
			&booking.RequestedCapacity,
			&booking.SpecialReason,
			&booking.SpecialStatus,
			&booking.ReviewNotes,
			&booking.ReviewedBy,
			&booking.ReviewedAt,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
