package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/pkg/dbmetrics"
	"github.com/akaisui/car-repair-backend-sub000/pkg/psqlbuilder"
)

// appointmentColumns колонки записи вместе с присоединёнными данными для отображения
var appointmentColumns = []string{
	"a.id",
	"a.code",
	"a.customer_id",
	"a.vehicle_id",
	"a.service_id",
	"a.appointment_date",
	"a.start_time",
	"a.status",
	"a.notes",
	"a.reminder_sent",
	"a.created_at",
	"a.updated_at",
	"c.name AS customer_name",
	"c.phone AS customer_phone",
	"v.license_plate",
	"s.name AS service_name",
	"s.duration_minutes",
}

// orderByWhitelist допустимые значения сортировки поиска
// Произвольные выражения от вызывающего кода в ORDER BY не попадают
var orderByWhitelist = map[string]string{
	"":                "a.appointment_date DESC, a.start_time DESC",
	"date_desc":       "a.appointment_date DESC, a.start_time DESC",
	"date_asc":        "a.appointment_date ASC, a.start_time ASC",
	"created_at_desc": "a.created_at DESC",
	"created_at_asc":  "a.created_at ASC",
}

// Repository репозиторий для работы с записями на обслуживание
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Код записи генерируется выше (в use case), статус по умолчанию - pending.
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, ap *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if ap.Status == "" {
		ap.Status = domain.StatusPending
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"code",
			"customer_id",
			"vehicle_id",
			"service_id",
			"appointment_date",
			"start_time",
			"status",
			"notes",
			"reminder_sent",
		).
		Values(
			ap.Code,
			ap.CustomerID,
			ap.VehicleID,
			ap.ServiceID,
			ap.Date,
			ap.StartTime,
			ap.Status,
			ap.Notes,
			ap.ReminderSent,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ap.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	ap.CreatedAt = createdAt.Time
	ap.UpdatedAt = updatedAt.Time

	return ap, nil
}

// GetByID получает запись по ID вместе с данными клиента, автомобиля и услуги
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"a.id": id}, "GetByID")
}

// GetByCode получает запись по читаемому коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"a.code": code}, "GetByCode")
}

// CodeExists проверяет, существует ли запись с указанным кодом
// Используется генератором кодов для обнаружения коллизий
func (r *Repository) CodeExists(ctx context.Context, code string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("appointments").
		Where(squirrel.Eq{"code": code}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: CodeExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: CodeExists - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// List получает записи с фильтрацией, сортировкой и пагинацией
// Поддерживает фильтрацию по клиенту, автомобилю, услуге, статусу, периоду
// и свободный поиск по имени/телефону клиента, госномеру, названию услуги и коду записи
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter, page domain.AppointmentPage) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	orderBy, ok := orderByWhitelist[page.OrderBy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrderBy, page.OrderBy)
	}

	limit := page.Limit
	if limit == 0 {
		limit = domain.DefaultSearchLimit
	}
	if limit > domain.MaxSearchLimit {
		limit = domain.MaxSearchLimit
	}

	selectBuilder := applyFilter(r.baseSelect(), filter).
		OrderBy(orderBy).
		Limit(limit).
		Offset(page.Offset)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// Count подсчитывает записи по тому же фильтру, что и List
// Отдельный запрос, транзакционная согласованность с List не гарантируется
func (r *Repository) Count(ctx context.Context, filter domain.AppointmentFilter) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countBuilder := applyFilter(
		psqlbuilder.Select("COUNT(*)").
			From("appointments a").
			LeftJoin("customers c ON c.id = a.customer_id").
			LeftJoin("vehicles v ON v.id = a.vehicle_id").
			LeftJoin("services s ON s.id = a.service_id"),
		filter,
	)

	query, args, err := countBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan total: %w", ErrScanRow, err)
	}

	return total, nil
}

// ListByDate получает неотменённые записи на дату вместе с длительностями услуг
// Используется проверкой доступности и бронированием.
// Внутри транзакции строки записей блокируются через FOR UPDATE OF a,
// чтобы закрыть гонку проверка-затем-запись при одновременном бронировании
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.baseSelect().
		Where(squirrel.Eq{"a.appointment_date": date}).
		Where(squirrel.NotEq{"a.status": string(domain.StatusCancelled)}).
		OrderBy("a.start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// ListByDateRange получает все записи за период [from, to] включительно
// Используется календарным представлением, отменённые записи включаются
func (r *Repository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.baseSelect().
		Where(squirrel.GtOrEq{"a.appointment_date": from}).
		Where(squirrel.LtOrEq{"a.appointment_date": to}).
		OrderBy("a.appointment_date ASC, a.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// ListForReminder получает записи на дату, ожидающие напоминания
// Только pending/confirmed с неотправленным напоминанием
func (r *Repository) ListForReminder(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statuses := make([]string, len(domain.ReminderStatuses))
	for i, s := range domain.ReminderStatuses {
		statuses[i] = string(s)
	}

	query, args, err := r.baseSelect().
		Where(squirrel.Eq{"a.appointment_date": date}).
		Where(squirrel.Eq{"a.status": statuses}).
		Where(squirrel.Eq{"a.reminder_sent": false}).
		OrderBy("a.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForReminder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForReminder - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// UpdateByID частично обновляет запись и возвращает её актуальное состояние
// В UPDATE попадают только заполненные поля
func (r *Repository) UpdateByID(ctx context.Context, id int64, update *domain.AppointmentUpdate) (*domain.Appointment, error) {
	if update.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.CustomerID != nil {
		updateBuilder = updateBuilder.Set("customer_id", *update.CustomerID)
	}
	if update.VehicleID != nil {
		updateBuilder = updateBuilder.Set("vehicle_id", *update.VehicleID)
	}
	if update.ServiceID != nil {
		updateBuilder = updateBuilder.Set("service_id", *update.ServiceID)
	}
	if update.Date != nil {
		updateBuilder = updateBuilder.Set("appointment_date", *update.Date)
	}
	if update.StartTime != nil {
		updateBuilder = updateBuilder.Set("start_time", *update.StartTime)
	}
	if update.Status != nil {
		updateBuilder = updateBuilder.Set("status", *update.Status)
	}
	if update.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *update.Notes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateByID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateByID - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateByID - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return nil, ErrAppointmentNotFound
	}

	return r.GetByID(ctx, id)
}

// UpdateStatus обновляет статус записи, опционально вместе с заметками,
// и возвращает её актуальное состояние
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, notes *string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return nil, ErrAppointmentNotFound
	}

	return r.GetByID(ctx, id)
}

// MarkReminderSent выставляет флаг отправленного напоминания
// Повторный вызов для той же записи не является ошибкой
func (r *Repository) MarkReminderSent(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("reminder_sent", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// baseSelect базовый SELECT записи с присоединёнными справочниками
func (r *Repository) baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(appointmentColumns...).
		From("appointments a").
		LeftJoin("customers c ON c.id = a.customer_id").
		LeftJoin("vehicles v ON v.id = a.vehicle_id").
		LeftJoin("services s ON s.id = a.service_id")
}

// getOne выполняет точечную выборку одной записи
func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.baseSelect().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	ap, err := scanAppointment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %w", ErrScanRow, method, err)
	}

	return ap, nil
}

// applyFilter накладывает условия фильтра на SELECT builder
func applyFilter(selectBuilder squirrel.SelectBuilder, filter domain.AppointmentFilter) squirrel.SelectBuilder {
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.customer_id": *filter.CustomerID})
	}
	if filter.VehicleID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.vehicle_id": *filter.VehicleID})
	}
	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.service_id": *filter.ServiceID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.status": string(*filter.Status)})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"a.appointment_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"a.appointment_date": *filter.DateTo})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"c.name": pattern},
			squirrel.ILike{"c.phone": pattern},
			squirrel.ILike{"v.license_plate": pattern},
			squirrel.ILike{"s.name": pattern},
			squirrel.ILike{"a.code": pattern},
		})
	}

	return selectBuilder
}

// scanAppointment сканирует одну строку результата в доменную модель
func scanAppointment(scan func(dest ...interface{}) error) (*domain.Appointment, error) {
	var ap domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&ap.ID,
		&ap.Code,
		&ap.CustomerID,
		&ap.VehicleID,
		&ap.ServiceID,
		&ap.Date,
		&ap.StartTime,
		&ap.Status,
		&ap.Notes,
		&ap.ReminderSent,
		&createdAt,
		&updatedAt,
		&ap.CustomerName,
		&ap.CustomerPhone,
		&ap.VehicleLicensePlate,
		&ap.ServiceName,
		&ap.ServiceDurationMinutes,
	)

	if err != nil {
		return nil, err
	}

	ap.CreatedAt = createdAt.Time
	ap.UpdatedAt = updatedAt.Time

	return &ap, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		ap, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, ap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}
