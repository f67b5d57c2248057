package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/pkg/dbmetrics"
	"github.com/akaisui/car-repair-backend-sub000/pkg/psqlbuilder"
)

// CountGroupByStatus подсчитывает записи в периоде, сгруппированные по статусу
func (r *Repository) CountGroupByStatus(ctx context.Context, from, to *time.Time) (map[domain.AppointmentStatus]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("status", "COUNT(*)").
		From("appointments").
		GroupBy("status")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *to})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountGroupByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountGroupByStatus - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[domain.AppointmentStatus]int64)
	for rows.Next() {
		var status domain.AppointmentStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountGroupByStatus - scan row: %w", ErrScanRow, err)
		}
		result[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountGroupByStatus - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// CountGroupByService подсчитывает записи в периоде, сгруппированные по услуге
// Записи без привязанной услуги не учитываются
func (r *Repository) CountGroupByService(ctx context.Context, from, to *time.Time, limit uint64) ([]domain.ServiceCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("a.service_id", "s.name", "COUNT(*) AS total").
		From("appointments a").
		Join("services s ON s.id = a.service_id").
		Where(squirrel.NotEq{"a.service_id": nil}).
		GroupBy("a.service_id", "s.name").
		OrderBy("total DESC").
		Limit(limit)

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"a.appointment_date": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"a.appointment_date": *to})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountGroupByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountGroupByService - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.ServiceCount, 0)
	for rows.Next() {
		var sc domain.ServiceCount
		if err := rows.Scan(&sc.ServiceID, &sc.ServiceName, &sc.Count); err != nil {
			return nil, fmt.Errorf("%w: CountGroupByService - scan row: %w", ErrScanRow, err)
		}
		counts = append(counts, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountGroupByService - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}
