package waitlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	"github.com/m04kA/SRC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SRC-BookingService/pkg/psqlbuilder"
)

var waitlistColumns = []string{
	"id",
	"user_id",
	"start_at",
	"end_at",
	"duration_minutes",
	"sims_needed",
	"active",
	"created_at",
}

// Repository репозиторий для работы с листом ожидания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую подписку
func (r *Repository) Create(ctx context.Context, w *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist").
		Columns(
			"user_id",
			"start_at",
			"end_at",
			"duration_minutes",
			"sims_needed",
			"active",
		).
		Values(
			w.UserID,
			w.StartAt,
			w.EndAt,
			w.DurationMinutes,
			w.SimsNeeded,
			w.Active,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	w.CreatedAt = createdAt.Time

	return w, nil
}

// GetByID получает подписку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(waitlistColumns...).
		From("waitlist").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	w, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %v", ErrScanRow, err)
	}

	return w, nil
}

// ListActiveFuture получает активные подписки на интервалы, которые
// ещё не начались — их опрашивает воркер листа ожидания
func (r *Repository) ListActiveFuture(ctx context.Context, now time.Time) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(waitlistColumns...).
		From("waitlist").
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Gt{"start_at": now}).
		OrderBy("start_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveFuture - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveFuture - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		w, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveFuture - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveFuture - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// Deactivate отключает подписку. Возвращает ErrEntryNotFound, если
// подписки нет или она уже неактивна — так уведомление листа ожидания
// гарантированно срабатывает один раз даже при конкурирующих тиках.
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist").
		Set("active", false).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"active": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.WaitlistEntry, error) {
	var w domain.WaitlistEntry
	var createdAt sql.NullTime

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.StartAt,
		&w.EndAt,
		&w.DurationMinutes,
		&w.SimsNeeded,
		&w.Active,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	w.CreatedAt = createdAt.Time

	return &w, nil
}
