package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	"github.com/m04kA/SRC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SRC-BookingService/pkg/psqlbuilder"
)

var clientColumns = []string{
	"id",
	"user_id",
	"phone",
	"name",
	"total_bookings",
	"total_spent",
	"bonus_balance",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с клиентами и их бонусами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Find ищет клиента по нормализованному телефону, а если телефона нет —
// по user_id. Телефон — основной ключ: один клиент может писать
// с разных аккаунтов.
func (r *Repository) Find(ctx context.Context, userID int64, phone *string) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(clientColumns...).From("clients")

	if phone != nil && *phone != "" {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"phone": *phone})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": userID})
	}

	query, args, err := selectBuilder.OrderBy("id ASC").Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Find - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanClient(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Find - scan client: %v", ErrScanRow, err)
	}

	return c, nil
}

// Create создает нового клиента
func (r *Repository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns(
			"user_id",
			"phone",
			"name",
			"total_bookings",
			"total_spent",
			"bonus_balance",
		).
		Values(
			c.UserID,
			c.Phone,
			c.Name,
			c.TotalBookings,
			c.TotalSpent,
			c.BonusBalance,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// Update обновляет профиль и накопительную статистику клиента
func (r *Repository) Update(ctx context.Context, c *domain.Client) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("clients").
		Set("user_id", c.UserID).
		Set("phone", c.Phone).
		Set("name", c.Name).
		Set("total_bookings", c.TotalBookings).
		Set("total_spent", c.TotalSpent).
		Set("bonus_balance", c.BonusBalance).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if affected == 0 {
		return ErrClientNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Phone,
		&c.Name,
		&c.TotalBookings,
		&c.TotalSpent,
		&c.BonusBalance,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
