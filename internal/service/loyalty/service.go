// Package loyalty накопительная статистика клиентов и бонусная программа.
package loyalty

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	clientRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/client"
)

// Service сервис лояльности: ведет профиль клиента и начисляет бонусы
type Service struct {
	clientRepo ClientRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса лояльности
func NewService(clientRepo ClientRepository, logger Logger) *Service {
	return &Service{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// RecordVisit фиксирует завершенный визит по брони: обновляет накопительную
// статистику клиента и начисляет бонусы (5% от суммы визита). Профиль
// создается при первом визите. Телефон нормализуется и служит основным
// ключом поиска, user_id — запасным.
//
// Возвращает число начисленных бонусов. Идемпотентность обеспечивает
// вызывающий через флаг bonus_applied на брони.
func (s *Service) RecordVisit(ctx context.Context, b *domain.Booking) (int, error) {
	var phone *string
	if b.ClientPhone != nil {
		if normalized := domain.NormalizePhone(*b.ClientPhone); normalized != "" {
			phone = &normalized
		}
	}

	c, err := s.clientRepo.Find(ctx, b.UserID, phone)
	if err != nil {
		if !errors.Is(err, clientRepo.ErrClientNotFound) {
			return 0, fmt.Errorf("%w: RecordVisit - find client: %v", ErrInternal, err)
		}

		name := ""
		if b.ClientName != nil {
			name = *b.ClientName
		}
		c, err = s.clientRepo.Create(ctx, &domain.Client{
			UserID: b.UserID,
			Phone:  phone,
			Name:   name,
		})
		if err != nil {
			return 0, fmt.Errorf("%w: RecordVisit - create client: %v", ErrInternal, err)
		}
	}

	bonus := domain.BonusFor(b.Price)

	c.TotalBookings++
	c.TotalSpent += b.Price
	c.BonusBalance += bonus
	if c.UserID == 0 && b.UserID != 0 {
		c.UserID = b.UserID
	}
	if phone != nil && (c.Phone == nil || *c.Phone == "") {
		c.Phone = phone
	}
	if b.ClientName != nil && *b.ClientName != "" {
		c.Name = *b.ClientName
	}

	if err := s.clientRepo.Update(ctx, c); err != nil {
		return 0, fmt.Errorf("%w: RecordVisit - update client: %v", ErrInternal, err)
	}

	s.logger.Info("loyalty: client %d visit recorded, +%d bonus, balance %d",
		c.ID, bonus, c.BonusBalance)
	return bonus, nil
}

// SpendBonuses списывает бонусы в счет оплаты брони стоимостью price.
// Списывается минимум из запрошенного, баланса клиента и половины
// стоимости (BonusMaxShare). Клиент без профиля оплачивает полную
// цену: запрошенное списание молча обнуляется.
//
// Возвращает фактически списанную сумму.
func (s *Service) SpendBonuses(ctx context.Context, userID int64, phone *string, price, requested int) (int, error) {
	if requested <= 0 {
		return 0, nil
	}

	var normalized *string
	if phone != nil {
		if p := domain.NormalizePhone(*phone); p != "" {
			normalized = &p
		}
	}

	c, err := s.clientRepo.Find(ctx, userID, normalized)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: SpendBonuses - find client: %v", ErrInternal, err)
	}

	spend := domain.MaxBonusSpend(price, c.BonusBalance)
	if requested < spend {
		spend = requested
	}
	if spend == 0 {
		return 0, nil
	}

	c.BonusBalance -= spend
	if err := s.clientRepo.Update(ctx, c); err != nil {
		return 0, fmt.Errorf("%w: SpendBonuses - update client: %v", ErrInternal, err)
	}

	s.logger.Info("loyalty: client %d spent %d bonus, balance %d", c.ID, spend, c.BonusBalance)
	return spend, nil
}

// Profile возвращает профиль клиента по user_id и телефону
func (s *Service) Profile(ctx context.Context, userID int64, phone *string) (*domain.Client, error) {
	var normalized *string
	if phone != nil {
		if p := domain.NormalizePhone(*phone); p != "" {
			normalized = &p
		}
	}

	c, err := s.clientRepo.Find(ctx, userID, normalized)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Profile - find client: %v", ErrInternal, err)
	}
	return c, nil
}
