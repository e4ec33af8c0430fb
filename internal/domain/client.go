package domain

import "time"

// Client клиент клуба с накопительной статистикой и бонусным балансом.
// Идентифицируется по нормализованному телефону, запасной ключ — user_id.
type Client struct {
	ID            int64
	UserID        int64
	Phone         *string
	Name          string
	TotalBookings int
	TotalSpent    int
	BonusBalance  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Бонусная программа
const (
	// BonusRate доля от суммы визита, начисляемая бонусами
	BonusRate = 0.05
	// BonusMaxShare какую долю визита можно оплатить бонусами
	BonusMaxShare = 0.5
)

// BonusFor сколько бонусов начислить за визит на сумму price
func BonusFor(price int) int {
	if price <= 0 {
		return 0
	}
	return int(float64(price) * BonusRate)
}

// MaxBonusSpend сколько бонусов максимум можно списать при оплате price
func MaxBonusSpend(price, balance int) int {
	limit := int(float64(price) * BonusMaxShare)
	if balance < limit {
		limit = balance
	}
	if limit < 0 {
		return 0
	}
	return limit
}
