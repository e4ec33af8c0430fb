package domain

import "fmt"

// Tariffs прайс клуба: цена за один симулятор по длительности в минутах
type Tariffs map[int]int

// DefaultTariffs тарифы по умолчанию
func DefaultTariffs() Tariffs {
	t := make(Tariffs, len(DefaultPrices))
	for d, p := range DefaultPrices {
		t[d] = p
	}
	return t
}

// AllowedDuration допустима ли такая длительность брони
func (t Tariffs) AllowedDuration(minutes int) bool {
	_, ok := t[minutes]
	return ok
}

// PriceFor стоимость брони: тариф за длительность, умноженный на число симуляторов
func (t Tariffs) PriceFor(durationMinutes, sims int) (int, error) {
	price, ok := t[durationMinutes]
	if !ok {
		return 0, fmt.Errorf("tariffs: unsupported duration %d minutes", durationMinutes)
	}
	return price * sims, nil
}
