package domain

import (
	"github.com/shopspring/decimal"
)

// Money денежная сумма с двумя знаками после запятой.
// В JSON всегда строка с двумя знаками, как numeric(12,2) в Postgres: "320.50", "0.00".
type Money struct {
	decimal.Decimal
}

// NewMoney округляет сумму до двух знаков
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// MustMoney разбирает строку; паникует на некорректном значении
func MustMoney(s string) Money {
	return NewMoney(decimal.RequireFromString(s))
}

// Add прибавляет дельту и округляет результат
func (m Money) Add(delta decimal.Decimal) Money {
	return NewMoney(m.Decimal.Add(delta))
}

// Equal сравнивает суммы
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// String возвращает сумму с двумя знаками
func (m Money) String() string {
	return m.StringFixed(2)
}

// MarshalJSON кодирует сумму строкой с двумя знаками
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
