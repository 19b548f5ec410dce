package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerSummary представляет клиента без заметок (проекция списка и результата корректировки)
type CustomerSummary struct {
	CustomerID  string          `json:"customer_id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Points      int64           `json:"points"`
	Balance     Money           `json:"balance"`
	RiskLevel   string          `json:"risk_level"`
	Status      string          `json:"status"`
	Segment     string          `json:"segment"`
	CreditLimit Money           `json:"credit_limit"`
	Delinquent  bool            `json:"delinquent"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Customer представляет полную запись клиента, включая заметки
type Customer struct {
	CustomerSummary
	Notes *string `json:"notes"`
}

// Adjustment описывает частичное изменение клиента.
// Points и Balance прибавляются к текущим значениям, остальные поля заменяются только если заданы.
type Adjustment struct {
	PointsDelta  int64
	BalanceDelta decimal.Decimal
	RiskLevel    Optional[string]
	Status       Optional[string]
	Segment      Optional[string]
	Delinquent   Optional[bool]
}

// Apply возвращает копию клиента с применённой корректировкой и обновлённым updated_at.
// Границы не проверяются: баллы и баланс могут уйти в минус.
func (c CustomerSummary) Apply(adj Adjustment, now time.Time) CustomerSummary {
	c.Points += adj.PointsDelta
	c.Balance = c.Balance.Add(adj.BalanceDelta)
	c.RiskLevel = adj.RiskLevel.Or(c.RiskLevel)
	c.Status = adj.Status.Or(c.Status)
	c.Segment = adj.Segment.Or(c.Segment)
	c.Delinquent = adj.Delinquent.Or(c.Delinquent)
	c.UpdatedAt = now
	return c
}
