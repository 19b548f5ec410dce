package domain

import (
	"github.com/shopspring/decimal"
)

// ValidateCustomerRequest представляет запрос на проверку клиента
type ValidateCustomerRequest struct {
	CustomerID string `json:"customerId" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
}

// AdjustCustomerRequest представляет запрос на корректировку клиента.
// Отсутствующие и null поля не меняют сохраненные значения, отсутствующие дельты равны нулю.
type AdjustCustomerRequest struct {
	PointsDelta  *int64   `json:"pointsDelta"`
	BalanceDelta *float64 `json:"balanceDelta"`
	RiskLevel    *string  `json:"riskLevel"`
	Status       *string  `json:"status"`
	Segment      *string  `json:"segment"`
	Delinquent   *bool    `json:"delinquent"`
}

// ToAdjustment переводит запрос в доменную корректировку
func (r AdjustCustomerRequest) ToAdjustment() Adjustment {
	adj := Adjustment{
		RiskLevel:  FromPtr(r.RiskLevel),
		Status:     FromPtr(r.Status),
		Segment:    FromPtr(r.Segment),
		Delinquent: FromPtr(r.Delinquent),
	}
	if r.PointsDelta != nil {
		adj.PointsDelta = *r.PointsDelta
	}
	if r.BalanceDelta != nil {
		adj.BalanceDelta = decimal.NewFromFloat(*r.BalanceDelta).Round(2)
	}
	return adj
}
