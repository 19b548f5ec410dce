package repository

import (
	"github.com/Dhoini/nice-proxy/internal/domain"
)

// SeedCustomers возвращает фиксированный набор клиентов, которые вставляет Bootstrap
func SeedCustomers() []domain.Customer {
	return []domain.Customer{
		seed("CUST-1001", "Juan", "Perez", 250, "1500.00", "low", "active", "gold", "5000.00", false,
			strPtr("Prefers Spanish-speaking agents")),
		seed("CUST-1002", "Maria", "Gomez", 120, "320.50", "medium", "active", "standard", "2000.00", false,
			strPtr("Requested paperless statements")),
		seed("CUST-1003", "Carlos", "Rodriguez", 0, "-75.25", "high", "past_due", "standard", "1000.00", true,
			strPtr("Payment plan under review")),
		seed("CUST-1004", "Ana", "Martinez", 980, "0.00", "low", "active", "platinum", "10000.00", false,
			nil),
	}
}

func seed(id, first, last string, points int64, balance, risk, status, segment, creditLimit string, delinquent bool, notes *string) domain.Customer {
	return domain.Customer{
		CustomerSummary: domain.CustomerSummary{
			CustomerID:  id,
			FirstName:   first,
			LastName:    last,
			Points:      points,
			Balance:     domain.MustMoney(balance),
			RiskLevel:   risk,
			Status:      status,
			Segment:     segment,
			CreditLimit: domain.MustMoney(creditLimit),
			Delinquent:  delinquent,
		},
		Notes: notes,
	}
}

func strPtr(s string) *string {
	return &s
}
