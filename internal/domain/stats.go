package domain

import "github.com/shopspring/decimal"

type TransactionType string

const (
	TransactionTypePurchase    TransactionType = "purchase"
	TransactionTypeSale        TransactionType = "sale"
	TransactionTypeRentPayment TransactionType = "rent_payment"
	TransactionTypeOther       TransactionType = "other"
)

// Known reports whether t is one of the transaction types the dashboard styles explicitly.
func (t TransactionType) Known() bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeSale, TransactionTypeRentPayment:
		return true
	}
	return false
}

// Transaction is a read-only entry of the dashboard's recent activity feed.
type Transaction struct {
	PlayerName      string          `json:"player_name"`
	TransactionType TransactionType `json:"transaction_type"`
	ItemName        string          `json:"item_name,omitempty"`
	Quantity        int             `json:"quantity" validate:"omitempty,gte=1"`
	Amount          decimal.Decimal `json:"amount"`
}

// DashboardStats is an immutable snapshot returned by the gateway.
type DashboardStats struct {
	TotalStands        int             `json:"total_stands" validate:"gte=0"`
	ActiveStands       int             `json:"active_stands" validate:"gte=0"`
	TotalEarnings      decimal.Decimal `json:"total_earnings" validate:"gte=0"`
	TotalTransactions  int             `json:"total_transactions" validate:"gte=0"`
	RecentTransactions []Transaction   `json:"recent_transactions" validate:"dive"`
}

// EmptyDashboardStats is the zero-valued record a dashboard shows before its first load.
func EmptyDashboardStats() DashboardStats {
	return DashboardStats{
		TotalEarnings:      decimal.Zero,
		RecentTransactions: []Transaction{},
	}
}
