// Package present turns view snapshots into the rows and labels the admin
// pages render.
package present

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"market-stand-admin/internal/domain"
)

// FormatMoney renders an amount with a dollar sign. Whole amounts have no
// decimals, anything else is fixed to two places.
func FormatMoney(d decimal.Decimal) string {
	if d.IsInteger() {
		return "$" + d.Truncate(0).String()
	}
	return "$" + d.StringFixed(2)
}

// StatCard is one tile at the top of the dashboard.
type StatCard struct {
	Title string
	Value string
	Color string
}

// TransactionRow is one line of the recent activity feed.
type TransactionRow struct {
	Badge      string
	BadgeColor string
	Label      string
	PlayerName string
	Amount     string
}

// Dashboard is everything the dashboard template needs.
type Dashboard struct {
	Cards        []StatCard
	Transactions []TransactionRow
}

// NewDashboard builds the dashboard page model.
func NewDashboard(stats domain.DashboardStats) Dashboard {
	rows := make([]TransactionRow, 0, len(stats.RecentTransactions))
	for _, tx := range stats.RecentTransactions {
		rows = append(rows, NewTransactionRow(tx))
	}
	return Dashboard{
		Cards: []StatCard{
			{Title: "Total Stands", Value: strconv.Itoa(stats.TotalStands), Color: "blue"},
			{Title: "Active Stands", Value: strconv.Itoa(stats.ActiveStands), Color: "green"},
			{Title: "Total Earnings", Value: FormatMoney(stats.TotalEarnings), Color: "yellow"},
			{Title: "Total Transactions", Value: strconv.Itoa(stats.TotalTransactions), Color: "purple"},
		},
		Transactions: rows,
	}
}

// NewTransactionRow formats a single transaction.
func NewTransactionRow(tx domain.Transaction) TransactionRow {
	label := strings.ToUpper(strings.Replace(string(tx.TransactionType), "_", " ", 1))
	if tx.ItemName != "" {
		label += " - " + tx.ItemName
	}
	if tx.Quantity > 1 {
		label += " (x" + strconv.Itoa(tx.Quantity) + ")"
	}
	return TransactionRow{
		Badge:      transactionBadge(tx.TransactionType),
		BadgeColor: transactionColor(tx.TransactionType),
		Label:      label,
		PlayerName: tx.PlayerName,
		Amount:     FormatMoney(tx.Amount),
	}
}

func transactionBadge(t domain.TransactionType) string {
	switch t {
	case domain.TransactionTypePurchase:
		return "P"
	case domain.TransactionTypeSale:
		return "S"
	case domain.TransactionTypeRentPayment:
		return "R"
	default:
		return "T"
	}
}

func transactionColor(t domain.TransactionType) string {
	switch t {
	case domain.TransactionTypePurchase:
		return "green"
	case domain.TransactionTypeSale:
		return "blue"
	case domain.TransactionTypeRentPayment:
		return "yellow"
	default:
		return "gray"
	}
}

// StatusOption is one entry of a stand's status selector.
type StatusOption struct {
	Value    string
	Label    string
	Selected bool
}

// StandRow is one card of the management list.
type StandRow struct {
	ID          string
	Path        string
	Initial     string
	Name        string
	Owner       string
	Status      string
	StatusColor string
	Earnings    string
	Sales       int
	Options     []StatusOption
}

// Summary is the "Owner: X | Status: Y" line.
func (r StandRow) Summary() string {
	return "Owner: " + r.Owner + " | Status: " + r.Status
}

// Totals is the "Earnings: $e | Sales: n" line.
func (r StandRow) Totals() string {
	return "Earnings: " + r.Earnings + " | Sales: " + strconv.Itoa(r.Sales)
}

// NewStandRows formats the management list, keeping gateway order.
func NewStandRows(stands []domain.MarketStand) []StandRow {
	rows := make([]StandRow, 0, len(stands))
	for _, s := range stands {
		rows = append(rows, NewStandRow(s))
	}
	return rows
}

// NewStandRow formats a single stand.
func NewStandRow(s domain.MarketStand) StandRow {
	options := make([]StatusOption, 0, len(domain.StandStatuses))
	for _, st := range domain.StandStatuses {
		options = append(options, StatusOption{
			Value:    string(st),
			Label:    titleCase(string(st)),
			Selected: st == s.Status,
		})
	}
	return StandRow{
		ID:          string(s.ID),
		Path:        "/stands/" + url.PathEscape(string(s.ID)),
		Initial:     initial(s.Name),
		Name:        s.Name,
		Owner:       s.OwnerName,
		Status:      strings.ToUpper(string(s.Status)),
		StatusColor: statusColor(s.Status),
		Earnings:    FormatMoney(s.Earnings),
		Sales:       s.TotalSales,
		Options:     options,
	}
}

func statusColor(s domain.StandStatus) string {
	switch s {
	case domain.StandStatusActive:
		return "green"
	case domain.StandStatusInactive:
		return "gray"
	case domain.StandStatusExpired:
		return "red"
	default:
		return "yellow"
	}
}

func initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
