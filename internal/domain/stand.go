package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type StandStatus string

const (
	StandStatusActive    StandStatus = "active"
	StandStatusInactive  StandStatus = "inactive"
	StandStatusSuspended StandStatus = "suspended"
	StandStatusExpired   StandStatus = "expired"
)

// StandStatuses lists every status in the order the management view offers them.
var StandStatuses = []StandStatus{
	StandStatusActive,
	StandStatusInactive,
	StandStatusSuspended,
	StandStatusExpired,
}

// ParseStandStatus validates s against the known statuses.
func ParseStandStatus(s string) (StandStatus, error) {
	for _, st := range StandStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid stand status: %q", s)
}

// StandID is an opaque identifier. The gateway may encode it as a JSON
// string or number; it is always kept in string form.
type StandID string

func (id *StandID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StandID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("stand id must be a string or number: %w", err)
	}
	*id = StandID(n.String())
	return nil
}

// MarketStand is a player-operated in-game storefront.
type MarketStand struct {
	ID         StandID         `json:"id" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	OwnerName  string          `json:"owner_name"`
	Status     StandStatus     `json:"status"`
	Earnings   decimal.Decimal `json:"earnings" validate:"gte=0"`
	TotalSales int             `json:"total_sales" validate:"gte=0"`
}
