package credit

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CategoryVacation = "VACATION"
	CategorySick     = "SICK"
)

const (
	ReasonReserve = "RESERVE"
	ReasonRelease = "RELEASE"
	ReasonAdjust  = "ADJUST"
	ReasonOpening = "OPENING"
)

// Scale is the number of fractional digits kept for every credit amount.
const Scale = 3

var Categories = []string{CategoryVacation, CategorySick}

type Balance struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_credit_balances_owner"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_credit_balances_owner"`
	Category   string          `gorm:"type:varchar(20);not null;uniqueIndex:ux_credit_balances_owner"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Balance) TableName() string { return "credit_balances" }

// Entry is one movement on a balance. Reference is unique so a movement is never applied twice.
type Entry struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_credit_entries_owner"`
	EmployeeID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_credit_entries_owner"`
	Category     string          `gorm:"type:varchar(20);not null;index:idx_credit_entries_owner"`
	Delta        decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Reason       string          `gorm:"type:varchar(20);not null"`
	Reference    string          `gorm:"type:varchar(120);not null;uniqueIndex"`
	Note         string          `gorm:"type:text"`
	CreatedBy    *uuid.UUID      `gorm:"type:uuid"`

	CreatedAt time.Time
}

func (Entry) TableName() string { return "credit_entries" }

func NormalizeCategory(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Format renders an amount with exactly Scale fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// DaysToCredit is the credit a leave of n days consumes, 1.000 per day.
func DaysToCredit(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n)).Round(Scale)
}
