package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// moneyTolerance is the rounding epsilon shared by the plan-total, paid-off
// and overpayment checks.
var moneyTolerance = decimal.NewFromFloat(0.01)

var hundred = decimal.NewFromInt(100)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func fmtDate(t time.Time) string { return t.Format(dateLayout) }

func fmtDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// decToFloat converts for xlsx cell values; reporting output tolerates
// float64 precision.
func decToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func hasRole(roles []string, wanted ...string) bool {
	for _, r := range roles {
		for _, w := range wanted {
			if r == w {
				return true
			}
		}
	}
	return false
}
