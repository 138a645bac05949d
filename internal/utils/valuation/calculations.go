// Package valuation holds the share arithmetic used by the valuation service.
// All money values are decimals; share counts stay integral.
package valuation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// SumTotalValue adds up the total value of every entry in the list.
func SumTotalValue(entries []domain.ValuationEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.TotalValue)
	}
	return total
}

// NetValue subtracts recovery expenditure from the aggregate share value.
// The result may be negative when expenses exceed the recovered value.
func NetValue(totalShareValue decimal.Decimal, expenditure decimal.Decimal) decimal.Decimal {
	return totalShareValue.Sub(expenditure)
}

// ValidateShareInputs rejects share counts and prices that cannot occur on a
// real holding. Split multiples below one would silently shrink holdings.
func ValidateShareInputs(originalShares, bonusShares, splitMultiple int64, valuePerShare decimal.Decimal) error {
	if originalShares < 0 {
		return fmt.Errorf("original shares cannot be negative: %d", originalShares)
	}
	if bonusShares < 0 {
		return fmt.Errorf("bonus shares cannot be negative: %d", bonusShares)
	}
	if splitMultiple < 1 {
		return fmt.Errorf("split multiple must be at least 1: %d", splitMultiple)
	}
	if valuePerShare.IsNegative() {
		return fmt.Errorf("value per share cannot be negative: %s", valuePerShare.String())
	}
	return nil
}
