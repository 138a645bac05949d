package valuation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

func entryWithTotal(v string) domain.ValuationEntry {
	return domain.ValuationEntry{TotalValue: decimal.RequireFromString(v)}
}

func TestSumTotalValue(t *testing.T) {
	entries := []domain.ValuationEntry{
		entryWithTotal("735000"),
		entryWithTotal("12500.50"),
		entryWithTotal("0"),
	}
	assert.True(t, decimal.RequireFromString("747500.50").Equal(SumTotalValue(entries)))

	assert.True(t, decimal.Zero.Equal(SumTotalValue(nil)))
}

func TestNetValue(t *testing.T) {
	total := decimal.RequireFromString("100000")
	assert.True(t, decimal.RequireFromString("85000").Equal(NetValue(total, decimal.RequireFromString("15000"))))

	// expenditure above recovered value goes negative, it is not clamped
	assert.True(t, decimal.RequireFromString("-20000").Equal(NetValue(total, decimal.RequireFromString("120000"))))
}

func TestValidateShareInputs(t *testing.T) {
	assert.NoError(t, ValidateShareInputs(100, 50, 2, decimal.RequireFromString("2450")))
	assert.Error(t, ValidateShareInputs(-1, 0, 1, decimal.Zero))
	assert.Error(t, ValidateShareInputs(0, -5, 1, decimal.Zero))
	assert.Error(t, ValidateShareInputs(0, 0, 0, decimal.Zero))
	assert.Error(t, ValidateShareInputs(0, 0, 1, decimal.RequireFromString("-1")))
}
