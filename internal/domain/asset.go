package domain

import (
	"github.com/shopspring/decimal"
)

// Asset represents a single tracked financial account with its own growth
// and fee parameters. The engine works on copies; the snapshot handed in by
// the caller is never mutated.
type Asset struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Balance         decimal.Decimal `json:"balance"`
	MonthlyDeposit  decimal.Decimal `json:"monthly_deposit"`
	EmployerDeposit decimal.Decimal `json:"employer_deposit"`

	// AnnualReturnRate is a fraction, e.g. 0.05 for 5% per year.
	AnnualReturnRate decimal.Decimal `json:"annual_return_rate"`

	// FeeOnBalanceRate is an annual fraction deducted from the balance,
	// FeeOnDepositRate a fraction deducted from each gross deposit.
	FeeOnBalanceRate decimal.Decimal `json:"fee_on_balance_rate"`
	FeeOnDepositRate decimal.Decimal `json:"fee_on_deposit_rate"`

	Currency string `json:"currency,omitempty"`
}

// Clone returns an independent working copy of the asset.
func (a Asset) Clone() Asset {
	return a
}

// TotalBalance sums the balances of a slice of assets.
func TotalBalance(assets []Asset) decimal.Decimal {
	total := decimal.Zero
	for i := range assets {
		total = total.Add(assets[i].Balance)
	}
	return total
}
