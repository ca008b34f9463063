package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/famplan/planner/internal/domain"
)

var twelve = decimal.NewFromInt(12)

// MonthFlows records what one asset did in one simulated month.
type MonthFlows struct {
	// Deposit is the net deposit credited to the balance, after the
	// deposit fee.
	Deposit decimal.Decimal

	// GrossReturn is the return applied to the post-deposit balance.
	GrossReturn decimal.Decimal

	// Fees is the deposit fee plus the balance fee for the month.
	Fees decimal.Decimal

	// Withdrawal is the amount actually taken. When the request exceeded
	// the available balance it is clamped and WithdrawalClamped is set.
	Withdrawal        decimal.Decimal
	WithdrawalClamped bool
}

// AdvanceMonth mutates the asset's working copy by one month and returns the
// flows. The order of operations is fixed, it determines the fee and
// rounding semantics:
//
//  1. gross deposit = monthly + employer + extra
//  2. deposit fee comes off the gross deposit
//  3. the withdrawal is taken, clamped to the available balance
//  4. the net deposit is credited
//  5. the monthly return (annual/12) applies to the post-deposit balance
//  6. the balance fee (annual/12) comes off the same balance
//  7. new balance = balance + return - balance fee
func AdvanceMonth(asset *domain.Asset, extraDeposit, extraWithdrawal decimal.Decimal) MonthFlows {
	var flows MonthFlows

	gross := asset.MonthlyDeposit.Add(asset.EmployerDeposit).Add(extraDeposit)
	depositFee := gross.Mul(asset.FeeOnDepositRate)
	netDeposit := gross.Sub(depositFee)

	withdrawal := extraWithdrawal
	if withdrawal.GreaterThan(asset.Balance) {
		withdrawal = asset.Balance
		flows.WithdrawalClamped = true
	}
	balance := asset.Balance.Sub(withdrawal)

	balance = balance.Add(netDeposit)

	monthlyRate := asset.AnnualReturnRate.Div(twelve)
	grossReturn := balance.Mul(monthlyRate)
	balanceFee := balance.Mul(asset.FeeOnBalanceRate).Div(twelve)

	asset.Balance = balance.Add(grossReturn).Sub(balanceFee)

	flows.Deposit = netDeposit
	flows.GrossReturn = grossReturn
	flows.Fees = depositFee.Add(balanceFee)
	flows.Withdrawal = withdrawal
	return flows
}
