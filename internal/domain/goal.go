package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a stated savings target, optionally tied to one asset and a date.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    *time.Time      `json:"target_date,omitempty"`
	LinkedAssetID string          `json:"linked_asset_id,omitempty"`
}

// GoalAnalysis reports how one goal fares under a produced timeline.
type GoalAnalysis struct {
	GoalID          string          `json:"goal_id"`
	Name            string          `json:"name"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	ProjectedAmount decimal.Decimal `json:"projected_amount"`
	IsAchievable    bool            `json:"is_achievable"`

	// AchievementDate is the first simulated month whose balance crosses
	// the target; nil when the goal is out of reach over the horizon.
	AchievementDate *time.Time `json:"achievement_date,omitempty"`

	Shortfall *decimal.Decimal `json:"shortfall,omitempty"`

	// RequiredExtraMonthly is the smallest extra monthly contribution, in
	// whole currency units, that closes the gap by the target date. It is
	// directed at the linked asset when one is set.
	RequiredExtraMonthly *decimal.Decimal `json:"required_extra_monthly,omitempty"`
}
