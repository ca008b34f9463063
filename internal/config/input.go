package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/famplan/planner/internal/domain"
	money "github.com/famplan/planner/pkg/decimal"
)

// ScenarioFile is the on-disk YAML schema: one document holding the
// scenario parameters plus the asset, family, goal and template snapshots
// the simulation runs against.
type ScenarioFile struct {
	Scenario  ScenarioConfig   `yaml:"scenario"`
	Assets    []AssetConfig    `yaml:"assets"`
	Members   []MemberConfig   `yaml:"members"`
	Incomes   []IncomeConfig   `yaml:"incomes,omitempty"`
	Goals     []GoalConfig     `yaml:"goals,omitempty"`
	Templates []TemplateConfig `yaml:"templates,omitempty"`
}

// ScenarioConfig mirrors domain.SimulationParams.
type ScenarioConfig struct {
	StartDate              time.Time             `yaml:"start_date"`
	EndDate                *time.Time            `yaml:"end_date,omitempty"`
	EndAge                 *int                  `yaml:"end_age,omitempty"`
	InflationRate          money.Money           `yaml:"inflation_rate"`
	IncludePlannedChildren bool                  `yaml:"include_planned_children"`
	ExtraMonthlyDeposit    money.Money           `yaml:"extra_monthly_deposit"`
	ExtraDeposits          []FlowConfig          `yaml:"extra_deposits,omitempty"`
	WithdrawalEvents       []FlowConfig          `yaml:"withdrawal_events,omitempty"`
	YearlyExpenses         []YearlyExpenseConfig `yaml:"yearly_expenses,omitempty"`
}

type FlowConfig struct {
	Date    time.Time   `yaml:"date"`
	Amount  money.Money `yaml:"amount"`
	AssetID string      `yaml:"asset_id,omitempty"`
}

type YearlyExpenseConfig struct {
	Name               string      `yaml:"name"`
	Amount             money.Money `yaml:"amount"`
	Month              int         `yaml:"month"`
	AdjustForInflation bool        `yaml:"adjust_for_inflation"`
}

type AssetConfig struct {
	ID               string      `yaml:"id"`
	Name             string      `yaml:"name"`
	Balance          money.Money `yaml:"balance"`
	MonthlyDeposit   money.Money `yaml:"monthly_deposit"`
	EmployerDeposit  money.Money `yaml:"employer_deposit"`
	AnnualReturnRate money.Money `yaml:"annual_return_rate"`
	FeeOnBalanceRate money.Money `yaml:"fee_on_balance_rate"`
	FeeOnDepositRate money.Money `yaml:"fee_on_deposit_rate"`
	Currency         string      `yaml:"currency,omitempty"`
}

type MemberConfig struct {
	ID                string     `yaml:"id"`
	Name              string     `yaml:"name"`
	Relationship      string     `yaml:"relationship"`
	BirthDate         time.Time  `yaml:"birth_date,omitempty"`
	ExpectedBirthDate *time.Time `yaml:"expected_birth_date,omitempty"`
	ExpenseTemplateID string     `yaml:"expense_template_id,omitempty"`
}

type IncomeConfig struct {
	MemberID      string      `yaml:"member_id"`
	Amount        money.Money `yaml:"amount"`
	EffectiveDate time.Time   `yaml:"effective_date"`
}

type GoalConfig struct {
	ID            string      `yaml:"id"`
	Name          string      `yaml:"name"`
	TargetAmount  money.Money `yaml:"target_amount"`
	CurrentAmount money.Money `yaml:"current_amount"`
	TargetDate    *time.Time  `yaml:"target_date,omitempty"`
	LinkedAssetID string      `yaml:"linked_asset_id,omitempty"`
}

type TemplateConfig struct {
	ID    string       `yaml:"id"`
	Name  string       `yaml:"name"`
	Items []ItemConfig `yaml:"items"`
}

type ItemConfig struct {
	Name            string      `yaml:"name"`
	TriggerType     string      `yaml:"trigger_type"`
	TriggerValue    int         `yaml:"trigger_value"`
	TriggerValueEnd *int        `yaml:"trigger_value_end,omitempty"`
	Amount          money.Money `yaml:"amount"`
	Frequency       string      `yaml:"frequency"`
	EventDate       *time.Time  `yaml:"event_date,omitempty"`
}

// InputParser loads scenario files. Structural problems surface here;
// semantic validation belongs to the engine, which checks every input
// before simulating.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile reads and parses one scenario YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse parses scenario YAML.
func (ip *InputParser) Parse(data []byte) (*ScenarioFile, error) {
	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	if file.Scenario.StartDate.IsZero() {
		return nil, fmt.Errorf("scenario.start_date is required")
	}
	if len(file.Assets) == 0 {
		return nil, fmt.Errorf("at least one asset is required")
	}
	return &file, nil
}

// Params converts the file's scenario block to engine parameters.
func (f *ScenarioFile) Params() domain.SimulationParams {
	params := domain.SimulationParams{
		StartDate:              f.Scenario.StartDate,
		EndDate:                f.Scenario.EndDate,
		EndAge:                 f.Scenario.EndAge,
		InflationRate:          f.Scenario.InflationRate.Decimal,
		IncludePlannedChildren: f.Scenario.IncludePlannedChildren,
		ExtraMonthlyDeposit:    f.Scenario.ExtraMonthlyDeposit.Decimal,
	}
	for _, flow := range f.Scenario.ExtraDeposits {
		params.ExtraDeposits = append(params.ExtraDeposits, domain.ScheduledFlow{
			Date: flow.Date, Amount: flow.Amount.Decimal, AssetID: flow.AssetID,
		})
	}
	for _, flow := range f.Scenario.WithdrawalEvents {
		params.WithdrawalEvents = append(params.WithdrawalEvents, domain.ScheduledFlow{
			Date: flow.Date, Amount: flow.Amount.Decimal, AssetID: flow.AssetID,
		})
	}
	for _, ye := range f.Scenario.YearlyExpenses {
		params.YearlyExpenses = append(params.YearlyExpenses, domain.YearlyExpense{
			Name:               ye.Name,
			Amount:             ye.Amount.Decimal,
			Month:              time.Month(ye.Month),
			AdjustForInflation: ye.AdjustForInflation,
		})
	}
	return params
}

// Snapshot converts the file's snapshot sections to the engine's input.
func (f *ScenarioFile) Snapshot() *domain.Snapshot {
	snap := &domain.Snapshot{}
	for _, a := range f.Assets {
		snap.Assets = append(snap.Assets, domain.Asset{
			ID:               a.ID,
			Name:             a.Name,
			Balance:          a.Balance.Decimal,
			MonthlyDeposit:   a.MonthlyDeposit.Decimal,
			EmployerDeposit:  a.EmployerDeposit.Decimal,
			AnnualReturnRate: a.AnnualReturnRate.Decimal,
			FeeOnBalanceRate: a.FeeOnBalanceRate.Decimal,
			FeeOnDepositRate: a.FeeOnDepositRate.Decimal,
			Currency:         a.Currency,
		})
	}
	for _, m := range f.Members {
		snap.Members = append(snap.Members, domain.FamilyMember{
			ID:                m.ID,
			Name:              m.Name,
			Relationship:      domain.Relationship(m.Relationship),
			BirthDate:         m.BirthDate,
			ExpectedBirthDate: m.ExpectedBirthDate,
			ExpenseTemplateID: m.ExpenseTemplateID,
		})
	}
	for _, rec := range f.Incomes {
		snap.Incomes = append(snap.Incomes, domain.IncomeRecord{
			MemberID:      rec.MemberID,
			Amount:        rec.Amount.Decimal,
			EffectiveDate: rec.EffectiveDate,
		})
	}
	for _, g := range f.Goals {
		snap.Goals = append(snap.Goals, domain.Goal{
			ID:            g.ID,
			Name:          g.Name,
			TargetAmount:  g.TargetAmount.Decimal,
			CurrentAmount: g.CurrentAmount.Decimal,
			TargetDate:    g.TargetDate,
			LinkedAssetID: g.LinkedAssetID,
		})
	}
	for _, t := range f.Templates {
		template := domain.ChildExpenseTemplate{ID: t.ID, Name: t.Name}
		for _, item := range t.Items {
			template.Items = append(template.Items, domain.ChildExpenseItem{
				Name:            item.Name,
				TriggerType:     domain.TriggerType(item.TriggerType),
				TriggerValue:    item.TriggerValue,
				TriggerValueEnd: item.TriggerValueEnd,
				Amount:          item.Amount.Decimal,
				Frequency:       domain.Frequency(item.Frequency),
				EventDate:       item.EventDate,
			})
		}
		snap.Templates = append(snap.Templates, template)
	}
	return snap
}
