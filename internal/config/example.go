package config

// ExampleScenario is a complete starter scenario file: two earners, two
// funds, one child with a tuition template, and a savings goal.
const ExampleScenario = `scenario:
  start_date: 2026-01-01
  end_date: 2046-01-01
  inflation_rate: 0.025
  include_planned_children: false
  extra_monthly_deposit: 0
  extra_deposits:
    - date: 2027-06-01
      amount: 20000
      asset_id: brokerage
  withdrawal_events: []
  yearly_expenses:
    - name: home insurance
      amount: 3600
      month: 3
      adjust_for_inflation: true

assets:
  - id: pension
    name: Pension fund
    balance: 250000
    monthly_deposit: 1500
    employer_deposit: 1000
    annual_return_rate: 0.05
    fee_on_balance_rate: 0.005
    fee_on_deposit_rate: 0.01
  - id: brokerage
    name: Brokerage account
    balance: 80000
    monthly_deposit: 500
    employer_deposit: 0
    annual_return_rate: 0.07
    fee_on_balance_rate: 0.002
    fee_on_deposit_rate: 0

members:
  - id: noa
    name: Noa
    relationship: self
    birth_date: 1988-04-12
  - id: daniel
    name: Daniel
    relationship: partner
    birth_date: 1987-09-03
  - id: alma
    name: Alma
    relationship: child
    birth_date: 2020-02-20
    expense_template_id: standard-child

incomes:
  - member_id: noa
    amount: 18000
    effective_date: 2024-01-01
  - member_id: daniel
    amount: 15000
    effective_date: 2023-06-01

goals:
  - id: house
    name: House down payment
    target_amount: 500000
    current_amount: 80000
    target_date: 2031-01-01
    linked_asset_id: brokerage

templates:
  - id: standard-child
    name: Standard child expenses
    items:
      - name: school supplies
        trigger_type: age_years
        trigger_value: 6
        trigger_value_end: 18
        amount: 1200
        frequency: yearly
      - name: driving lessons
        trigger_type: age_years
        trigger_value: 17
        amount: 6000
        frequency: once
      - name: celebration
        trigger_type: event
        amount: 25000
        frequency: once
`
