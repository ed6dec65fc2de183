// Package model defines the summary types shared by renderers.
package model

import "github.com/shopspring/decimal"

// BudgetStats holds the budget position and derived figures.
type BudgetStats struct {
	Budget        decimal.Decimal
	TotalExpenses decimal.Decimal
	Remaining     decimal.Decimal
	OverBudget    bool
	UsedPercent   float64 // 0-1+, 0 when no budget is set

	StrategyName  string
	StrategyTotal decimal.Decimal

	ExpenseCount int
	Kinds        []KindStats

	GoalCount  int
	GoalsTotal decimal.Decimal
}

// KindStats holds the total for one expense kind.
type KindStats struct {
	Kind         string
	Count        int
	Total        decimal.Decimal
	SharePercent float64
}
