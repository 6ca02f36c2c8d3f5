package report

import (
	"github.com/shopspring/decimal"

	"github.com/pocketplan/backend/internal/types"
)

// KPI is the monthly key figure vector. Expense figures are absolute
// magnitudes, results are signed (income minus expense).
type KPI struct {
	Month types.Month `json:"month"`

	PlannedIncome  decimal.Decimal `json:"plannedIncome"`
	PlannedExpense decimal.Decimal `json:"plannedExpense"`
	PlannedResult  decimal.Decimal `json:"plannedResult"`

	BudgetedRealizedIncome  decimal.Decimal `json:"budgetedRealizedIncome"`
	BudgetedRealizedExpense decimal.Decimal `json:"budgetedRealizedExpense"`

	UnbudgetedIncome  decimal.Decimal `json:"unbudgetedIncome"`
	UnbudgetedExpense decimal.Decimal `json:"unbudgetedExpense"`

	ActualIncome  decimal.Decimal `json:"actualIncome"`
	ActualExpense decimal.Decimal `json:"actualExpense"`
	ActualResult  decimal.Decimal `json:"actualResult"`

	RemainingPlannedIncome  decimal.Decimal `json:"remainingPlannedIncome"`
	RemainingPlannedExpense decimal.Decimal `json:"remainingPlannedExpense"`

	ExpectedIncome  decimal.Decimal `json:"expectedIncome"`
	ExpectedExpense decimal.Decimal `json:"expectedExpense"`
	ExpectedResult  decimal.Decimal `json:"expectedResult"`
}

// computeKPI derives the KPI vector for one month from the deduplicated
// allocation of that month.
func (s *Snapshot) computeKPI(month types.Month, basis DateBasis) KPI {
	r := Range{From: month.First(), To: month.AddDate(0, 1).First()}

	allocations, unbudgeted := AllocateDeduplicated(s, r, r, basis)

	kpi := KPI{
		Month:                   month,
		PlannedIncome:           decimal.Zero,
		PlannedExpense:          decimal.Zero,
		BudgetedRealizedIncome:  decimal.Zero,
		BudgetedRealizedExpense: decimal.Zero,
		UnbudgetedIncome:        decimal.Zero,
		UnbudgetedExpense:       decimal.Zero,
	}

	for _, a := range allocations {
		kpi.PlannedIncome = kpi.PlannedIncome.Add(a.BudgetedIncome)
		kpi.PlannedExpense = kpi.PlannedExpense.Add(a.BudgetedExpense.Neg())
		kpi.BudgetedRealizedIncome = kpi.BudgetedRealizedIncome.Add(a.RealizedIncome)
		kpi.BudgetedRealizedExpense = kpi.BudgetedRealizedExpense.Add(a.RealizedExpense)
	}

	for _, u := range unbudgeted {
		if u.Amount.IsPositive() {
			kpi.UnbudgetedIncome = kpi.UnbudgetedIncome.Add(u.Amount)
		} else {
			kpi.UnbudgetedExpense = kpi.UnbudgetedExpense.Add(u.Amount.Neg())
		}
	}

	kpi.ActualIncome = kpi.BudgetedRealizedIncome.Add(kpi.UnbudgetedIncome)
	kpi.ActualExpense = kpi.BudgetedRealizedExpense.Add(kpi.UnbudgetedExpense)
	kpi.ActualResult = kpi.ActualIncome.Sub(kpi.ActualExpense)

	kpi.RemainingPlannedIncome = kpi.PlannedIncome.Sub(kpi.BudgetedRealizedIncome)
	kpi.RemainingPlannedExpense = kpi.PlannedExpense.Sub(kpi.BudgetedRealizedExpense)

	kpi.ExpectedIncome = kpi.ActualIncome
	kpi.ExpectedExpense = kpi.ActualExpense.Add(kpi.RemainingPlannedExpense)
	kpi.ExpectedResult = kpi.ExpectedIncome.Sub(kpi.ExpectedExpense)

	kpi.PlannedResult = kpi.PlannedIncome.Sub(kpi.PlannedExpense)

	return kpi
}
