package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketplan/backend/internal/types"
)

// RowType discriminates the synthetic rows of a report from plain
// category data rows.
type RowType string

const (
	RowData       RowType = "DATA"
	RowSum        RowType = "SUM"
	RowUnbudgeted RowType = "UNBUDGETED"
	RowResult     RowType = "RESULT"
)

// UnassignedCategoryName labels the synthetic category that collects
// purposes without a category assignment.
const UnassignedCategoryName = "(Unassigned)"

// CategoryRow is one row of the category table of a report.
type CategoryRow struct {
	Type       RowType         `json:"type"`
	CategoryID uuid.UUID       `json:"categoryId,omitempty"`
	Name       string          `json:"name"`
	Budget     decimal.Decimal `json:"budget"`
	Actual     decimal.Decimal `json:"actual"`
	Delta      decimal.Decimal `json:"delta"`
	DeltaPct   decimal.Decimal `json:"deltaPct"`
}

// PeriodRow is one period bucket of a report.
type PeriodRow struct {
	Start  time.Time       `json:"start"` // inclusive
	End    time.Time       `json:"end"`   // exclusive
	Budget decimal.Decimal `json:"budget"`
	Actual decimal.Decimal `json:"actual"`
	Delta  decimal.Decimal `json:"delta"`
}

// newCategoryRow derives Delta and DeltaPct from budget and actual.
// DeltaPct is zero for a zero budget, never a division error.
func newCategoryRow(rowType RowType, id uuid.UUID, name string, budget, actual decimal.Decimal) CategoryRow {
	delta := actual.Sub(budget)

	deltaPct := decimal.Zero
	if !budget.IsZero() {
		deltaPct = delta.Div(budget)
	}

	return CategoryRow{
		Type:       rowType,
		CategoryID: id,
		Name:       name,
		Budget:     budget,
		Actual:     actual,
		Delta:      delta,
		DeltaPct:   deltaPct,
	}
}

// buildCategoryRows rolls purpose allocations into category rows and
// appends the synthetic Sum, Unbudgeted and Result rows, in that order.
//
// A category's budget is the sum of its purposes' budget targets plus
// its own directly attached rules; its actual is the sum of the
// purposes' attributed fragments. Purposes without a category are
// grouped under "(Unassigned)", emitted only when such purposes exist.
func (s *Snapshot) buildCategoryRows(allocations []PurposeAllocation, unbudgeted []UnbudgetedPosting, budgets Range) []CategoryRow {
	overrides := s.overrideIndex()

	byCategory := make(map[uuid.UUID][]PurposeAllocation, len(s.Categories))
	for _, a := range allocations {
		byCategory[a.Purpose.CategoryID] = append(byCategory[a.Purpose.CategoryID], a)
	}

	var rows []CategoryRow
	sumBudget, sumActual := decimal.Zero, decimal.Zero

	appendRow := func(id uuid.UUID, name string, allocs []PurposeAllocation, ownRules []Rule) {
		budget := sumOccurrences(expandRules(ownRules, overrides, budgets))
		actual := decimal.Zero
		for _, a := range allocs {
			budget = budget.Add(a.BudgetedTarget())
			actual = actual.Add(a.Actual())
		}

		rows = append(rows, newCategoryRow(RowData, id, name, budget, actual))
		sumBudget = sumBudget.Add(budget)
		sumActual = sumActual.Add(actual)
	}

	for _, c := range s.Categories {
		appendRow(c.ID, c.Name, byCategory[c.ID], s.categoryRules(c.ID))
	}

	if unassigned := byCategory[uuid.Nil]; len(unassigned) > 0 {
		appendRow(uuid.Nil, UnassignedCategoryName, unassigned, nil)
	}

	rows = append(rows, newCategoryRow(RowSum, uuid.Nil, "Sum", sumBudget, sumActual))

	unbudgetedActual := decimal.Zero
	for _, u := range unbudgeted {
		unbudgetedActual = unbudgetedActual.Add(u.Amount)
	}

	if len(unbudgeted) > 0 {
		rows = append(rows, newCategoryRow(RowUnbudgeted, uuid.Nil, "Unbudgeted", decimal.Zero, unbudgetedActual))
	}

	rows = append(rows, newCategoryRow(RowResult, uuid.Nil, "Result", sumBudget, sumActual.Add(unbudgetedActual)))

	return rows
}

// buildPeriodRows buckets the range into calendar-aligned intervals.
// Bucket budgets sum the expected occurrences of every rule, purpose-
// and category-level; bucket actuals are the deduplicated posting
// totals. Buckets are clipped to the requested range.
func (s *Snapshot) buildPeriodRows(r Range, interval Interval, basis DateBasis) []PeriodRow {
	stride, ok := interval.Months()
	if !ok {
		return nil
	}

	overrides := s.overrideIndex()

	var rows []PeriodRow
	for start := types.MonthOf(r.From).AlignDown(stride); start.First().Before(r.To); start = start.AddDate(0, stride) {
		bucket := Range{From: start.First(), To: start.AddDate(0, stride).First()}
		if bucket.From.Before(r.From) {
			bucket.From = r.From
		}
		if bucket.To.After(r.To) {
			bucket.To = r.To
		}

		budget := sumOccurrences(expandRules(s.Rules, overrides, bucket))
		actual := s.actualTotal(bucket, basis)

		rows = append(rows, PeriodRow{
			Start:  bucket.From,
			End:    bucket.To,
			Budget: budget,
			Actual: actual,
			Delta:  actual.Sub(budget),
		})
	}

	return rows
}
