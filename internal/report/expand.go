package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketplan/backend/internal/types"
)

// Occurrence is one dated expected amount generated from a rule.
type Occurrence struct {
	RuleID uuid.UUID
	Date   time.Time
	Amount decimal.Decimal
}

// ExpandRule generates the expected occurrences of a rule inside the
// range, applying the snapshot's overrides.
func (s *Snapshot) ExpandRule(rule Rule, r Range) []Occurrence {
	return expandRule(rule, s.overrideIndex(), r)
}

// expandRule generates the occurrences of a rule inside the half-open
// range. Occurrences fall on the day of month of the rule's start date,
// clamped to the last day of shorter months. Overrides replace the
// amount of the matching month for purpose-level rules, never the date.
//
// Rules with an invalid cadence or a start date after the end date are
// assumed to be rejected at the boundary already and expand to nothing.
func expandRule(rule Rule, overrides map[overrideKey]decimal.Decimal, r Range) []Occurrence {
	stride := rule.strideMonths()
	if stride < 1 {
		return nil
	}

	if rule.EndDate != nil && rule.StartDate.After(*rule.EndDate) {
		return nil
	}

	day := rule.StartDate.Day()
	start := types.MonthOf(rule.StartDate)

	var occurrences []Occurrence
	for i := 0; ; i++ {
		month := start.AddDate(0, i*stride)
		date := month.Day(day)

		if !date.Before(r.To) {
			break
		}

		if rule.EndDate != nil && date.After(*rule.EndDate) {
			break
		}

		if date.Before(r.From) {
			continue
		}

		amount := rule.Amount
		if rule.PurposeID != uuid.Nil {
			if override, ok := overrides[overrideKey{PurposeID: rule.PurposeID, Month: month}]; ok {
				amount = override
			}
		}

		occurrences = append(occurrences, Occurrence{
			RuleID: rule.ID,
			Date:   date,
			Amount: amount,
		})
	}

	return occurrences
}

// strideMonths returns the cadence of the rule in months, 0 when the
// rule is malformed.
func (r Rule) strideMonths() int {
	if r.Interval == IntervalCustom {
		return r.CustomMonths
	}

	stride, ok := r.Interval.Months()
	if !ok {
		return 0
	}

	return stride
}

// expandRules expands a set of rules over the range and returns all
// occurrences in rule order.
func expandRules(rules []Rule, overrides map[overrideKey]decimal.Decimal, r Range) []Occurrence {
	var occurrences []Occurrence
	for _, rule := range rules {
		occurrences = append(occurrences, expandRule(rule, overrides, r)...)
	}

	return occurrences
}

// sumOccurrences adds up the signed amounts of all occurrences.
func sumOccurrences(occurrences []Occurrence) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range occurrences {
		sum = sum.Add(o.Amount)
	}

	return sum
}

// splitPools splits occurrences into the income pool magnitude (sum of
// positive amounts) and the expense pool magnitude (absolute sum of
// negative amounts). Both pools are tracked independently.
func splitPools(occurrences []Occurrence) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, o := range occurrences {
		if o.Amount.IsPositive() {
			income = income.Add(o.Amount)
		} else {
			expense = expense.Add(o.Amount.Neg())
		}
	}

	return income, expense
}
