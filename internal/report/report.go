package report

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketplan/backend/internal/types"
)

var (
	ErrInvalidMonths   = errors.New("the number of months must be at least 1")
	ErrInvalidInterval = errors.New("the report interval must be MONTHLY, QUARTERLY or YEARLY")
	ErrInvalidScope    = errors.New("the value scope must be TOTAL_RANGE or LAST_INTERVAL")
	ErrInvalidBasis    = errors.New("the date basis must be BOOKING or VALUTA")
	ErrInvalidRange    = errors.New("the end of the requested range must be after its start")
)

// Request describes a display report: a number of calendar months ending
// with the month of AsOf, bucketed by Interval.
type Request struct {
	AsOf     time.Time
	Months   int
	Interval Interval
	Scope    ValueScope
	Basis    DateBasis
}

// Report is the display-oriented output with synthetic rows included.
type Report struct {
	From       time.Time     `json:"from"`
	To         time.Time     `json:"to"`
	Periods    []PeriodRow   `json:"periods"`
	Categories []CategoryRow `json:"categories"`
}

// RawPurpose is the full posting-level detail of one purpose.
type RawPurpose struct {
	Purpose         Purpose         `json:"purpose"`
	BudgetedIncome  decimal.Decimal `json:"budgetedIncome"`
	BudgetedExpense decimal.Decimal `json:"budgetedExpense"`
	BudgetedTarget  decimal.Decimal `json:"budgetedTarget"`
	Postings        []Fragment      `json:"postings"`
}

// RawCategory nests the purposes assigned to one category.
type RawCategory struct {
	Category Category     `json:"category"`
	Purposes []RawPurpose `json:"purposes"`
}

// RawData is the export output: allocation applied, nothing summarized
// away. Purpose rows are computed independently per purpose and may
// overlap where group- and contact-level purposes cover the same
// postings; UnbudgetedPostings is the deduplicated leftover set.
type RawData struct {
	From                  time.Time           `json:"from"`
	To                    time.Time           `json:"to"`
	Categories            []RawCategory       `json:"categories"`
	UncategorizedPurposes []RawPurpose        `json:"uncategorizedPurposes"`
	UnbudgetedPostings    []UnbudgetedPosting `json:"unbudgetedPostings"`
}

// BuildReport produces the period and category tables for the request.
// Category and unbudgeted figures come from the deduplicated allocation
// so that attributed and unbudgeted amounts add up to the range total.
func BuildReport(s *Snapshot, req Request) (Report, error) {
	if req.Months < 1 {
		return Report{}, ErrInvalidMonths
	}

	if _, ok := req.Interval.Months(); !ok {
		return Report{}, ErrInvalidInterval
	}

	if req.Scope != ScopeTotalRange && req.Scope != ScopeLastInterval {
		return Report{}, ErrInvalidScope
	}

	if err := validBasis(req.Basis); err != nil {
		return Report{}, err
	}

	end := types.MonthOf(req.AsOf).AddDate(0, 1)
	r := Range{From: end.AddDate(0, -req.Months).First(), To: end.First()}

	periods := s.buildPeriodRows(r, req.Interval, req.Basis)

	actuals := r
	if req.Scope == ScopeLastInterval && len(periods) > 0 {
		last := periods[len(periods)-1]
		actuals = Range{From: last.Start, To: last.End}
	}

	allocations, unbudgeted := AllocateDeduplicated(s, r, actuals, req.Basis)

	return Report{
		From:       r.From,
		To:         r.To,
		Periods:    periods,
		Categories: s.buildCategoryRows(allocations, unbudgeted, r),
	}, nil
}

// BuildRawData produces the posting-level export for [from, to).
func BuildRawData(s *Snapshot, from, to time.Time, basis DateBasis) (RawData, error) {
	if !to.After(from) {
		return RawData{}, ErrInvalidRange
	}

	if err := validBasis(basis); err != nil {
		return RawData{}, err
	}

	r := Range{From: from, To: to}
	allocations := AllocateIndependent(s, r, r, basis)
	_, unbudgeted := AllocateDeduplicated(s, r, r, basis)

	byCategory := make(map[uuid.UUID][]RawPurpose)
	for _, a := range allocations {
		byCategory[a.Purpose.CategoryID] = append(byCategory[a.Purpose.CategoryID], RawPurpose{
			Purpose:         a.Purpose,
			BudgetedIncome:  a.BudgetedIncome,
			BudgetedExpense: a.BudgetedExpense,
			BudgetedTarget:  a.BudgetedTarget(),
			Postings:        a.Postings,
		})
	}

	data := RawData{
		From:               from,
		To:                 to,
		UnbudgetedPostings: unbudgeted,
	}

	for _, c := range s.Categories {
		data.Categories = append(data.Categories, RawCategory{
			Category: c,
			Purposes: byCategory[c.ID],
		})
	}

	data.UncategorizedPurposes = byCategory[uuid.Nil]

	return data, nil
}

// BuildMonthlyKPI produces the KPI vector for the month of asOf.
func BuildMonthlyKPI(s *Snapshot, asOf time.Time, basis DateBasis) (KPI, error) {
	if err := validBasis(basis); err != nil {
		return KPI{}, err
	}

	return s.computeKPI(types.MonthOf(asOf), basis), nil
}

func validBasis(basis DateBasis) error {
	if basis != BasisBooking && basis != BasisValuta {
		return ErrInvalidBasis
	}

	return nil
}
