// Package report implements the budget reconciliation and aggregation
// engine. It is purely computational: all inputs are collected into a
// read-only Snapshot before any calculation runs, no I/O happens inside
// the algorithms and no input is ever mutated.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketplan/backend/internal/types"
)

// SourceType determines which postings a purpose draws its actual
// amounts from.
type SourceType string

const (
	SourceContact      SourceType = "CONTACT"
	SourceContactGroup SourceType = "CONTACT_GROUP"
	SourceSavingsPlan  SourceType = "SAVINGS_PLAN"
)

// PostingKind is the type of ledger entry a posting represents.
type PostingKind string

const (
	PostingContact     PostingKind = "CONTACT"
	PostingSavingsPlan PostingKind = "SAVINGS_PLAN"
	PostingOther       PostingKind = "OTHER"
)

// DateBasis selects which date field places a posting in a period.
type DateBasis string

const (
	BasisBooking DateBasis = "BOOKING"
	BasisValuta  DateBasis = "VALUTA"
)

// ValueScope controls which postings feed the actual figures of a report.
type ValueScope string

const (
	// ScopeTotalRange uses all postings of the requested range.
	ScopeTotalRange ValueScope = "TOTAL_RANGE"
	// ScopeLastInterval restricts actual figures to the most recent
	// period bucket, budgets stay range-wide.
	ScopeLastInterval ValueScope = "LAST_INTERVAL"
)

// Interval is the cadence of a budget rule or of report period buckets.
type Interval string

const (
	IntervalMonthly   Interval = "MONTHLY"
	IntervalQuarterly Interval = "QUARTERLY"
	IntervalYearly    Interval = "YEARLY"
	// IntervalCustom strides by Rule.CustomMonths months. Only valid
	// on rules, not as a report bucket size.
	IntervalCustom Interval = "CUSTOM"
)

// Months returns the stride of the interval in months. The second return
// value is false for unknown intervals and for IntervalCustom, whose
// stride lives on the rule.
func (i Interval) Months() (int, bool) {
	switch i {
	case IntervalMonthly:
		return 1, true
	case IntervalQuarterly:
		return 3, true
	case IntervalYearly:
		return 12, true
	}

	return 0, false
}

// Category is a group of purposes.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Purpose is a budgeted target tied to one source entity.
type Purpose struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	SourceType SourceType `json:"sourceType"`
	SourceID   uuid.UUID  `json:"sourceId"`
	CategoryID uuid.UUID  `json:"categoryId"` // uuid.Nil for uncategorized purposes
}

// Rule is a recurring expected income (positive) or expense (negative).
// Exactly one of PurposeID and CategoryID is set.
type Rule struct {
	ID           uuid.UUID       `json:"id"`
	PurposeID    uuid.UUID       `json:"purposeId"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	Amount       decimal.Decimal `json:"amount"`
	Interval     Interval        `json:"interval"`
	CustomMonths int             `json:"customMonths"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      *time.Time      `json:"endDate"` // inclusive, nil for open-ended rules
}

// Override replaces the expected amount of a purpose's rules for one month.
type Override struct {
	PurposeID uuid.UUID       `json:"purposeId"`
	Month     types.Month     `json:"month"`
	Amount    decimal.Decimal `json:"amount"`
}

// Posting is an actual ledger entry. Postings are read-only to the engine.
type Posting struct {
	ID            uuid.UUID       `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	BookingDate   time.Time       `json:"bookingDate"`
	ValutaDate    time.Time       `json:"valutaDate"`
	Kind          PostingKind     `json:"kind"`
	ContactID     uuid.UUID       `json:"contactId"`
	SavingsPlanID uuid.UUID       `json:"savingsPlanId"`
	Description   string          `json:"description"`
	Counterparty  string          `json:"counterparty"`
}

// Date returns the posting date for the given basis.
func (p Posting) Date(basis DateBasis) time.Time {
	if basis == BasisValuta {
		return p.ValutaDate
	}

	return p.BookingDate
}

// Snapshot is the full input of one report request: every budget entity
// of a single owner plus the postings of the requested range. The slice
// order of Purposes and Postings is the stable order used for
// deterministic allocation.
type Snapshot struct {
	Categories []Category
	Purposes   []Purpose
	Rules      []Rule
	Overrides  []Override
	Postings   []Posting

	// GroupMembers maps a contact group to the contacts that currently
	// belong to it. Membership is resolved when the snapshot is loaded,
	// not as of the posting dates.
	GroupMembers map[uuid.UUID][]uuid.UUID
}

// Range is a half-open date range [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls into the range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// overrideKey indexes overrides by purpose and month.
type overrideKey struct {
	PurposeID uuid.UUID
	Month     types.Month
}

// overrideIndex builds the lookup used during rule expansion.
func (s *Snapshot) overrideIndex() map[overrideKey]decimal.Decimal {
	idx := make(map[overrideKey]decimal.Decimal, len(s.Overrides))
	for _, o := range s.Overrides {
		idx[overrideKey{PurposeID: o.PurposeID, Month: o.Month}] = o.Amount
	}

	return idx
}

// categoryName resolves a category id to its name, empty for uuid.Nil
// and for categories missing from the snapshot.
func (s *Snapshot) categoryName(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}

	for _, c := range s.Categories {
		if c.ID == id {
			return c.Name
		}
	}

	return ""
}

// purposeRules returns the rules belonging to the purpose.
func (s *Snapshot) purposeRules(id uuid.UUID) []Rule {
	var rules []Rule
	for _, r := range s.Rules {
		if r.PurposeID == id {
			rules = append(rules, r)
		}
	}

	return rules
}

// categoryRules returns the rules attached directly to the category.
func (s *Snapshot) categoryRules(id uuid.UUID) []Rule {
	var rules []Rule
	for _, r := range s.Rules {
		if r.CategoryID == id && r.PurposeID == uuid.Nil {
			rules = append(rules, r)
		}
	}

	return rules
}
