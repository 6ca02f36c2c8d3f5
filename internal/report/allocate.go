package report

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Fragment is the part of a posting's amount attributed to a purpose's
// budget pool. For postings inside the pool this is the full amount,
// for the posting crossing the pool boundary it is the remaining pool
// capacity with the posting's sign.
type Fragment struct {
	Posting Posting         `json:"posting"`
	Amount  decimal.Decimal `json:"amount"`
}

// UnbudgetedPosting is a posting (or posting fragment) that no budget
// pool absorbed. Overruns of a known pool carry the purpose and
// category names to keep the source of the overrun traceable,
// postings no purpose covers carry neither.
type UnbudgetedPosting struct {
	Posting      Posting         `json:"posting"`
	Amount       decimal.Decimal `json:"amount"`
	PurposeName  string          `json:"purposeName,omitempty"`
	CategoryName string          `json:"categoryName,omitempty"`
}

// PurposeAllocation is the result of filling one purpose's income and
// expense pools with its matching postings.
type PurposeAllocation struct {
	Purpose Purpose `json:"purpose"`

	BudgetedIncome  decimal.Decimal `json:"budgetedIncome"`  // income pool magnitude
	BudgetedExpense decimal.Decimal `json:"budgetedExpense"` // expense pool as negative amount

	// Postings are the attributed fragments, whole or split,
	// never exceeding the pools.
	Postings []Fragment `json:"postings"`

	// Overrun contains the residual fragments and surplus postings of
	// this purpose's pools. Only filled by the independent allocation,
	// the deduplicated allocation collects leftovers globally.
	Overrun []UnbudgetedPosting `json:"-"`

	RealizedIncome  decimal.Decimal `json:"realizedIncome"`  // income pool fill level
	RealizedExpense decimal.Decimal `json:"realizedExpense"` // expense pool fill level (magnitude)
}

// BudgetedTarget is the signed sum of both pools.
func (a PurposeAllocation) BudgetedTarget() decimal.Decimal {
	return a.BudgetedIncome.Add(a.BudgetedExpense)
}

// Actual is the signed sum of all attributed fragments.
func (a PurposeAllocation) Actual() decimal.Decimal {
	sum := decimal.Zero
	for _, f := range a.Postings {
		sum = sum.Add(f.Amount)
	}

	return sum
}

// candidate is one posting offered to a pool, with the amount still
// available for attribution. The index into Snapshot.Postings doubles
// as the stable tiebreak for equal dates.
type candidate struct {
	index     int
	available decimal.Decimal
}

// fillPool fills a pool of the given magnitude with candidates in
// order. The boundary-crossing candidate is split, everything after it
// stays unconsumed. consumed maps candidate index to the attributed
// magnitude, used is the final fill level.
func fillPool(s *Snapshot, budget decimal.Decimal, candidates []candidate) (fragments []Fragment, consumed map[int]decimal.Decimal, used decimal.Decimal) {
	consumed = make(map[int]decimal.Decimal, len(candidates))
	used = decimal.Zero

	for _, c := range candidates {
		if !used.LessThan(budget) {
			break
		}

		magnitude := c.available.Abs()
		if magnitude.IsZero() {
			continue
		}

		room := budget.Sub(used)
		if magnitude.GreaterThan(room) {
			// Boundary crossed: split off exactly the remaining capacity.
			magnitude = room
		}

		amount := magnitude
		if c.available.IsNegative() {
			amount = magnitude.Neg()
		}

		fragments = append(fragments, Fragment{Posting: s.Postings[c.index], Amount: amount})
		consumed[c.index] = magnitude
		used = used.Add(magnitude)
	}

	return fragments, consumed, used
}

// poolCandidates splits the matching postings by sign and orders each
// list ascending by basis date, ties broken by snapshot order.
func (s *Snapshot) poolCandidates(indexes []int, matches func(Posting) bool, available func(int) decimal.Decimal, basis DateBasis) (positive, negative []candidate) {
	for _, i := range indexes {
		if !matches(s.Postings[i]) {
			continue
		}

		amount := available(i)
		if amount.IsZero() {
			continue
		}

		c := candidate{index: i, available: amount}
		if amount.IsPositive() {
			positive = append(positive, c)
		} else {
			negative = append(negative, c)
		}
	}

	byDate := func(a, b candidate) int {
		if cmp := a.posting(s).Date(basis).Compare(b.posting(s).Date(basis)); cmp != 0 {
			return cmp
		}

		return a.index - b.index
	}

	slices.SortStableFunc(positive, byDate)
	slices.SortStableFunc(negative, byDate)

	return positive, negative
}

func (c candidate) posting(s *Snapshot) Posting {
	return s.Postings[c.index]
}

// allocatePurpose fills both pools of one purpose. available yields the
// attributable amount per posting index, spend records what the pools
// consumed.
func (s *Snapshot) allocatePurpose(p Purpose, overrides map[overrideKey]decimal.Decimal, budgets Range, indexes []int, basis DateBasis, available func(int) decimal.Decimal, spend func(int, decimal.Decimal)) PurposeAllocation {
	income, expense := splitPools(expandRules(s.purposeRules(p.ID), overrides, budgets))

	positive, negative := s.poolCandidates(indexes, s.coverage(p), available, basis)

	incomeFragments, incomeConsumed, incomeUsed := fillPool(s, income, positive)
	expenseFragments, expenseConsumed, expenseUsed := fillPool(s, expense, negative)

	alloc := PurposeAllocation{
		Purpose:         p,
		BudgetedIncome:  income,
		BudgetedExpense: expense.Neg(),
		RealizedIncome:  incomeUsed,
		RealizedExpense: expenseUsed,
	}

	alloc.Postings = append(alloc.Postings, incomeFragments...)
	alloc.Postings = append(alloc.Postings, expenseFragments...)

	for i, magnitude := range incomeConsumed {
		spend(i, magnitude)
	}
	for i, magnitude := range expenseConsumed {
		spend(i, magnitude.Neg())
	}

	return alloc
}

// AllocateIndependent computes each purpose's allocation in isolation.
// Purposes with overlapping coverage (a contact budgeted individually
// and through its group) may attribute the same posting twice; this is
// the detail view the raw export builds on.
func AllocateIndependent(s *Snapshot, budgets, actuals Range, basis DateBasis) []PurposeAllocation {
	indexes := s.postingIndexesIn(actuals, basis)
	overrides := s.overrideIndex()

	allocations := make([]PurposeAllocation, 0, len(s.Purposes))
	for _, p := range s.Purposes {
		consumed := make(map[int]decimal.Decimal)

		alloc := s.allocatePurpose(p, overrides, budgets, indexes, basis,
			func(i int) decimal.Decimal { return s.Postings[i].Amount },
			func(i int, amount decimal.Decimal) { consumed[i] = consumed[i].Add(amount) },
		)

		// Everything covered but not consumed is this purpose's overrun.
		matches := s.coverage(p)
		for _, i := range indexes {
			if !matches(s.Postings[i]) {
				continue
			}

			residual := s.Postings[i].Amount.Sub(consumed[i])
			if residual.IsZero() {
				continue
			}

			alloc.Overrun = append(alloc.Overrun, UnbudgetedPosting{
				Posting:      s.Postings[i],
				Amount:       residual,
				PurposeName:  p.Name,
				CategoryName: s.categoryName(p.CategoryID),
			})
		}

		allocations = append(allocations, alloc)
	}

	return allocations
}

// AllocateDeduplicated fills all pools against a shared ledger in which
// every posting can be consumed at most once, in stable purpose order.
// Whatever is left afterwards is the deduplicated unbudgeted set:
// residual fragments of overrun pools (tagged with the covering purpose)
// and postings no purpose covers (untagged).
func AllocateDeduplicated(s *Snapshot, budgets, actuals Range, basis DateBasis) ([]PurposeAllocation, []UnbudgetedPosting) {
	indexes := s.postingIndexesIn(actuals, basis)
	overrides := s.overrideIndex()

	remaining := make(map[int]decimal.Decimal, len(indexes))
	for _, i := range indexes {
		remaining[i] = s.Postings[i].Amount
	}

	allocations := make([]PurposeAllocation, 0, len(s.Purposes))
	for _, p := range s.Purposes {
		alloc := s.allocatePurpose(p, overrides, budgets, indexes, basis,
			func(i int) decimal.Decimal { return remaining[i] },
			func(i int, amount decimal.Decimal) { remaining[i] = remaining[i].Sub(amount) },
		)

		allocations = append(allocations, alloc)
	}

	var unbudgeted []UnbudgetedPosting
	for _, i := range indexes {
		residual := remaining[i]
		if residual.IsZero() {
			continue
		}

		entry := UnbudgetedPosting{Posting: s.Postings[i], Amount: residual}
		if p, ok := s.coveringPurpose(s.Postings[i]); ok {
			entry.PurposeName = p.Name
			entry.CategoryName = s.categoryName(p.CategoryID)
		}

		unbudgeted = append(unbudgeted, entry)
	}

	return allocations, unbudgeted
}
