package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// coverage resolves a purpose's source reference into a posting
// predicate. A purpose referencing an entity that no longer exists
// matches nothing instead of failing.
func (s *Snapshot) coverage(p Purpose) func(Posting) bool {
	switch p.SourceType {
	case SourceContact:
		return func(x Posting) bool {
			return x.ContactID != uuid.Nil && x.ContactID == p.SourceID
		}

	case SourceContactGroup:
		members := make(map[uuid.UUID]struct{}, len(s.GroupMembers[p.SourceID]))
		for _, id := range s.GroupMembers[p.SourceID] {
			members[id] = struct{}{}
		}

		return func(x Posting) bool {
			if x.ContactID == uuid.Nil {
				return false
			}

			_, ok := members[x.ContactID]
			return ok
		}

	case SourceSavingsPlan:
		return func(x Posting) bool {
			return x.Kind == PostingSavingsPlan && x.SavingsPlanID != uuid.Nil && x.SavingsPlanID == p.SourceID
		}
	}

	return func(Posting) bool { return false }
}

// coveredUnion computes the distinct set of posting indexes covered by
// any purpose. A contact that is both a group member and individually
// budgeted contributes its postings once, which is what keeps the
// aggregate unbudgeted and period figures from double counting.
func (s *Snapshot) coveredUnion(indexes []int) map[int]struct{} {
	covered := make(map[int]struct{})
	for _, p := range s.Purposes {
		matches := s.coverage(p)
		for _, i := range indexes {
			if matches(s.Postings[i]) {
				covered[i] = struct{}{}
			}
		}
	}

	return covered
}

// coveringPurpose returns the first purpose in snapshot order covering
// the posting, used to tag unbudgeted overrun fragments with their
// origin.
func (s *Snapshot) coveringPurpose(x Posting) (Purpose, bool) {
	for _, p := range s.Purposes {
		if s.coverage(p)(x) {
			return p, true
		}
	}

	return Purpose{}, false
}

// postingIndexesIn returns the indexes of all postings whose basis date
// falls into the range, in snapshot order.
func (s *Snapshot) postingIndexesIn(r Range, basis DateBasis) []int {
	var indexes []int
	for i, x := range s.Postings {
		if r.Contains(x.Date(basis)) {
			indexes = append(indexes, i)
		}
	}

	return indexes
}

// actualTotal sums the amounts of all postings in the range. Every
// posting is counted exactly once, so this is the deduplicated total.
func (s *Snapshot) actualTotal(r Range, basis DateBasis) decimal.Decimal {
	sum := decimal.Zero
	for _, i := range s.postingIndexesIn(r, basis) {
		sum = sum.Add(s.Postings[i].Amount)
	}

	return sum
}
