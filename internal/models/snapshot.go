package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pocketplan/backend/internal/report"
)

// LoadSnapshot collects everything one report request needs into a
// report.Snapshot: the owner's full budget configuration plus the
// postings whose booking or valuta date falls into [from, to).
//
// Purposes and postings are loaded in creation order. That order is
// what makes pool allocation deterministic, so it must not change
// between calls with the same data.
func LoadSnapshot(db *gorm.DB, ownerID uuid.UUID, from, to time.Time) (*report.Snapshot, error) {
	var categories []BudgetCategory
	if err := db.Where("owner_id = ?", ownerID).Order("created_at ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	var purposes []BudgetPurpose
	if err := db.Where("owner_id = ?", ownerID).Order("created_at ASC, id ASC").Find(&purposes).Error; err != nil {
		return nil, err
	}

	var rules []BudgetRule
	if err := db.Where("owner_id = ?", ownerID).Order("created_at ASC, id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}

	purposeIDs := make([]uuid.UUID, 0, len(purposes))
	for _, p := range purposes {
		purposeIDs = append(purposeIDs, p.ID)
	}

	var overrides []BudgetOverride
	if len(purposeIDs) > 0 {
		err := db.Where("purpose_id IN ?", purposeIDs).Find(&overrides).Error
		if err != nil {
			return nil, err
		}
	}

	var postings []Posting
	err := db.
		Where("owner_id = ?", ownerID).
		Where(db.Where("booking_date >= ? AND booking_date < ?", from, to).
			Or("valuta_date >= ? AND valuta_date < ?", from, to)).
		Order("booking_date ASC, id ASC").
		Find(&postings).Error
	if err != nil {
		return nil, err
	}

	var contacts []Contact
	if err := db.Where("owner_id = ?", ownerID).Find(&contacts).Error; err != nil {
		return nil, err
	}

	s := &report.Snapshot{
		Categories:   make([]report.Category, 0, len(categories)),
		Purposes:     make([]report.Purpose, 0, len(purposes)),
		Rules:        make([]report.Rule, 0, len(rules)),
		Overrides:    make([]report.Override, 0, len(overrides)),
		Postings:     make([]report.Posting, 0, len(postings)),
		GroupMembers: make(map[uuid.UUID][]uuid.UUID),
	}

	for _, c := range categories {
		s.Categories = append(s.Categories, report.Category{ID: c.ID, Name: c.Name})
	}

	for _, p := range purposes {
		s.Purposes = append(s.Purposes, report.Purpose{
			ID:         p.ID,
			Name:       p.Name,
			SourceType: p.SourceType,
			SourceID:   p.SourceID,
			CategoryID: orNil(p.CategoryID),
		})
	}

	for _, r := range rules {
		s.Rules = append(s.Rules, report.Rule{
			ID:           r.ID,
			PurposeID:    orNil(r.PurposeID),
			CategoryID:   orNil(r.CategoryID),
			Amount:       r.Amount,
			Interval:     r.Interval,
			CustomMonths: r.CustomMonths,
			StartDate:    r.StartDate,
			EndDate:      r.EndDate,
		})
	}

	for _, o := range overrides {
		s.Overrides = append(s.Overrides, report.Override{
			PurposeID: o.PurposeID,
			Month:     o.Month,
			Amount:    o.Amount,
		})
	}

	for _, p := range postings {
		s.Postings = append(s.Postings, report.Posting{
			ID:            p.ID,
			Amount:        p.Amount,
			BookingDate:   p.BookingDate,
			ValutaDate:    p.ValutaDate,
			Kind:          p.Kind,
			ContactID:     orNil(p.ContactID),
			SavingsPlanID: orNil(p.SavingsPlanID),
			Description:   p.Description,
			Counterparty:  p.Counterparty,
		})
	}

	for _, c := range contacts {
		if c.GroupID != nil {
			s.GroupMembers[*c.GroupID] = append(s.GroupMembers[*c.GroupID], c.ID)
		}
	}

	return s, nil
}

func orNil(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}

	return *id
}
