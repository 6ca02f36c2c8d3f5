package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/report"
	"github.com/pocketplan/backend/internal/types"
)

func (suite *TestSuiteStandard) TestLoadSnapshot() {
	owner := uuid.New()
	stranger := uuid.New()

	group := suite.createTestContactGroup(models.ContactGroup{OwnerID: owner, Name: "Supermarkets"})
	rewe := suite.createTestContact(models.Contact{OwnerID: owner, Name: "REWE", GroupID: &group.ID})
	aldi := suite.createTestContact(models.Contact{OwnerID: owner, Name: "ALDI", GroupID: &group.ID})
	landlord := suite.createTestContact(models.Contact{OwnerID: owner, Name: "Landlord"})

	category := suite.createTestCategory(models.BudgetCategory{OwnerID: owner, Name: "Household"})
	purpose := suite.createTestPurpose(models.BudgetPurpose{
		OwnerID:    owner,
		Name:       "Groceries",
		SourceType: report.SourceContactGroup,
		SourceID:   group.ID,
		CategoryID: &category.ID,
	})

	rule := suite.createTestRule(models.BudgetRule{
		OwnerID:   owner,
		PurposeID: &purpose.ID,
		Amount:    decimal.RequireFromString("-300"),
		Interval:  report.IntervalMonthly,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	override := suite.createTestOverride(models.BudgetOverride{
		PurposeID: purpose.ID,
		Month:     types.NewMonth(2025, 3),
		Amount:    decimal.RequireFromString("-250"),
	})

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	booked := suite.createTestPosting(models.Posting{
		OwnerID:     owner,
		Amount:      decimal.RequireFromString("-42.17"),
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind:        report.PostingContact,
		ContactID:   &rewe.ID,
	})

	// Booked in February, value dated in March. The valuta date alone
	// must pull it into the snapshot.
	carried := suite.createTestPosting(models.Posting{
		OwnerID:     owner,
		Amount:      decimal.RequireFromString("-13.5"),
		BookingDate: time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC),
		ValutaDate:  time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		Kind:        report.PostingContact,
		ContactID:   &landlord.ID,
	})

	_ = suite.createTestPosting(models.Posting{
		OwnerID:     owner,
		Amount:      decimal.RequireFromString("-99"),
		BookingDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Kind:        report.PostingOther,
	})

	_ = suite.createTestPosting(models.Posting{
		OwnerID:     stranger,
		Amount:      decimal.RequireFromString("-7"),
		BookingDate: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Kind:        report.PostingOther,
	})

	snapshot, err := models.LoadSnapshot(models.DB, owner, from, to)
	suite.Require().NoError(err)

	suite.Require().Len(snapshot.Categories, 1)
	suite.Assert().Equal(category.ID, snapshot.Categories[0].ID)
	suite.Assert().Equal("Household", snapshot.Categories[0].Name)

	suite.Require().Len(snapshot.Purposes, 1)
	suite.Assert().Equal(purpose.ID, snapshot.Purposes[0].ID)
	suite.Assert().Equal(report.SourceContactGroup, snapshot.Purposes[0].SourceType)
	suite.Assert().Equal(group.ID, snapshot.Purposes[0].SourceID)
	suite.Assert().Equal(category.ID, snapshot.Purposes[0].CategoryID)

	suite.Require().Len(snapshot.Rules, 1)
	suite.Assert().Equal(rule.ID, snapshot.Rules[0].ID)
	suite.Assert().Equal(purpose.ID, snapshot.Rules[0].PurposeID)
	suite.Assert().Equal(uuid.Nil, snapshot.Rules[0].CategoryID)

	suite.Require().Len(snapshot.Overrides, 1)
	suite.Assert().Equal(override.Month, snapshot.Overrides[0].Month)
	suite.Assert().True(snapshot.Overrides[0].Amount.Equal(override.Amount))

	// Ordered by booking date, so the February posting comes first.
	suite.Require().Len(snapshot.Postings, 2)
	suite.Assert().Equal(carried.ID, snapshot.Postings[0].ID)
	suite.Assert().Equal(booked.ID, snapshot.Postings[1].ID)
	suite.Assert().Equal(rewe.ID, snapshot.Postings[1].ContactID)
	suite.Assert().Equal(uuid.Nil, snapshot.Postings[1].SavingsPlanID)

	suite.Require().Len(snapshot.GroupMembers, 1)
	suite.Assert().ElementsMatch([]uuid.UUID{rewe.ID, aldi.ID}, snapshot.GroupMembers[group.ID])
}

func (suite *TestSuiteStandard) TestLoadSnapshotEmpty() {
	snapshot, err := models.LoadSnapshot(models.DB, uuid.New(),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	suite.Assert().Empty(snapshot.Categories)
	suite.Assert().Empty(snapshot.Purposes)
	suite.Assert().Empty(snapshot.Rules)
	suite.Assert().Empty(snapshot.Overrides)
	suite.Assert().Empty(snapshot.Postings)
	suite.Assert().Empty(snapshot.GroupMembers)
}
