package models_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/report"
)

func (suite *TestSuiteStandard) TestPostingKindInvalid() {
	err := models.DB.Create(&models.Posting{
		Amount:      decimal.RequireFromString("-12.34"),
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind:        "TRANSFER",
	}).Error
	suite.Assert().ErrorIs(err, models.ErrPostingKindInvalid)
}

func (suite *TestSuiteStandard) TestPostingReferenceMissing() {
	err := models.DB.Create(&models.Posting{
		Amount:      decimal.RequireFromString("-12.34"),
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind:        report.PostingContact,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrPostingReferenceMissing)

	err = models.DB.Create(&models.Posting{
		Amount:      decimal.RequireFromString("50"),
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind:        report.PostingSavingsPlan,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrPostingReferenceMissing)
}

func (suite *TestSuiteStandard) TestPostingValutaDefaultsToBooking() {
	booking := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	posting := suite.createTestPosting(models.Posting{
		Amount:      decimal.RequireFromString("-12.34"),
		BookingDate: booking,
		Kind:        report.PostingOther,
	})

	suite.Assert().True(posting.ValutaDate.Equal(booking))
}

func (suite *TestSuiteStandard) TestPostingContactReference() {
	contact := suite.createTestContact(models.Contact{Name: "REWE"})

	posting := suite.createTestPosting(models.Posting{
		Amount:      decimal.RequireFromString("-25.5"),
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind:        report.PostingContact,
		ContactID:   &contact.ID,
	})

	suite.Assert().Equal(contact.ID, *posting.ContactID)
}
