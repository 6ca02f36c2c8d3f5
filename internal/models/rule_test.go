package models_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/report"
)

func (suite *TestSuiteStandard) TestRuleNeedsExactlyOneParent() {
	category := suite.createTestCategory(models.BudgetCategory{Name: "Household"})
	purpose := suite.createTestPurpose(models.BudgetPurpose{
		Name:       "Groceries",
		SourceType: report.SourceContact,
	})

	err := models.DB.Create(&models.BudgetRule{
		Amount:    decimal.RequireFromString("-100"),
		Interval:  report.IntervalMonthly,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrRuleNeedsExactlyOneParent)

	err = models.DB.Create(&models.BudgetRule{
		PurposeID:  &purpose.ID,
		CategoryID: &category.ID,
		Amount:     decimal.RequireFromString("-100"),
		Interval:   report.IntervalMonthly,
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrRuleNeedsExactlyOneParent)
}

func (suite *TestSuiteStandard) TestRuleCustomMonths() {
	purpose := suite.createTestPurpose(models.BudgetPurpose{
		Name:       "Insurance",
		SourceType: report.SourceContact,
	})

	err := models.DB.Create(&models.BudgetRule{
		PurposeID: &purpose.ID,
		Amount:    decimal.RequireFromString("-59.99"),
		Interval:  report.IntervalCustom,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrRuleCustomMonthsInvalid)

	suite.createTestRule(models.BudgetRule{
		PurposeID:    &purpose.ID,
		Amount:       decimal.RequireFromString("-59.99"),
		Interval:     report.IntervalCustom,
		CustomMonths: 5,
		StartDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}

func (suite *TestSuiteStandard) TestRuleDatesInverted() {
	purpose := suite.createTestPurpose(models.BudgetPurpose{
		Name:       "Rent",
		SourceType: report.SourceContact,
	})

	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	err := models.DB.Create(&models.BudgetRule{
		PurposeID: &purpose.ID,
		Amount:    decimal.RequireFromString("-800"),
		Interval:  report.IntervalMonthly,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrRuleDatesInverted)
}

func (suite *TestSuiteStandard) TestRuleLevelConflict() {
	category := suite.createTestCategory(models.BudgetCategory{Name: "Household"})
	purpose := suite.createTestPurpose(models.BudgetPurpose{
		Name:       "Groceries",
		SourceType: report.SourceContact,
		CategoryID: &category.ID,
	})

	suite.createTestRule(models.BudgetRule{
		CategoryID: &category.ID,
		Amount:     decimal.RequireFromString("-300"),
		Interval:   report.IntervalMonthly,
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	// The category already carries a rule, so its purposes must not
	err := models.DB.Create(&models.BudgetRule{
		PurposeID: &purpose.ID,
		Amount:    decimal.RequireFromString("-100"),
		Interval:  report.IntervalMonthly,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrRuleLevelConflict)
}

func (suite *TestSuiteStandard) TestRuleLevelConflictCategory() {
	category := suite.createTestCategory(models.BudgetCategory{Name: "Household"})
	purpose := suite.createTestPurpose(models.BudgetPurpose{
		Name:       "Groceries",
		SourceType: report.SourceContact,
		CategoryID: &category.ID,
	})

	suite.createTestRule(models.BudgetRule{
		PurposeID: &purpose.ID,
		Amount:    decimal.RequireFromString("-100"),
		Interval:  report.IntervalMonthly,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	// A purpose of the category already carries a rule
	err := models.DB.Create(&models.BudgetRule{
		CategoryID: &category.ID,
		Amount:     decimal.RequireFromString("-300"),
		Interval:   report.IntervalMonthly,
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrRuleLevelConflict)
}

func (suite *TestSuiteStandard) TestRuleMissingPurpose() {
	id := suite.createTestPurpose(models.BudgetPurpose{
		Name:       "Groceries",
		SourceType: report.SourceContact,
	}).ID

	suite.Assert().NoError(models.DB.Delete(&models.BudgetPurpose{}, id).Error)

	err := models.DB.Create(&models.BudgetRule{
		PurposeID: &id,
		Amount:    decimal.RequireFromString("-100"),
		Interval:  report.IntervalMonthly,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
