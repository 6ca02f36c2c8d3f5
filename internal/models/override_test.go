package models_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/report"
	"github.com/pocketplan/backend/internal/types"
)

func (suite *TestSuiteStandard) TestOverrideMonthUnique() {
	purpose := suite.createTestPurpose(models.BudgetPurpose{
		Name:       "Groceries",
		SourceType: report.SourceContact,
	})

	suite.createTestOverride(models.BudgetOverride{
		PurposeID: purpose.ID,
		Month:     types.NewMonth(2025, 3),
		Amount:    decimal.RequireFromString("-180"),
	})

	err := models.DB.Create(&models.BudgetOverride{
		PurposeID: purpose.ID,
		Month:     types.NewMonth(2025, 3),
		Amount:    decimal.RequireFromString("-200"),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrOverrideMonthNotUnique)
}

func (suite *TestSuiteStandard) TestOverrideMissingPurpose() {
	err := models.DB.Create(&models.BudgetOverride{
		PurposeID: uuid.New(),
		Month:     types.NewMonth(2025, 3),
		Amount:    decimal.RequireFromString("-180"),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
