package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketplan/backend/internal/report"
)

// BudgetRule is a recurring expected income (positive amount) or
// expense (negative amount). It belongs to exactly one of purpose and
// category.
//
// The level exclusivity of rules is enforced here: a category and the
// purposes assigned to it must not carry rules at the same time. The
// report engine assumes this invariant already holds.
type BudgetRule struct {
	DefaultModel
	OwnerID      uuid.UUID       `json:"ownerId" gorm:"index"`
	PurposeID    *uuid.UUID      `json:"purposeId"`
	Purpose      *BudgetPurpose  `json:"-" gorm:"foreignKey:PurposeID"`
	CategoryID   *uuid.UUID      `json:"categoryId"`
	Category     *BudgetCategory `json:"-" gorm:"foreignKey:CategoryID"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Interval     report.Interval `json:"interval"`
	CustomMonths int             `json:"customMonths"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      *time.Time      `json:"endDate"`
}

func (r *BudgetRule) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*BudgetRule)
	return r.checkIntegrity(tx, *toSave)
}

func (r *BudgetRule) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("PurposeID", "CategoryID", "Interval", "CustomMonths", "StartDate", "EndDate") {
		toSave := tx.Statement.Dest.(BudgetRule)
		return r.checkIntegrity(tx, toSave)
	}

	return nil
}

func (r *BudgetRule) checkIntegrity(tx *gorm.DB, toSave BudgetRule) error {
	if (toSave.PurposeID == nil) == (toSave.CategoryID == nil) {
		return ErrRuleNeedsExactlyOneParent
	}

	if toSave.Interval == report.IntervalCustom && toSave.CustomMonths < 1 {
		return ErrRuleCustomMonthsInvalid
	}

	if toSave.EndDate != nil && toSave.StartDate.After(*toSave.EndDate) {
		return ErrRuleDatesInverted
	}

	if toSave.PurposeID != nil {
		var purpose BudgetPurpose
		if err := tx.First(&purpose, *toSave.PurposeID).Error; err != nil {
			return err
		}

		// A purpose rule conflicts with rules on the purpose's category
		if purpose.CategoryID != nil {
			var count int64
			err := tx.Model(&BudgetRule{}).Where("category_id = ?", *purpose.CategoryID).Count(&count).Error
			if err != nil {
				return err
			}

			if count > 0 {
				return ErrRuleLevelConflict
			}
		}

		return nil
	}

	if err := tx.First(&BudgetCategory{}, *toSave.CategoryID).Error; err != nil {
		return err
	}

	// A category rule conflicts with rules on any purpose of the category
	var count int64
	err := tx.Model(&BudgetRule{}).
		Joins("JOIN budget_purposes ON budget_purposes.id = budget_rules.purpose_id").
		Where("budget_purposes.category_id = ?", *toSave.CategoryID).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrRuleLevelConflict
	}

	return nil
}
