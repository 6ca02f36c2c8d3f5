package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketplan/backend/internal/types"
)

// BudgetOverride replaces the expected amount of a purpose's rules for
// exactly one month. Category-level rules have no override mechanism.
type BudgetOverride struct {
	Timestamps
	PurposeID uuid.UUID       `json:"purposeId" gorm:"primaryKey"`
	Month     types.Month     `json:"month" gorm:"primaryKey"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Note      string          `json:"note"`
}

func (o *BudgetOverride) BeforeCreate(tx *gorm.DB) error {
	return tx.First(&BudgetPurpose{}, o.PurposeID).Error
}
