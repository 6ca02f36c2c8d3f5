package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BudgetCategory groups budget purposes. A category may carry rules of
// its own, used when the purposes under it are not separately budgeted.
type BudgetCategory struct {
	DefaultModel
	OwnerID uuid.UUID `json:"ownerId" gorm:"index"`
	Name    string    `json:"name"`
	Note    string    `json:"note"`
}

func (c *BudgetCategory) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}

// Purposes returns the purposes assigned to the category.
func (c BudgetCategory) Purposes(db *gorm.DB) ([]BudgetPurpose, error) {
	var purposes []BudgetPurpose
	err := db.Where("category_id = ?", c.ID).Order("created_at ASC, id ASC").Find(&purposes).Error
	if err != nil {
		return nil, err
	}

	return purposes, nil
}
