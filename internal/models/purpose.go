package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pocketplan/backend/internal/report"
)

// BudgetPurpose is a budgeted target tied to one source entity: a
// contact, a contact group or a savings plan.
type BudgetPurpose struct {
	DefaultModel
	OwnerID    uuid.UUID         `json:"ownerId" gorm:"index"`
	Name       string            `json:"name"`
	Note       string            `json:"note"`
	SourceType report.SourceType `json:"sourceType"`
	SourceID   uuid.UUID         `json:"sourceId"`
	CategoryID *uuid.UUID        `json:"categoryId"`
	Category   *BudgetCategory   `json:"-" gorm:"foreignKey:CategoryID"`
}

func (p *BudgetPurpose) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Note = strings.TrimSpace(p.Note)

	return nil
}

func (p *BudgetPurpose) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*BudgetPurpose)
	return p.checkIntegrity(tx, *toSave)
}

func (p *BudgetPurpose) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("SourceType", "CategoryID") {
		toSave := tx.Statement.Dest.(BudgetPurpose)
		return p.checkIntegrity(tx, toSave)
	}

	return nil
}

func (p *BudgetPurpose) checkIntegrity(tx *gorm.DB, toSave BudgetPurpose) error {
	switch toSave.SourceType {
	case report.SourceContact, report.SourceContactGroup, report.SourceSavingsPlan:
	default:
		return ErrPurposeSourceInvalid
	}

	if toSave.CategoryID != nil {
		return tx.First(&BudgetCategory{}, *toSave.CategoryID).Error
	}

	return nil
}

// Rules returns the rules belonging to the purpose.
func (p BudgetPurpose) Rules(db *gorm.DB) ([]BudgetRule, error) {
	var rules []BudgetRule
	err := db.Where("purpose_id = ?", p.ID).Order("created_at ASC, id ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}

	return rules, nil
}
