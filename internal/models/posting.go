package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketplan/backend/internal/report"
)

// Posting is an actual ledger entry. The amount is signed, income
// positive and expenses negative. Reports never modify postings.
type Posting struct {
	DefaultModel
	OwnerID       uuid.UUID          `json:"ownerId" gorm:"index"`
	Amount        decimal.Decimal    `json:"amount" gorm:"type:DECIMAL(20,8)"`
	BookingDate   time.Time          `json:"bookingDate" gorm:"index"`
	ValutaDate    time.Time          `json:"valutaDate" gorm:"index"`
	Kind          report.PostingKind `json:"kind"`
	ContactID     *uuid.UUID         `json:"contactId"`
	Contact       *Contact           `json:"-" gorm:"foreignKey:ContactID"`
	SavingsPlanID *uuid.UUID         `json:"savingsPlanId"`
	SavingsPlan   *SavingsPlan       `json:"-" gorm:"foreignKey:SavingsPlanID"`
	Description   string             `json:"description"`
	Counterparty  string             `json:"counterparty"`
}

func (p *Posting) BeforeSave(_ *gorm.DB) error {
	p.Description = strings.TrimSpace(p.Description)
	p.Counterparty = strings.TrimSpace(p.Counterparty)

	p.BookingDate = p.BookingDate.UTC()
	if p.ValutaDate.IsZero() {
		p.ValutaDate = p.BookingDate
	}
	p.ValutaDate = p.ValutaDate.UTC()

	return nil
}

func (p *Posting) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Posting)
	return p.checkIntegrity(tx, *toSave)
}

func (p *Posting) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Kind", "ContactID", "SavingsPlanID") {
		toSave := tx.Statement.Dest.(Posting)
		return p.checkIntegrity(tx, toSave)
	}

	return nil
}

func (p *Posting) checkIntegrity(tx *gorm.DB, toSave Posting) error {
	switch toSave.Kind {
	case report.PostingContact:
		if toSave.ContactID == nil {
			return ErrPostingReferenceMissing
		}
		return tx.First(&Contact{}, *toSave.ContactID).Error

	case report.PostingSavingsPlan:
		if toSave.SavingsPlanID == nil {
			return ErrPostingReferenceMissing
		}
		return tx.First(&SavingsPlan{}, *toSave.SavingsPlanID).Error

	case report.PostingOther:
		return nil
	}

	return ErrPostingKindInvalid
}
