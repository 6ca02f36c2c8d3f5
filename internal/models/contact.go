package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is a counterparty of ledger postings. Its group assignment is
// the current one; reports resolve membership at query time, so moving
// a contact to another group changes historical report output.
type Contact struct {
	DefaultModel
	OwnerID uuid.UUID     `json:"ownerId" gorm:"index"`
	Name    string        `json:"name"`
	Note    string        `json:"note"`
	GroupID *uuid.UUID    `json:"groupId"`
	Group   *ContactGroup `json:"-" gorm:"foreignKey:GroupID"`
}

func (c *Contact) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	if c.GroupID != nil {
		return tx.First(&ContactGroup{}, *c.GroupID).Error
	}

	return nil
}

// ContactGroup bundles contacts so that one purpose can budget them
// together.
type ContactGroup struct {
	DefaultModel
	OwnerID uuid.UUID `json:"ownerId" gorm:"index"`
	Name    string    `json:"name"`
	Note    string    `json:"note"`
}

func (g *ContactGroup) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	return nil
}

// Members returns the contacts currently assigned to the group.
func (g ContactGroup) Members(db *gorm.DB) ([]Contact, error) {
	var contacts []Contact
	err := db.Where("group_id = ?", g.ID).Order("name ASC").Find(&contacts).Error
	if err != nil {
		return nil, err
	}

	return contacts, nil
}
