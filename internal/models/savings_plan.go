package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavingsPlan is a savings target postings can be booked against.
type SavingsPlan struct {
	DefaultModel
	OwnerID uuid.UUID `json:"ownerId" gorm:"index"`
	Name    string    `json:"name"`
	Note    string    `json:"note"`
}

func (s *SavingsPlan) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Note = strings.TrimSpace(s.Note)

	return nil
}
