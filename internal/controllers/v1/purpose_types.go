package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/report"
	pp_uuid "github.com/pocketplan/backend/internal/uuid"
)

// PurposeEditable represents all user configurable parameters
type PurposeEditable struct {
	OwnerID    uuid.UUID         `json:"ownerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`  // ID of the owner
	Name       string            `json:"name" example:"Groceries" default:""`                     // Name of the purpose
	Note       string            `json:"note" default:""`                                         // Notes about the purpose
	SourceType report.SourceType `json:"sourceType" example:"CONTACT"`                            // CONTACT, CONTACT_GROUP or SAVINGS_PLAN
	SourceID   uuid.UUID         `json:"sourceId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"` // ID of the source entity
	CategoryID *uuid.UUID        `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"`
}

func (editable PurposeEditable) model() models.BudgetPurpose {
	return models.BudgetPurpose{
		OwnerID:    editable.OwnerID,
		Name:       editable.Name,
		Note:       editable.Note,
		SourceType: editable.SourceType,
		SourceID:   editable.SourceID,
		CategoryID: editable.CategoryID,
	}
}

type PurposeLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/purposes/d430d7c3-d14c-4712-9336-ee56965a6673"`       // The purpose itself
	Rules string `json:"rules" example:"https://example.com/api/v1/rules?purpose=d430d7c3-d14c-4712-9336-ee56965a6673"` // Rules of this purpose
}

// Purpose is the representation of a BudgetPurpose in API v1.
type Purpose struct {
	models.DefaultModel
	PurposeEditable
	Links PurposeLinks `json:"links"`
}

// newPurpose returns the API v1 representation of the resource
func newPurpose(c *gin.Context, model models.BudgetPurpose) Purpose {
	url := httputil.RequestPathV1(c)

	return Purpose{
		DefaultModel: model.DefaultModel,
		PurposeEditable: PurposeEditable{
			OwnerID:    model.OwnerID,
			Name:       model.Name,
			Note:       model.Note,
			SourceType: model.SourceType,
			SourceID:   model.SourceID,
			CategoryID: model.CategoryID,
		},
		Links: PurposeLinks{
			Self:  fmt.Sprintf("%s/purposes/%s", url, model.ID),
			Rules: fmt.Sprintf("%s/rules?purpose=%s", url, model.ID),
		},
	}
}

type PurposeListResponse struct {
	Data       []Purpose   `json:"data"`                                                          // List of Purposes
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PurposeCreateResponse struct {
	Data  []PurposeResponse `json:"data"`                                                          // List of the created Purposes or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *PurposeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, PurposeResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PurposeResponse struct {
	Data  *Purpose `json:"data"`                                                          // Data for the Purpose
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PurposeQueryFilter struct {
	OwnerID    pp_uuid.UUID `form:"owner"`                      // By ID of the owner
	SourceType string       `form:"sourceType"`                 // By source type
	SourceID   pp_uuid.UUID `form:"source"`                     // By ID of the source entity
	CategoryID pp_uuid.UUID `form:"category"`                   // By ID of the category
	Name       string       `form:"name" filterField:"false"`   // By name
	Note       string       `form:"note" filterField:"false"`   // By note
	Search     string       `form:"search" filterField:"false"` // By string in name or note
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first Purpose returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of Purposes to return. Defaults to 50.
}

func (f PurposeQueryFilter) model() models.BudgetPurpose {
	purpose := models.BudgetPurpose{
		OwnerID:    f.OwnerID.UUID,
		SourceType: report.SourceType(f.SourceType),
		SourceID:   f.SourceID.UUID,
	}

	if f.CategoryID != pp_uuid.Nil {
		id := f.CategoryID.UUID
		purpose.CategoryID = &id
	}

	return purpose
}
