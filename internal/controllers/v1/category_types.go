package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
	pp_uuid "github.com/pocketplan/backend/internal/uuid"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	OwnerID uuid.UUID `json:"ownerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the owner
	Name    string    `json:"name" example:"Household" default:""`                    // Name of the category
	Note    string    `json:"note" example:"Groceries and supplies" default:""`       // Notes about the category
}

func (editable CategoryEditable) model() models.BudgetCategory {
	return models.BudgetCategory{
		OwnerID: editable.OwnerID,
		Name:    editable.Name,
		Note:    editable.Note,
	}
}

type CategoryLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`            // The category itself
	Purposes string `json:"purposes" example:"https://example.com/api/v1/purposes?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Purposes for this category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`

	// These fields are computed
	Purposes []Purpose `json:"purposes"` // Purposes assigned to the category
}

func newCategory(c *gin.Context, db *gorm.DB, model models.BudgetCategory) (Category, error) {
	url := httputil.RequestPathV1(c)

	category := Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			OwnerID: model.OwnerID,
			Name:    model.Name,
			Note:    model.Note,
		},
		Links: CategoryLinks{
			Self:     fmt.Sprintf("%s/categories/%s", url, model.ID),
			Purposes: fmt.Sprintf("%s/purposes?category=%s", url, model.ID),
		},
	}

	purposes, err := model.Purposes(db)
	if err != nil {
		return Category{}, err
	}

	for _, purpose := range purposes {
		category.Purposes = append(category.Purposes, newPurpose(c, purpose))
	}

	return category, nil
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	OwnerID pp_uuid.UUID `form:"owner"`                      // By ID of the owner
	Name    string       `form:"name" filterField:"false"`   // By name
	Note    string       `form:"note" filterField:"false"`   // By note
	Search  string       `form:"search" filterField:"false"` // By string in name or note
	Offset  uint         `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit   int          `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.BudgetCategory {
	return models.BudgetCategory{
		OwnerID: f.OwnerID.UUID,
	}
}
