package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/types"
	pp_uuid "github.com/pocketplan/backend/internal/uuid"
)

// URIOverride identifies an override by purpose and month.
type URIOverride struct {
	ID    pp_uuid.UUID `uri:"id" binding:"required" format:"UUID"`                                           // ID of the purpose
	Month time.Time    `uri:"month" time_format:"2006-01" time_utc:"1" example:"2025-03" binding:"required"` // Year and month in YYYY-MM format
}

// OverrideEditable represents all user configurable parameters
type OverrideEditable struct {
	PurposeID uuid.UUID       `json:"purposeId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"` // ID of the purpose the override applies to
	Month     types.Month     `json:"month" example:"2025-03-01T00:00:00Z"`                     // The month the override replaces the purpose's expected amount for
	Amount    decimal.Decimal `json:"amount" example:"-180"`                                    // The replacement amount
	Note      string          `json:"note" default:""`                                          // A note for the override
}

func (editable OverrideEditable) model() models.BudgetOverride {
	return models.BudgetOverride{
		PurposeID: editable.PurposeID,
		Month:     editable.Month,
		Amount:    editable.Amount,
		Note:      editable.Note,
	}
}

type OverrideLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/overrides/d430d7c3-d14c-4712-9336-ee56965a6673/2025-03"` // The override itself
}

// Override is the representation of a BudgetOverride in API v1.
type Override struct {
	OverrideEditable
	Links OverrideLinks `json:"links"`
}

// newOverride returns the API v1 representation of the resource
func newOverride(c *gin.Context, model models.BudgetOverride) Override {
	url := httputil.RequestPathV1(c)

	return Override{
		OverrideEditable: OverrideEditable{
			PurposeID: model.PurposeID,
			Month:     model.Month,
			Amount:    model.Amount,
			Note:      model.Note,
		},
		Links: OverrideLinks{
			Self: fmt.Sprintf("%s/overrides/%s/%s", url, model.PurposeID, model.Month),
		},
	}
}

type OverrideListResponse struct {
	Data       []Override  `json:"data"`                                                          // List of Overrides
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type OverrideCreateResponse struct {
	Data  []OverrideResponse `json:"data"`                                                          // List of the created Overrides or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (o *OverrideCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	o.Data = append(o.Data, OverrideResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type OverrideResponse struct {
	Data  *Override `json:"data"`                                                          // Data for the Override
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type OverrideQueryFilter struct {
	PurposeID pp_uuid.UUID `form:"purpose"`                    // By ID of the purpose
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first Override returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of Overrides to return. Defaults to 50.
}

func (f OverrideQueryFilter) model() models.BudgetOverride {
	return models.BudgetOverride{
		PurposeID: f.PurposeID.UUID,
	}
}
