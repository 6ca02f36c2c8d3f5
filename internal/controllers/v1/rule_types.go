package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/report"
	pp_uuid "github.com/pocketplan/backend/internal/uuid"
)

// RuleEditable represents all user configurable parameters
type RuleEditable struct {
	OwnerID    uuid.UUID  `json:"ownerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the owner
	PurposeID  *uuid.UUID `json:"purposeId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"`
	CategoryID *uuid.UUID `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"`

	// Positive amounts are expected income, negative amounts expected expenses.
	Amount decimal.Decimal `json:"amount" example:"-120.5"`

	Interval     report.Interval `json:"interval" example:"MONTHLY"`           // MONTHLY, QUARTERLY, YEARLY or CUSTOM
	CustomMonths int             `json:"customMonths" example:"5" default:"0"` // Stride in months, only used for CUSTOM
	StartDate    time.Time       `json:"startDate" example:"2025-01-15T00:00:00Z"`
	EndDate      *time.Time      `json:"endDate" example:"2025-12-31T00:00:00Z"` // Inclusive. Omit for open-ended rules
}

func (editable RuleEditable) model() models.BudgetRule {
	return models.BudgetRule{
		OwnerID:      editable.OwnerID,
		PurposeID:    editable.PurposeID,
		CategoryID:   editable.CategoryID,
		Amount:       editable.Amount,
		Interval:     editable.Interval,
		CustomMonths: editable.CustomMonths,
		StartDate:    editable.StartDate,
		EndDate:      editable.EndDate,
	}
}

type RuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/rules/d430d7c3-d14c-4712-9336-ee56965a6673"` // The rule itself
}

// Rule is the representation of a BudgetRule in API v1.
type Rule struct {
	models.DefaultModel
	RuleEditable
	Links RuleLinks `json:"links"`
}

// newRule returns the API v1 representation of the resource
func newRule(c *gin.Context, model models.BudgetRule) Rule {
	url := httputil.RequestPathV1(c)

	return Rule{
		DefaultModel: model.DefaultModel,
		RuleEditable: RuleEditable{
			OwnerID:      model.OwnerID,
			PurposeID:    model.PurposeID,
			CategoryID:   model.CategoryID,
			Amount:       model.Amount,
			Interval:     model.Interval,
			CustomMonths: model.CustomMonths,
			StartDate:    model.StartDate,
			EndDate:      model.EndDate,
		},
		Links: RuleLinks{
			Self: fmt.Sprintf("%s/rules/%s", url, model.ID),
		},
	}
}

type RuleListResponse struct {
	Data       []Rule      `json:"data"`                                                          // List of Rules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type RuleCreateResponse struct {
	Data  []RuleResponse `json:"data"`                                                          // List of the created Rules or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RuleResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RuleResponse struct {
	Data  *Rule   `json:"data"`                                                          // Data for the Rule
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RuleQueryFilter struct {
	OwnerID    pp_uuid.UUID `form:"owner"`                      // By ID of the owner
	PurposeID  pp_uuid.UUID `form:"purpose"`                    // By ID of the purpose
	CategoryID pp_uuid.UUID `form:"category"`                   // By ID of the category
	Interval   string       `form:"interval"`                   // By interval
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first Rule returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of Rules to return. Defaults to 50.
}

func (f RuleQueryFilter) model() models.BudgetRule {
	rule := models.BudgetRule{
		OwnerID:  f.OwnerID.UUID,
		Interval: report.Interval(f.Interval),
	}

	if f.PurposeID != pp_uuid.Nil {
		id := f.PurposeID.UUID
		rule.PurposeID = &id
	}

	if f.CategoryID != pp_uuid.Nil {
		id := f.CategoryID.UUID
		rule.CategoryID = &id
	}

	return rule
}
