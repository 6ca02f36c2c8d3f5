package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
	pp_uuid "github.com/pocketplan/backend/internal/uuid"
)

// SavingsPlanEditable represents all user configurable parameters
type SavingsPlanEditable struct {
	OwnerID uuid.UUID `json:"ownerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the owner
	Name    string    `json:"name" example:"Vacation 2026" default:""`                // Name of the savings plan
	Note    string    `json:"note" default:""`                                        // Notes about the savings plan
}

func (editable SavingsPlanEditable) model() models.SavingsPlan {
	return models.SavingsPlan{
		OwnerID: editable.OwnerID,
		Name:    editable.Name,
		Note:    editable.Note,
	}
}

type SavingsPlanLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/savings-plans/d430d7c3-d14c-4712-9336-ee56965a6673"`            // The savings plan itself
	Postings string `json:"postings" example:"https://example.com/api/v1/postings?savingsPlan=d430d7c3-d14c-4712-9336-ee56965a6673"` // Postings booked against this plan
}

// SavingsPlan is the representation of a SavingsPlan in API v1.
type SavingsPlan struct {
	models.DefaultModel
	SavingsPlanEditable
	Links SavingsPlanLinks `json:"links"`
}

// newSavingsPlan returns the API v1 representation of the resource
func newSavingsPlan(c *gin.Context, model models.SavingsPlan) SavingsPlan {
	url := httputil.RequestPathV1(c)

	return SavingsPlan{
		DefaultModel: model.DefaultModel,
		SavingsPlanEditable: SavingsPlanEditable{
			OwnerID: model.OwnerID,
			Name:    model.Name,
			Note:    model.Note,
		},
		Links: SavingsPlanLinks{
			Self:     fmt.Sprintf("%s/savings-plans/%s", url, model.ID),
			Postings: fmt.Sprintf("%s/postings?savingsPlan=%s", url, model.ID),
		},
	}
}

type SavingsPlanListResponse struct {
	Data       []SavingsPlan `json:"data"`                                                          // List of SavingsPlans
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type SavingsPlanCreateResponse struct {
	Data  []SavingsPlanResponse `json:"data"`                                                          // List of the created SavingsPlans or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *SavingsPlanCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, SavingsPlanResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SavingsPlanResponse struct {
	Data  *SavingsPlan `json:"data"`                                                          // Data for the SavingsPlan
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SavingsPlanQueryFilter struct {
	OwnerID pp_uuid.UUID `form:"owner"`                      // By ID of the owner
	Name    string       `form:"name" filterField:"false"`   // By name
	Note    string       `form:"note" filterField:"false"`   // By note
	Search  string       `form:"search" filterField:"false"` // By string in name or note
	Offset  uint         `form:"offset" filterField:"false"` // The offset of the first SavingsPlan returned. Defaults to 0.
	Limit   int          `form:"limit" filterField:"false"`  // Maximum number of SavingsPlans to return. Defaults to 50.
}

func (f SavingsPlanQueryFilter) model() models.SavingsPlan {
	return models.SavingsPlan{
		OwnerID: f.OwnerID.UUID,
	}
}

// RegisterSavingsPlanRoutes registers the routes for savings plans with
// the RouterGroup that is passed.
func RegisterSavingsPlanRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSavingsPlanList)
		r.GET("", GetSavingsPlans)
		r.POST("", CreateSavingsPlans)
	}

	// SavingsPlan with ID
	{
		r.OPTIONS("/:id", OptionsSavingsPlanDetail)
		r.GET("/:id", GetSavingsPlan)
		r.DELETE("/:id", DeleteSavingsPlan)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SavingsPlans
// @Success		204
// @Router			/v1/savings-plans [options]
func OptionsSavingsPlanList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SavingsPlans
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/savings-plans/{id} [options]
func OptionsSavingsPlanDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.SavingsPlan{}, httputil.OptionsGetDelete)
}

// @Summary		Create savings plans
// @Description	Creates new savings plans
// @Tags			SavingsPlans
// @Produce		json
// @Success		201				{object}	SavingsPlanCreateResponse
// @Failure		400				{object}	SavingsPlanCreateResponse
// @Failure		500				{object}	SavingsPlanCreateResponse
// @Param			savingsPlans	body		[]SavingsPlanEditable	true	"SavingsPlans"
// @Router			/v1/savings-plans [post]
func CreateSavingsPlans(c *gin.Context) {
	var editables []SavingsPlanEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsPlanCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := SavingsPlanCreateResponse{}

	for _, editable := range editables {
		plan := editable.model()

		err = models.DB.Create(&plan).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newSavingsPlan(c, plan)
		r.Data = append(r.Data, SavingsPlanResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get savings plans
// @Description	Returns a list of savings plans
// @Tags			SavingsPlans
// @Produce		json
// @Success		200	{object}	SavingsPlanListResponse
// @Failure		400	{object}	SavingsPlanListResponse
// @Failure		500	{object}	SavingsPlanListResponse
// @Router			/v1/savings-plans [get]
// @Param			owner	query	string	false	"Filter by owner ID"
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first SavingsPlan returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of SavingsPlans to return. Defaults to 50."
func GetSavingsPlans(c *gin.Context) {
	var filter SavingsPlanQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var plans []models.SavingsPlan
	err := q.Find(&plans).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsPlanListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsPlanListResponse{
			Error: &e,
		})
		return
	}

	data := make([]SavingsPlan, 0)
	for _, plan := range plans {
		data = append(data, newSavingsPlan(c, plan))
	}

	c.JSON(http.StatusOK, SavingsPlanListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get savings plan
// @Description	Returns a specific savings plan
// @Tags			SavingsPlans
// @Produce		json
// @Success		200	{object}	SavingsPlanResponse
// @Failure		400	{object}	SavingsPlanResponse
// @Failure		404	{object}	SavingsPlanResponse
// @Failure		500	{object}	SavingsPlanResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/savings-plans/{id} [get]
func GetSavingsPlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsPlanResponse{
			Error: &s,
		})
		return
	}

	var plan models.SavingsPlan
	err = models.DB.First(&plan, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsPlanResponse{
			Error: &s,
		})
		return
	}

	data := newSavingsPlan(c, plan)
	c.JSON(http.StatusOK, SavingsPlanResponse{Data: &data})
}

// @Summary		Delete savings plan
// @Description	Deletes a savings plan
// @Tags			SavingsPlans
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/savings-plans/{id} [delete]
func DeleteSavingsPlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var plan models.SavingsPlan
	err = models.DB.First(&plan, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&plan).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
