package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
)

// RegisterPurposeRoutes registers the routes for purposes with
// the RouterGroup that is passed.
func RegisterPurposeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPurposeList)
		r.GET("", GetPurposes)
		r.POST("", CreatePurposes)
	}

	// Purpose with ID
	{
		r.OPTIONS("/:id", OptionsPurposeDetail)
		r.GET("/:id", GetPurpose)
		r.PATCH("/:id", UpdatePurpose)
		r.DELETE("/:id", DeletePurpose)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Purposes
// @Success		204
// @Router			/v1/purposes [options]
func OptionsPurposeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Purposes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/purposes/{id} [options]
func OptionsPurposeDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.BudgetPurpose{}, httputil.OptionsGetPatchDelete)
}

// @Summary		Create purposes
// @Description	Creates new purposes
// @Tags			Purposes
// @Produce		json
// @Success		201			{object}	PurposeCreateResponse
// @Failure		400			{object}	PurposeCreateResponse
// @Failure		404			{object}	PurposeCreateResponse
// @Failure		500			{object}	PurposeCreateResponse
// @Param			purposes	body		[]PurposeEditable	true	"Purposes"
// @Router			/v1/purposes [post]
func CreatePurposes(c *gin.Context) {
	var editables []PurposeEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PurposeCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := PurposeCreateResponse{}

	for _, editable := range editables {
		purpose := editable.model()

		err = models.DB.Create(&purpose).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newPurpose(c, purpose)
		r.Data = append(r.Data, PurposeResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get purposes
// @Description	Returns a list of purposes
// @Tags			Purposes
// @Produce		json
// @Success		200	{object}	PurposeListResponse
// @Failure		400	{object}	PurposeListResponse
// @Failure		500	{object}	PurposeListResponse
// @Router			/v1/purposes [get]
// @Param			owner		query	string	false	"Filter by owner ID"
// @Param			sourceType	query	string	false	"Filter by source type"
// @Param			source		query	string	false	"Filter by source entity ID"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Purpose returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Purposes to return. Defaults to 50."
func GetPurposes(c *gin.Context) {
	var filter PurposeQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("created_at ASC, id ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var purposes []models.BudgetPurpose
	err := q.Find(&purposes).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PurposeListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PurposeListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Purpose, 0)
	for _, purpose := range purposes {
		data = append(data, newPurpose(c, purpose))
	}

	c.JSON(http.StatusOK, PurposeListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get purpose
// @Description	Returns a specific purpose
// @Tags			Purposes
// @Produce		json
// @Success		200	{object}	PurposeResponse
// @Failure		400	{object}	PurposeResponse
// @Failure		404	{object}	PurposeResponse
// @Failure		500	{object}	PurposeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/purposes/{id} [get]
func GetPurpose(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PurposeResponse{
			Error: &s,
		})
		return
	}

	var purpose models.BudgetPurpose
	err = models.DB.First(&purpose, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PurposeResponse{
			Error: &s,
		})
		return
	}

	data := newPurpose(c, purpose)
	c.JSON(http.StatusOK, PurposeResponse{Data: &data})
}

// @Summary		Update purpose
// @Description	Update an existing purpose. Only values to be updated need to be specified.
// @Tags			Purposes
// @Accept			json
// @Produce		json
// @Success		200		{object}	PurposeResponse
// @Failure		400		{object}	PurposeResponse
// @Failure		404		{object}	PurposeResponse
// @Failure		500		{object}	PurposeResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			purpose	body		PurposeEditable	true	"Purpose"
// @Router			/v1/purposes/{id} [patch]
func UpdatePurpose(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PurposeResponse{
			Error: &s,
		})
		return
	}

	var purpose models.BudgetPurpose
	err = models.DB.First(&purpose, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PurposeResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PurposeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PurposeResponse{
			Error: &s,
		})
		return
	}

	var data PurposeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PurposeResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&purpose).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PurposeResponse{
			Error: &s,
		})
		return
	}

	r := newPurpose(c, purpose)
	c.JSON(http.StatusOK, PurposeResponse{Data: &r})
}

// @Summary		Delete purpose
// @Description	Deletes a purpose
// @Tags			Purposes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/purposes/{id} [delete]
func DeletePurpose(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var purpose models.BudgetPurpose
	err = models.DB.First(&purpose, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&purpose).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
