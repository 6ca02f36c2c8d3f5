package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/types"
)

// RegisterOverrideRoutes registers the routes for overrides with
// the RouterGroup that is passed.
func RegisterOverrideRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsOverrideList)
		r.GET("", GetOverrides)
		r.POST("", CreateOverrides)
	}

	// Override with purpose ID and month
	{
		r.OPTIONS("/:id/:month", OptionsOverrideDetail)
		r.GET("/:id/:month", GetOverride)
		r.PATCH("/:id/:month", UpdateOverride)
		r.DELETE("/:id/:month", DeleteOverride)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Overrides
// @Success		204
// @Router			/v1/overrides [options]
func OptionsOverrideList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Overrides
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		string	true	"ID of the purpose"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/overrides/{id}/{month} [options]
func OptionsOverrideDetail(c *gin.Context) {
	_, err := getOverrideResource(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// getOverrideResource verifies that the override from the URI exists and returns it.
func getOverrideResource(c *gin.Context) (models.BudgetOverride, error) {
	var uri URIOverride
	if err := c.ShouldBindUri(&uri); err != nil {
		return models.BudgetOverride{}, errMonthNotSetInPath
	}

	var override models.BudgetOverride
	err := models.DB.
		Where("purpose_id = ? AND month = ?", uri.ID.UUID, types.MonthOf(uri.Month)).
		First(&override).Error
	if err != nil {
		return models.BudgetOverride{}, err
	}

	return override, nil
}

// @Summary		Create overrides
// @Description	Creates new overrides
// @Tags			Overrides
// @Produce		json
// @Success		201			{object}	OverrideCreateResponse
// @Failure		400			{object}	OverrideCreateResponse
// @Failure		404			{object}	OverrideCreateResponse
// @Failure		500			{object}	OverrideCreateResponse
// @Param			overrides	body		[]OverrideEditable	true	"Overrides"
// @Router			/v1/overrides [post]
func CreateOverrides(c *gin.Context) {
	var editables []OverrideEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverrideCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := OverrideCreateResponse{}

	for _, editable := range editables {
		override := editable.model()

		err = models.DB.Create(&override).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newOverride(c, override)
		r.Data = append(r.Data, OverrideResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get overrides
// @Description	Returns a list of overrides
// @Tags			Overrides
// @Produce		json
// @Success		200	{object}	OverrideListResponse
// @Failure		400	{object}	OverrideListResponse
// @Failure		500	{object}	OverrideListResponse
// @Router			/v1/overrides [get]
// @Param			purpose	query	string	false	"Filter by purpose ID"
// @Param			offset	query	uint	false	"The offset of the first Override returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Overrides to return. Defaults to 50."
func GetOverrides(c *gin.Context) {
	var filter OverrideQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("month ASC").
		Where(filter.model(), queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var overrides []models.BudgetOverride
	err := q.Find(&overrides).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverrideListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverrideListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Override, 0)
	for _, override := range overrides {
		data = append(data, newOverride(c, override))
	}

	c.JSON(http.StatusOK, OverrideListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get override
// @Description	Returns the override of a purpose for a specific month
// @Tags			Overrides
// @Produce		json
// @Success		200		{object}	OverrideResponse
// @Failure		400		{object}	OverrideResponse
// @Failure		404		{object}	OverrideResponse
// @Failure		500		{object}	OverrideResponse
// @Param			id		path		string	true	"ID of the purpose"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/overrides/{id}/{month} [get]
func GetOverride(c *gin.Context) {
	override, err := getOverrideResource(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &s,
		})
		return
	}

	data := newOverride(c, override)
	c.JSON(http.StatusOK, OverrideResponse{Data: &data})
}

// @Summary		Update override
// @Description	Update an existing override. Only values to be updated need to be specified.
// @Tags			Overrides
// @Accept			json
// @Produce		json
// @Success		200			{object}	OverrideResponse
// @Failure		400			{object}	OverrideResponse
// @Failure		404			{object}	OverrideResponse
// @Failure		500			{object}	OverrideResponse
// @Param			id			path		string				true	"ID of the purpose"
// @Param			month		path		string				true	"The month in YYYY-MM format"
// @Param			override	body		OverrideEditable	true	"Override"
// @Router			/v1/overrides/{id}/{month} [patch]
func UpdateOverride(c *gin.Context) {
	override, err := getOverrideResource(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, OverrideEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &s,
		})
		return
	}

	var data OverrideEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&override).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &s,
		})
		return
	}

	r := newOverride(c, override)
	c.JSON(http.StatusOK, OverrideResponse{Data: &r})
}

// @Summary		Delete override
// @Description	Deletes the override of a purpose for a specific month
// @Tags			Overrides
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		string	true	"ID of the purpose"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/overrides/{id}/{month} [delete]
func DeleteOverride(c *gin.Context) {
	override, err := getOverrideResource(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&override).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
