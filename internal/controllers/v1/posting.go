package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"

	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
)

// RegisterPostingRoutes registers the routes for postings with
// the RouterGroup that is passed.
func RegisterPostingRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPostingList)
		r.GET("", GetPostings)
		r.POST("", CreatePostings)
	}

	// Posting with ID
	{
		r.OPTIONS("/:id", OptionsPostingDetail)
		r.GET("/:id", GetPosting)
		r.PATCH("/:id", UpdatePosting)
		r.DELETE("/:id", DeletePosting)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Postings
// @Success		204
// @Router			/v1/postings [options]
func OptionsPostingList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Postings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/postings/{id} [options]
func OptionsPostingDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Posting{}, httputil.OptionsGetPatchDelete)
}

// @Summary		Create postings
// @Description	Creates new postings
// @Tags			Postings
// @Produce		json
// @Success		201			{object}	PostingCreateResponse
// @Failure		400			{object}	PostingCreateResponse
// @Failure		404			{object}	PostingCreateResponse
// @Failure		500			{object}	PostingCreateResponse
// @Param			postings	body		[]PostingEditable	true	"Postings"
// @Router			/v1/postings [post]
func CreatePostings(c *gin.Context) {
	var editables []PostingEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PostingCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := PostingCreateResponse{}

	for _, editable := range editables {
		posting := editable.model()

		err = models.DB.Create(&posting).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newPosting(c, posting)
		r.Data = append(r.Data, PostingResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get postings
// @Description	Returns a list of postings
// @Tags			Postings
// @Produce		json
// @Success		200	{object}	PostingListResponse
// @Failure		400	{object}	PostingListResponse
// @Failure		500	{object}	PostingListResponse
// @Router			/v1/postings [get]
// @Param			owner		query	string	false	"Filter by owner ID"
// @Param			kind		query	string	false	"Filter by posting kind"
// @Param			contact		query	string	false	"Filter by contact ID"
// @Param			savingsPlan	query	string	false	"Filter by savings plan ID"
// @Param			fromDate	query	string	false	"Postings booked at and after this date"
// @Param			untilDate	query	string	false	"Postings booked before this date"
// @Param			match		query	string	false	"Glob pattern matched against description and counterparty, e.g. REWE*"
// @Param			offset		query	uint	false	"The offset of the first Posting returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Postings to return. Defaults to 50."
func GetPostings(c *gin.Context) {
	var filter PostingQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("booking_date ASC, id ASC").
		Where(filter.model(), queryFields...)

	if !filter.FromDate.IsZero() {
		q = q.Where("booking_date >= ?", filter.FromDate)
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("booking_date < ?", filter.UntilDate)
	}

	var postings []models.Posting
	err := q.Find(&postings).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PostingListResponse{
			Error: &s,
		})
		return
	}

	// The glob match cannot be pushed into SQL, so pagination happens
	// after it is applied.
	if filter.Match != "" {
		matched := make([]models.Posting, 0, len(postings))
		for _, posting := range postings {
			if glob.Glob(filter.Match, posting.Description) || glob.Glob(filter.Match, posting.Counterparty) {
				matched = append(matched, posting)
			}
		}
		postings = matched
	}

	count := int64(len(postings))

	if filter.Offset < uint(len(postings)) {
		postings = postings[filter.Offset:]
	} else {
		postings = nil
	}

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	if limit >= 0 && limit < len(postings) {
		postings = postings[:limit]
	}

	data := make([]Posting, 0)
	for _, posting := range postings {
		data = append(data, newPosting(c, posting))
	}

	c.JSON(http.StatusOK, PostingListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get posting
// @Description	Returns a specific posting
// @Tags			Postings
// @Produce		json
// @Success		200	{object}	PostingResponse
// @Failure		400	{object}	PostingResponse
// @Failure		404	{object}	PostingResponse
// @Failure		500	{object}	PostingResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/postings/{id} [get]
func GetPosting(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PostingResponse{
			Error: &s,
		})
		return
	}

	var posting models.Posting
	err = models.DB.First(&posting, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PostingResponse{
			Error: &s,
		})
		return
	}

	data := newPosting(c, posting)
	c.JSON(http.StatusOK, PostingResponse{Data: &data})
}

// @Summary		Update posting
// @Description	Update an existing posting. Only values to be updated need to be specified.
// @Tags			Postings
// @Accept			json
// @Produce		json
// @Success		200		{object}	PostingResponse
// @Failure		400		{object}	PostingResponse
// @Failure		404		{object}	PostingResponse
// @Failure		500		{object}	PostingResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			posting	body		PostingEditable	true	"Posting"
// @Router			/v1/postings/{id} [patch]
func UpdatePosting(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PostingResponse{
			Error: &s,
		})
		return
	}

	var posting models.Posting
	err = models.DB.First(&posting, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PostingResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PostingEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PostingResponse{
			Error: &s,
		})
		return
	}

	var data PostingEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PostingResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&posting).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PostingResponse{
			Error: &s,
		})
		return
	}

	r := newPosting(c, posting)
	c.JSON(http.StatusOK, PostingResponse{Data: &r})
}

// @Summary		Delete posting
// @Description	Deletes a posting
// @Tags			Postings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/postings/{id} [delete]
func DeletePosting(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var posting models.Posting
	err = models.DB.First(&posting, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&posting).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
