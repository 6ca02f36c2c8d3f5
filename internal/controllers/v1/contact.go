package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
)

// RegisterContactRoutes registers the routes for contacts with
// the RouterGroup that is passed.
func RegisterContactRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsContactList)
		r.GET("", GetContacts)
		r.POST("", CreateContacts)
	}

	// Contact with ID
	{
		r.OPTIONS("/:id", OptionsContactDetail)
		r.GET("/:id", GetContact)
		r.PATCH("/:id", UpdateContact)
		r.DELETE("/:id", DeleteContact)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Contacts
// @Success		204
// @Router			/v1/contacts [options]
func OptionsContactList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Contacts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/contacts/{id} [options]
func OptionsContactDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Contact{}, httputil.OptionsGetPatchDelete)
}

// @Summary		Create contacts
// @Description	Creates new contacts
// @Tags			Contacts
// @Produce		json
// @Success		201			{object}	ContactCreateResponse
// @Failure		400			{object}	ContactCreateResponse
// @Failure		404			{object}	ContactCreateResponse
// @Failure		500			{object}	ContactCreateResponse
// @Param			contacts	body		[]ContactEditable	true	"Contacts"
// @Router			/v1/contacts [post]
func CreateContacts(c *gin.Context) {
	var editables []ContactEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContactCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := ContactCreateResponse{}

	for _, editable := range editables {
		contact := editable.model()

		err = models.DB.Create(&contact).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newContact(c, contact)
		r.Data = append(r.Data, ContactResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get contacts
// @Description	Returns a list of contacts
// @Tags			Contacts
// @Produce		json
// @Success		200	{object}	ContactListResponse
// @Failure		400	{object}	ContactListResponse
// @Failure		500	{object}	ContactListResponse
// @Router			/v1/contacts [get]
// @Param			owner	query	string	false	"Filter by owner ID"
// @Param			group	query	string	false	"Filter by contact group ID"
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first Contact returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Contacts to return. Defaults to 50."
func GetContacts(c *gin.Context) {
	var filter ContactQueryFilter

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

	var contacts []models.Contact
	err := q.Find(&contacts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContactListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContactListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Contact, 0)
	for _, contact := range contacts {
		data = append(data, newContact(c, contact))
	}

	c.JSON(http.StatusOK, ContactListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get contact
// @Description	Returns a specific contact
// @Tags			Contacts
// @Produce		json
// @Success		200	{object}	ContactResponse
// @Failure		400	{object}	ContactResponse
// @Failure		404	{object}	ContactResponse
// @Failure		500	{object}	ContactResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/contacts/{id} [get]
func GetContact(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContactResponse{
			Error: &s,
		})
		return
	}

	var contact models.Contact
	err = models.DB.First(&contact, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContactResponse{
			Error: &s,
		})
		return
	}

	data := newContact(c, contact)
	c.JSON(http.StatusOK, ContactResponse{Data: &data})
}

// @Summary		Update contact
// @Description	Update an existing contact. Only values to be updated need to be specified. Changing the group changes report output for past months as membership is resolved at query time.
// @Tags			Contacts
// @Accept			json
// @Produce		json
// @Success		200		{object}	ContactResponse
// @Failure		400		{object}	ContactResponse
// @Failure		404		{object}	ContactResponse
// @Failure		500		{object}	ContactResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			contact	body		ContactEditable	true	"Contact"
// @Router			/v1/contacts/{id} [patch]
func UpdateContact(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContactResponse{
			Error: &s,
		})
		return
	}

	var contact models.Contact
	err = models.DB.First(&contact, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContactResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ContactEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContactResponse{
			Error: &s,
		})
		return
	}

	var data ContactEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContactResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&contact).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContactResponse{
			Error: &s,
		})
		return
	}

	r := newContact(c, contact)
	c.JSON(http.StatusOK, ContactResponse{Data: &r})
}

// @Summary		Delete contact
// @Description	Deletes a contact
// @Tags			Contacts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/contacts/{id} [delete]
func DeleteContact(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var contact models.Contact
	err = models.DB.First(&contact, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&contact).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
