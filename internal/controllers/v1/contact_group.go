package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
	pp_uuid "github.com/pocketplan/backend/internal/uuid"
)

// ContactGroupEditable represents all user configurable parameters
type ContactGroupEditable struct {
	OwnerID uuid.UUID `json:"ownerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the owner
	Name    string    `json:"name" example:"Supermarkets" default:""`                 // Name of the contact group
	Note    string    `json:"note" default:""`                                        // Notes about the contact group
}

func (editable ContactGroupEditable) model() models.ContactGroup {
	return models.ContactGroup{
		OwnerID: editable.OwnerID,
		Name:    editable.Name,
		Note:    editable.Note,
	}
}

type ContactGroupLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/contact-groups/d430d7c3-d14c-4712-9336-ee56965a6673"`     // The contact group itself
	Contacts string `json:"contacts" example:"https://example.com/api/v1/contacts?group=d430d7c3-d14c-4712-9336-ee56965a6673"` // The contacts currently assigned to the group
}

// ContactGroup is the representation of a ContactGroup in API v1.
type ContactGroup struct {
	models.DefaultModel
	ContactGroupEditable
	Links ContactGroupLinks `json:"links"`

	// These fields are computed
	Contacts []Contact `json:"contacts"` // Contacts currently assigned to the group
}

// newContactGroup returns the API v1 representation of the resource
func newContactGroup(c *gin.Context, db *gorm.DB, model models.ContactGroup) (ContactGroup, error) {
	url := httputil.RequestPathV1(c)

	group := ContactGroup{
		DefaultModel: model.DefaultModel,
		ContactGroupEditable: ContactGroupEditable{
			OwnerID: model.OwnerID,
			Name:    model.Name,
			Note:    model.Note,
		},
		Links: ContactGroupLinks{
			Self:     fmt.Sprintf("%s/contact-groups/%s", url, model.ID),
			Contacts: fmt.Sprintf("%s/contacts?group=%s", url, model.ID),
		},
	}

	members, err := model.Members(db)
	if err != nil {
		return ContactGroup{}, err
	}

	for _, member := range members {
		group.Contacts = append(group.Contacts, newContact(c, member))
	}

	return group, nil
}

type ContactGroupListResponse struct {
	Data       []ContactGroup `json:"data"`                                                          // List of ContactGroups
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type ContactGroupCreateResponse struct {
	Data  []ContactGroupResponse `json:"data"`                                                          // List of the created ContactGroups or their respective error
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ContactGroupCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ContactGroupResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ContactGroupResponse struct {
	Data  *ContactGroup `json:"data"`                                                          // Data for the ContactGroup
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ContactGroupQueryFilter struct {
	OwnerID pp_uuid.UUID `form:"owner"`                      // By ID of the owner
	Name    string       `form:"name" filterField:"false"`   // By name
	Note    string       `form:"note" filterField:"false"`   // By note
	Search  string       `form:"search" filterField:"false"` // By string in name or note
	Offset  uint         `form:"offset" filterField:"false"` // The offset of the first ContactGroup returned. Defaults to 0.
	Limit   int          `form:"limit" filterField:"false"`  // Maximum number of ContactGroups to return. Defaults to 50.
}

func (f ContactGroupQueryFilter) model() models.ContactGroup {
	return models.ContactGroup{
		OwnerID: f.OwnerID.UUID,
	}
}

// RegisterContactGroupRoutes registers the routes for contact groups
// with the RouterGroup that is passed.
func RegisterContactGroupRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsContactGroupList)
		r.GET("", GetContactGroups)
		r.POST("", CreateContactGroups)
	}

	// ContactGroup with ID
	{
		r.OPTIONS("/:id", OptionsContactGroupDetail)
		r.GET("/:id", GetContactGroup)
		r.DELETE("/:id", DeleteContactGroup)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ContactGroups
// @Success		204
// @Router			/v1/contact-groups [options]
func OptionsContactGroupList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ContactGroups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/contact-groups/{id} [options]
func OptionsContactGroupDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.ContactGroup{}, httputil.OptionsGetDelete)
}

// @Summary		Create contact groups
// @Description	Creates new contact groups
// @Tags			ContactGroups
// @Produce		json
// @Success		201				{object}	ContactGroupCreateResponse
// @Failure		400				{object}	ContactGroupCreateResponse
// @Failure		500				{object}	ContactGroupCreateResponse
// @Param			contactGroups	body		[]ContactGroupEditable	true	"ContactGroups"
// @Router			/v1/contact-groups [post]
func CreateContactGroups(c *gin.Context) {
	var editables []ContactGroupEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContactGroupCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := ContactGroupCreateResponse{}

	for _, editable := range editables {
		group := editable.model()

		err = models.DB.Create(&group).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newContactGroup(c, models.DB, group)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, ContactGroupResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get contact groups
// @Description	Returns a list of contact groups
// @Tags			ContactGroups
// @Produce		json
// @Success		200	{object}	ContactGroupListResponse
// @Failure		400	{object}	ContactGroupListResponse
// @Failure		500	{object}	ContactGroupListResponse
// @Router			/v1/contact-groups [get]
// @Param			owner	query	string	false	"Filter by owner ID"
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first ContactGroup returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of ContactGroups to return. Defaults to 50."
func GetContactGroups(c *gin.Context) {
	var filter ContactGroupQueryFilter

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

	var groups []models.ContactGroup
	err := q.Find(&groups).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContactGroupListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContactGroupListResponse{
			Error: &e,
		})
		return
	}

	data := make([]ContactGroup, 0)
	for _, group := range groups {
		apiResource, err := newContactGroup(c, models.DB, group)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ContactGroupListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, ContactGroupListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get contact group
// @Description	Returns a specific contact group
// @Tags			ContactGroups
// @Produce		json
// @Success		200	{object}	ContactGroupResponse
// @Failure		400	{object}	ContactGroupResponse
// @Failure		404	{object}	ContactGroupResponse
// @Failure		500	{object}	ContactGroupResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/contact-groups/{id} [get]
func GetContactGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContactGroupResponse{
			Error: &s,
		})
		return
	}

	var group models.ContactGroup
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContactGroupResponse{
			Error: &s,
		})
		return
	}

	data, err := newContactGroup(c, models.DB, group)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContactGroupResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ContactGroupResponse{Data: &data})
}

// @Summary		Delete contact group
// @Description	Deletes a contact group. Contacts keep existing and become ungrouped
// @Tags			ContactGroups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/contact-groups/{id} [delete]
func DeleteContactGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var group models.ContactGroup
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&group).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
