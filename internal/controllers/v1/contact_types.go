package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
	pp_uuid "github.com/pocketplan/backend/internal/uuid"
)

// ContactEditable represents all user configurable parameters
type ContactEditable struct {
	OwnerID uuid.UUID  `json:"ownerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the owner
	Name    string     `json:"name" example:"REWE" default:""`                         // Name of the contact
	Note    string     `json:"note" default:""`                                        // Notes about the contact
	GroupID *uuid.UUID `json:"groupId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the contact group the contact currently belongs to
}

func (editable ContactEditable) model() models.Contact {
	return models.Contact{
		OwnerID: editable.OwnerID,
		Name:    editable.Name,
		Note:    editable.Note,
		GroupID: editable.GroupID,
	}
}

type ContactLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/contacts/d430d7c3-d14c-4712-9336-ee56965a6673"`             // The contact itself
	Postings string `json:"postings" example:"https://example.com/api/v1/postings?contact=d430d7c3-d14c-4712-9336-ee56965a6673"` // Postings of this contact
}

// Contact is the representation of a Contact in API v1.
type Contact struct {
	models.DefaultModel
	ContactEditable
	Links ContactLinks `json:"links"`
}

// newContact returns the API v1 representation of the resource
func newContact(c *gin.Context, model models.Contact) Contact {
	url := httputil.RequestPathV1(c)

	return Contact{
		DefaultModel: model.DefaultModel,
		ContactEditable: ContactEditable{
			OwnerID: model.OwnerID,
			Name:    model.Name,
			Note:    model.Note,
			GroupID: model.GroupID,
		},
		Links: ContactLinks{
			Self:     fmt.Sprintf("%s/contacts/%s", url, model.ID),
			Postings: fmt.Sprintf("%s/postings?contact=%s", url, model.ID),
		},
	}
}

type ContactListResponse struct {
	Data       []Contact   `json:"data"`                                                          // List of Contacts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ContactCreateResponse struct {
	Data  []ContactResponse `json:"data"`                                                          // List of the created Contacts or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ContactCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ContactResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ContactResponse struct {
	Data  *Contact `json:"data"`                                                          // Data for the Contact
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ContactQueryFilter struct {
	OwnerID pp_uuid.UUID `form:"owner"`                      // By ID of the owner
	GroupID pp_uuid.UUID `form:"group"`                      // By ID of the contact group
	Name    string       `form:"name" filterField:"false"`   // By name
	Note    string       `form:"note" filterField:"false"`   // By note
	Search  string       `form:"search" filterField:"false"` // By string in name or note
	Offset  uint         `form:"offset" filterField:"false"` // The offset of the first Contact returned. Defaults to 0.
	Limit   int          `form:"limit" filterField:"false"`  // Maximum number of Contacts to return. Defaults to 50.
}

func (f ContactQueryFilter) model() models.Contact {
	contact := models.Contact{
		OwnerID: f.OwnerID.UUID,
	}

	if f.GroupID != pp_uuid.Nil {
		id := f.GroupID.UUID
		contact.GroupID = &id
	}

	return contact
}
