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

// PostingEditable represents all user configurable parameters
type PostingEditable struct {
	OwnerID uuid.UUID `json:"ownerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the owner

	// Positive amounts are income, negative amounts are expenses.
	Amount decimal.Decimal `json:"amount" example:"-25.5"`

	BookingDate time.Time `json:"bookingDate" example:"2025-03-10T00:00:00Z"` // Date the posting was booked
	ValutaDate  time.Time `json:"valutaDate" example:"2025-03-12T00:00:00Z"`  // Value date. Defaults to the booking date

	Kind          report.PostingKind `json:"kind" example:"CONTACT"` // CONTACT, SAVINGS_PLAN or OTHER
	ContactID     *uuid.UUID         `json:"contactId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`
	SavingsPlanID *uuid.UUID         `json:"savingsPlanId" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"`

	Description  string `json:"description" example:"Weekly shopping" default:""`
	Counterparty string `json:"counterparty" example:"REWE Markt" default:""`
}

func (editable PostingEditable) model() models.Posting {
	return models.Posting{
		OwnerID:       editable.OwnerID,
		Amount:        editable.Amount,
		BookingDate:   editable.BookingDate,
		ValutaDate:    editable.ValutaDate,
		Kind:          editable.Kind,
		ContactID:     editable.ContactID,
		SavingsPlanID: editable.SavingsPlanID,
		Description:   editable.Description,
		Counterparty:  editable.Counterparty,
	}
}

type PostingLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/postings/d430d7c3-d14c-4712-9336-ee56965a6673"` // The posting itself
}

// Posting is the representation of a Posting in API v1.
type Posting struct {
	models.DefaultModel
	PostingEditable
	Links PostingLinks `json:"links"`
}

// newPosting returns the API v1 representation of the resource
func newPosting(c *gin.Context, model models.Posting) Posting {
	url := httputil.RequestPathV1(c)

	return Posting{
		DefaultModel: model.DefaultModel,
		PostingEditable: PostingEditable{
			OwnerID:       model.OwnerID,
			Amount:        model.Amount,
			BookingDate:   model.BookingDate,
			ValutaDate:    model.ValutaDate,
			Kind:          model.Kind,
			ContactID:     model.ContactID,
			SavingsPlanID: model.SavingsPlanID,
			Description:   model.Description,
			Counterparty:  model.Counterparty,
		},
		Links: PostingLinks{
			Self: fmt.Sprintf("%s/postings/%s", url, model.ID),
		},
	}
}

type PostingListResponse struct {
	Data       []Posting   `json:"data"`                                                          // List of Postings
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PostingCreateResponse struct {
	Data  []PostingResponse `json:"data"`                                                          // List of the created Postings or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *PostingCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, PostingResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PostingResponse struct {
	Data  *Posting `json:"data"`                                                          // Data for the Posting
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PostingQueryFilter struct {
	OwnerID       pp_uuid.UUID `form:"owner"`                         // By ID of the owner
	Kind          string       `form:"kind"`                          // By posting kind
	ContactID     pp_uuid.UUID `form:"contact"`                       // By ID of the contact
	SavingsPlanID pp_uuid.UUID `form:"savingsPlan"`                   // By ID of the savings plan
	FromDate      time.Time    `form:"fromDate" filterField:"false"`  // Postings booked at and after this date
	UntilDate     time.Time    `form:"untilDate" filterField:"false"` // Postings booked before this date
	Match         string       `form:"match" filterField:"false"`     // Glob pattern matched against description and counterparty
	Offset        uint         `form:"offset" filterField:"false"`    // The offset of the first Posting returned. Defaults to 0.
	Limit         int          `form:"limit" filterField:"false"`     // Maximum number of Postings to return. Defaults to 50.
}

func (f PostingQueryFilter) model() models.Posting {
	posting := models.Posting{
		OwnerID: f.OwnerID.UUID,
		Kind:    report.PostingKind(f.Kind),
	}

	if f.ContactID != pp_uuid.Nil {
		id := f.ContactID.UUID
		posting.ContactID = &id
	}

	if f.SavingsPlanID != pp_uuid.Nil {
		id := f.SavingsPlanID.UUID
		posting.SavingsPlanID = &id
	}

	return posting
}
