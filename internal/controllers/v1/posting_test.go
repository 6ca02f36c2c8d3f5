package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/pocketplan/backend/internal/controllers/v1"
	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/report"
	"github.com/pocketplan/backend/test"
)

// TestPostingsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestPostingsOptions() {
	tests := []struct {
		name   string
		id     string // path at the postings endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Posting with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Posting exists", createTestPosting(suite.T(), v1.PostingEditable{
			Amount:      decimal.RequireFromString("-12.34"),
			BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/postings", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestPostingsCreateFails() {
	tests := []struct {
		name     string
		body     any
		status   int                                            // expected HTTP status
		testFunc func(t *testing.T, p v1.PostingCreateResponse) // tests to perform against the response
	}{
		{
			"Broken Body", `[{ "description": 2 }]`, http.StatusBadRequest,
			nil,
		},
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, p v1.PostingCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *p.Error)
			},
		},
		{
			"Invalid kind",
			`[{ "kind": "TRANSFER", "amount": "-10", "bookingDate": "2025-03-10T00:00:00Z" }]`,
			http.StatusBadRequest,
			func(t *testing.T, p v1.PostingCreateResponse) {
				assert.Equal(t, models.ErrPostingKindInvalid.Error(), *p.Data[0].Error)
			},
		},
		{
			"Contact posting without contact",
			`[{ "kind": "CONTACT", "amount": "-10", "bookingDate": "2025-03-10T00:00:00Z" }]`,
			http.StatusBadRequest,
			func(t *testing.T, p v1.PostingCreateResponse) {
				assert.Equal(t, models.ErrPostingReferenceMissing.Error(), *p.Data[0].Error)
			},
		},
		{
			"Non-existing contact",
			`[{ "kind": "CONTACT", "contactId": "ea85ad1a-3679-4ced-b83b-89566c12ece9", "amount": "-10", "bookingDate": "2025-03-10T00:00:00Z" }]`,
			http.StatusNotFound,
			func(t *testing.T, p v1.PostingCreateResponse) {
				assert.Equal(t, "there is no contact matching your query", *p.Data[0].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/postings", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var p v1.PostingCreateResponse
			test.DecodeResponse(t, &r, &p)

			if tt.testFunc != nil {
				tt.testFunc(t, p)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestPostingsGetFilter() {
	owner := uuid.New()

	contact := createTestContact(suite.T(), v1.ContactEditable{OwnerID: owner, Name: "REWE"})

	_ = createTestPosting(suite.T(), v1.PostingEditable{
		OwnerID:      owner,
		Amount:       decimal.RequireFromString("-42.17"),
		BookingDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind:         report.PostingContact,
		ContactID:    &contact.Data.ID,
		Description:  "Weekly shopping",
		Counterparty: "REWE Markt GmbH",
	})

	_ = createTestPosting(suite.T(), v1.PostingEditable{
		OwnerID:      owner,
		Amount:       decimal.RequireFromString("-800"),
		BookingDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Description:  "Rent March",
		Counterparty: "Landlord",
	})

	_ = createTestPosting(suite.T(), v1.PostingEditable{
		OwnerID:      owner,
		Amount:       decimal.RequireFromString("2500"),
		BookingDate:  time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		Description:  "Salary",
		Counterparty: "ACME Corp",
	})

	_ = createTestPosting(suite.T(), v1.PostingEditable{
		OwnerID:     uuid.New(),
		Amount:      decimal.RequireFromString("-5"),
		BookingDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Description: "Other owners posting",
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Owner", fmt.Sprintf("owner=%s", owner), 3},
		{"Owner Not Existing", "owner=c9e4ee7a-e702-4f92-b168-11a95b22c7aa", 0},
		{"Kind", fmt.Sprintf("owner=%s&kind=CONTACT", owner), 1},
		{"Contact", fmt.Sprintf("contact=%s", contact.Data.ID), 1},
		{"From date", fmt.Sprintf("owner=%s&fromDate=2025-03-01T00:00:00Z", owner), 2},
		{"Until date", fmt.Sprintf("owner=%s&untilDate=2025-03-01T00:00:00Z", owner), 1},
		{"Glob on description", fmt.Sprintf("owner=%s&match=*shopping", owner), 1},
		{"Glob on counterparty", fmt.Sprintf("owner=%s&match=REWE*", owner), 1},
		{"Glob without wildcard", fmt.Sprintf("owner=%s&match=Salary", owner), 1},
		{"Glob matches nothing", fmt.Sprintf("owner=%s&match=Bicycle*", owner), 0},
		{"Limit", fmt.Sprintf("owner=%s&limit=2", owner), 2},
		{"Offset", fmt.Sprintf("owner=%s&offset=2", owner), 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.PostingListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/postings?%s", tt.query), "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

// TestPostingsGetSorted verifies that postings are sorted by booking date.
func (suite *TestSuiteStandard) TestPostingsGetSorted() {
	second := createTestPosting(suite.T(), v1.PostingEditable{
		Amount:      decimal.RequireFromString("-10"),
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})

	first := createTestPosting(suite.T(), v1.PostingEditable{
		Amount:      decimal.RequireFromString("-20"),
		BookingDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/postings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var postings v1.PostingListResponse
	test.DecodeResponse(suite.T(), &r, &postings)

	assert.Len(suite.T(), postings.Data, 2)
	assert.Equal(suite.T(), first.Data.ID, postings.Data[0].ID)
	assert.Equal(suite.T(), second.Data.ID, postings.Data[1].ID)
}

// Verify that updating postings works as desired
func (suite *TestSuiteStandard) TestPostingsUpdate() {
	posting := createTestPosting(suite.T(), v1.PostingEditable{
		Amount:      decimal.RequireFromString("-10"),
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Initial description",
	})

	r := test.Request(suite.T(), http.MethodPatch, posting.Data.Links.Self, map[string]any{
		"description": "Updated description",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.PostingResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "Updated description", updated.Data.Description)
	assert.True(suite.T(), updated.Data.Amount.Equal(decimal.RequireFromString("-10")))
}

// TestPostingsDelete verifies all cases for posting deletions.
func (suite *TestSuiteStandard) TestPostingsDelete() {
	p := createTestPosting(suite.T(), v1.PostingEditable{
		Amount:      decimal.RequireFromString("-10"),
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodDelete, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
