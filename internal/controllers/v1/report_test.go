package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/pocketplan/backend/internal/controllers/v1"
	"github.com/pocketplan/backend/internal/report"
	"github.com/pocketplan/backend/test"
)

// reportFixture creates a full budget configuration over the API and
// returns the owner ID.
//
// For March 2025 it contains a "Groceries" purpose budgeting the
// "Supermarkets" contact group at -300 per month under the "Household"
// category, postings of -42.17 and -57.83 at the two supermarkets and
// an unbudgeted salary posting of 2500.
func reportFixture(t *testing.T) uuid.UUID {
	owner := uuid.New()

	group := createTestContactGroup(t, v1.ContactGroupEditable{OwnerID: owner, Name: "Supermarkets"})
	rewe := createTestContact(t, v1.ContactEditable{OwnerID: owner, Name: "REWE", GroupID: &group.Data.ID})
	aldi := createTestContact(t, v1.ContactEditable{OwnerID: owner, Name: "ALDI", GroupID: &group.Data.ID})

	category := createTestCategory(t, v1.CategoryEditable{OwnerID: owner, Name: "Household"})
	purpose := createTestPurpose(t, v1.PurposeEditable{
		OwnerID:    owner,
		Name:       "Groceries",
		SourceType: report.SourceContactGroup,
		SourceID:   group.Data.ID,
		CategoryID: &category.Data.ID,
	})

	createTestRule(t, v1.RuleEditable{
		OwnerID:   owner,
		PurposeID: &purpose.Data.ID,
		Amount:    decimal.RequireFromString("-300"),
		Interval:  report.IntervalMonthly,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	createTestPosting(t, v1.PostingEditable{
		OwnerID:     owner,
		Amount:      decimal.RequireFromString("-42.17"),
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind:        report.PostingContact,
		ContactID:   &rewe.Data.ID,
	})

	createTestPosting(t, v1.PostingEditable{
		OwnerID:     owner,
		Amount:      decimal.RequireFromString("-57.83"),
		BookingDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		Kind:        report.PostingContact,
		ContactID:   &aldi.Data.ID,
	})

	createTestPosting(t, v1.PostingEditable{
		OwnerID:     owner,
		Amount:      decimal.RequireFromString("2500"),
		BookingDate: time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC),
		Description: "Salary",
	})

	return owner
}

// TestReportsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestReportsOptions() {
	paths := []string{
		"http://example.com/v1/reports",
		"http://example.com/v1/reports/raw",
		"http://example.com/v1/reports/kpi",
	}

	for _, path := range paths {
		suite.T().Run(path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, http.MethodGet, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestReportGet() {
	owner := reportFixture(suite.T())

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/reports?owner=%s&asOf=2025-03-15", owner), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	data := response.Data
	assert.True(suite.T(), data.From.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(suite.T(), data.To.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))

	require.Len(suite.T(), data.Periods, 1)
	assert.True(suite.T(), data.Periods[0].Budget.Equal(decimal.RequireFromString("-300")), "period budget is %s", data.Periods[0].Budget)
	assert.True(suite.T(), data.Periods[0].Actual.Equal(decimal.RequireFromString("2400")), "period actual is %s", data.Periods[0].Actual)

	// Household, Sum, Unbudgeted, Result
	require.Len(suite.T(), data.Categories, 4)

	household := data.Categories[0]
	assert.Equal(suite.T(), report.RowData, household.Type)
	assert.Equal(suite.T(), "Household", household.Name)
	assert.True(suite.T(), household.Budget.Equal(decimal.RequireFromString("-300")), "category budget is %s", household.Budget)
	assert.True(suite.T(), household.Actual.Equal(decimal.RequireFromString("-100")), "category actual is %s", household.Actual)

	sum := data.Categories[1]
	assert.Equal(suite.T(), report.RowSum, sum.Type)
	assert.True(suite.T(), sum.Budget.Equal(decimal.RequireFromString("-300")))
	assert.True(suite.T(), sum.Actual.Equal(decimal.RequireFromString("-100")))

	unbudgeted := data.Categories[2]
	assert.Equal(suite.T(), report.RowUnbudgeted, unbudgeted.Type)
	assert.True(suite.T(), unbudgeted.Actual.Equal(decimal.RequireFromString("2500")))

	result := data.Categories[3]
	assert.Equal(suite.T(), report.RowResult, result.Type)
	assert.True(suite.T(), result.Actual.Equal(decimal.RequireFromString("2400")))
}

func (suite *TestSuiteStandard) TestReportGetFails() {
	owner := uuid.New()

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"Missing owner", "asOf=2025-03-15", http.StatusBadRequest},
		{"Invalid owner", "owner=not-a-uuid", http.StatusBadRequest},
		{"Invalid asOf", fmt.Sprintf("owner=%s&asOf=March", owner), http.StatusBadRequest},
		{"Invalid months", fmt.Sprintf("owner=%s&months=-1", owner), http.StatusBadRequest},
		{"Invalid interval", fmt.Sprintf("owner=%s&interval=WEEKLY", owner), http.StatusBadRequest},
		{"Invalid value scope", fmt.Sprintf("owner=%s&valueScope=EVERYTHING", owner), http.StatusBadRequest},
		{"Invalid date basis", fmt.Sprintf("owner=%s&dateBasis=SIDEREAL", owner), http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/reports?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.ReportResponse
			test.DecodeResponse(t, &r, &response)
			assert.NotNil(t, response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestReportGetQuarterly() {
	owner := reportFixture(suite.T())

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/reports?owner=%s&asOf=2025-03-15&months=3&interval=QUARTERLY", owner), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	// January through March is one calendar quarter.
	require.Len(suite.T(), response.Data.Periods, 1)
	assert.True(suite.T(), response.Data.Periods[0].Budget.Equal(decimal.RequireFromString("-900")), "period budget is %s", response.Data.Periods[0].Budget)
}

func (suite *TestSuiteStandard) TestRawDataGet() {
	owner := reportFixture(suite.T())

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/raw?owner=%s&from=2025-03-01&to=2025-04-01", owner), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RawDataResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	data := response.Data
	require.Len(suite.T(), data.Categories, 1)
	assert.Equal(suite.T(), "Household", data.Categories[0].Category.Name)

	require.Len(suite.T(), data.Categories[0].Purposes, 1)
	groceries := data.Categories[0].Purposes[0]
	assert.Equal(suite.T(), "Groceries", groceries.Purpose.Name)
	assert.True(suite.T(), groceries.BudgetedTarget.Equal(decimal.RequireFromString("-300")), "budgeted target is %s", groceries.BudgetedTarget)
	assert.Len(suite.T(), groceries.Postings, 2)

	require.Len(suite.T(), data.UnbudgetedPostings, 1)
	assert.True(suite.T(), data.UnbudgetedPostings[0].Amount.Equal(decimal.RequireFromString("2500")))

	assert.Empty(suite.T(), data.UncategorizedPurposes)
}

func (suite *TestSuiteStandard) TestRawDataGetFails() {
	owner := uuid.New()

	tests := []struct {
		name  string
		query string
	}{
		{"Missing owner", "from=2025-03-01&to=2025-04-01"},
		{"Missing range", fmt.Sprintf("owner=%s", owner)},
		{"Invalid dates", fmt.Sprintf("owner=%s&from=yesterday&to=tomorrow", owner)},
		{"Inverted range", fmt.Sprintf("owner=%s&from=2025-04-01&to=2025-03-01", owner)},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/raw?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestMonthlyKpiGet() {
	owner := reportFixture(suite.T())

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/kpi?owner=%s&month=2025-03", owner), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.KpiResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	kpi := response.Data
	assert.True(suite.T(), kpi.PlannedExpense.Equal(decimal.RequireFromString("300")), "planned expense is %s", kpi.PlannedExpense)
	assert.True(suite.T(), kpi.PlannedResult.Equal(decimal.RequireFromString("-300")))
	assert.True(suite.T(), kpi.BudgetedRealizedExpense.Equal(decimal.RequireFromString("100")), "realized expense is %s", kpi.BudgetedRealizedExpense)
	assert.True(suite.T(), kpi.UnbudgetedIncome.Equal(decimal.RequireFromString("2500")))
	assert.True(suite.T(), kpi.ActualResult.Equal(decimal.RequireFromString("2400")))
	assert.True(suite.T(), kpi.RemainingPlannedExpense.Equal(decimal.RequireFromString("200")))
	assert.True(suite.T(), kpi.ExpectedExpense.Equal(decimal.RequireFromString("300")))
	assert.True(suite.T(), kpi.ExpectedResult.Equal(decimal.RequireFromString("2200")))
}

func (suite *TestSuiteStandard) TestMonthlyKpiGetFails() {
	owner := uuid.New()

	tests := []struct {
		name  string
		query string
	}{
		{"Missing owner", "month=2025-03"},
		{"Invalid month", fmt.Sprintf("owner=%s&month=March", owner)},
		{"Invalid date basis", fmt.Sprintf("owner=%s&month=2025-03&dateBasis=SIDEREAL", owner)},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/kpi?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

// TestMonthlyKpiEmpty verifies that a month without any data returns a
// zero KPI vector instead of an error.
func (suite *TestSuiteStandard) TestMonthlyKpiEmpty() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/kpi?owner=%s&month=2025-03", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.KpiResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.ActualResult.IsZero())
}
