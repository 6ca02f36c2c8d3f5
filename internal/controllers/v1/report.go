package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/report"
	"github.com/pocketplan/backend/internal/types"
	pp_uuid "github.com/pocketplan/backend/internal/uuid"
)

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsReport)
	r.GET("", GetReport)

	r.OPTIONS("/raw", OptionsRawData)
	r.GET("/raw", GetRawData)

	r.OPTIONS("/kpi", OptionsMonthlyKpi)
	r.GET("/kpi", GetMonthlyKpi)
}

// ReportQuery are the query parameters for the display report.
type ReportQuery struct {
	Owner      pp_uuid.UUID `form:"owner"`      // ID of the owner the report is built for
	AsOf       string       `form:"asOf"`       // Reference date in YYYY-MM-DD format. Defaults to today
	Months     int          `form:"months"`     // Number of calendar months ending with the month of asOf. Defaults to 1
	Interval   string       `form:"interval"`   // Period bucket size: MONTHLY, QUARTERLY or YEARLY. Defaults to MONTHLY
	ValueScope string       `form:"valueScope"` // TOTAL_RANGE or LAST_INTERVAL. Defaults to TOTAL_RANGE
	DateBasis  string       `form:"dateBasis"`  // BOOKING or VALUTA. Defaults to BOOKING
}

// RawDataQuery are the query parameters for the posting-level export.
type RawDataQuery struct {
	Owner     pp_uuid.UUID `form:"owner"` // ID of the owner the export is built for
	From      string       `form:"from" binding:"required"`
	To        string       `form:"to" binding:"required"`
	DateBasis string       `form:"dateBasis"` // BOOKING or VALUTA. Defaults to BOOKING
}

// KpiQuery are the query parameters for the monthly KPI vector.
type KpiQuery struct {
	Owner     pp_uuid.UUID `form:"owner"`     // ID of the owner the KPI is computed for
	Month     string       `form:"month"`     // The month in YYYY-MM format. Defaults to the current month
	DateBasis string       `form:"dateBasis"` // BOOKING or VALUTA. Defaults to BOOKING
}

type ReportResponse struct {
	Data  *report.Report `json:"data"`                                            // The report
	Error *string        `json:"error" example:"the owner parameter must be set"` // The error, if any occurred
}

type RawDataResponse struct {
	Data  *report.RawData `json:"data"`                                            // The posting-level export
	Error *string         `json:"error" example:"the owner parameter must be set"` // The error, if any occurred
}

type KpiResponse struct {
	Data  *report.KPI `json:"data"`                                            // The KPI vector
	Error *string     `json:"error" example:"the owner parameter must be set"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports [options]
func OptionsReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/raw [options]
func OptionsRawData(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/kpi [options]
func OptionsMonthlyKpi(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get report
// @Description	Returns the budget report with period and category tables for the requested range
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ReportResponse
// @Failure		400	{object}	ReportResponse
// @Failure		500	{object}	ReportResponse
// @Router			/v1/reports [get]
// @Param			owner		query	string	true	"ID of the owner"
// @Param			asOf		query	string	false	"Reference date in YYYY-MM-DD format. Defaults to today"
// @Param			months		query	int		false	"Number of calendar months ending with the month of asOf. Defaults to 1"
// @Param			interval	query	string	false	"Period bucket size: MONTHLY, QUARTERLY or YEARLY. Defaults to MONTHLY"
// @Param			valueScope	query	string	false	"TOTAL_RANGE or LAST_INTERVAL. Defaults to TOTAL_RANGE"
// @Param			dateBasis	query	string	false	"BOOKING or VALUTA. Defaults to BOOKING"
func GetReport(c *gin.Context) {
	var query ReportQuery
	if err := c.ShouldBind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ReportResponse{Error: &s})
		return
	}

	if query.Owner == pp_uuid.Nil {
		s := errOwnerNotSet.Error()
		c.JSON(http.StatusBadRequest, ReportResponse{Error: &s})
		return
	}

	asOf := time.Now().UTC()
	if query.AsOf != "" {
		parsed, err := time.Parse("2006-01-02", query.AsOf)
		if err != nil {
			s := errDateInvalid.Error()
			c.JSON(http.StatusBadRequest, ReportResponse{Error: &s})
			return
		}
		asOf = parsed
	}

	req := report.Request{
		AsOf:     asOf,
		Months:   query.Months,
		Interval: report.Interval(query.Interval),
		Scope:    report.ValueScope(query.ValueScope),
		Basis:    report.DateBasis(query.DateBasis),
	}

	if query.Months == 0 {
		req.Months = 1
	}
	if query.Interval == "" {
		req.Interval = report.IntervalMonthly
	}
	if query.ValueScope == "" {
		req.Scope = report.ScopeTotalRange
	}
	if query.DateBasis == "" {
		req.Basis = report.BasisBooking
	}

	end := types.MonthOf(req.AsOf).AddDate(0, 1).First()
	from := types.MonthOf(req.AsOf).AddDate(0, 1-req.Months).First()

	snapshot, err := models.LoadSnapshot(models.DB, query.Owner.UUID, from, end)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{Error: &s})
		return
	}

	data, err := report.BuildReport(snapshot, req)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ReportResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, ReportResponse{Data: &data})
}

// @Summary		Get raw report data
// @Description	Returns the posting-level export with budget allocation applied but nothing summarized away
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	RawDataResponse
// @Failure		400	{object}	RawDataResponse
// @Failure		500	{object}	RawDataResponse
// @Router			/v1/reports/raw [get]
// @Param			owner		query	string	true	"ID of the owner"
// @Param			from		query	string	true	"Start of the range in YYYY-MM-DD format, inclusive"
// @Param			to			query	string	true	"End of the range in YYYY-MM-DD format, exclusive"
// @Param			dateBasis	query	string	false	"BOOKING or VALUTA. Defaults to BOOKING"
func GetRawData(c *gin.Context) {
	var query RawDataQuery
	if err := c.ShouldBind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RawDataResponse{Error: &s})
		return
	}

	if query.Owner == pp_uuid.Nil {
		s := errOwnerNotSet.Error()
		c.JSON(http.StatusBadRequest, RawDataResponse{Error: &s})
		return
	}

	from, errFrom := time.Parse("2006-01-02", query.From)
	to, errTo := time.Parse("2006-01-02", query.To)
	if errFrom != nil || errTo != nil {
		s := errDateInvalid.Error()
		c.JSON(http.StatusBadRequest, RawDataResponse{Error: &s})
		return
	}

	basis := report.DateBasis(query.DateBasis)
	if query.DateBasis == "" {
		basis = report.BasisBooking
	}

	snapshot, err := models.LoadSnapshot(models.DB, query.Owner.UUID, from, to)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RawDataResponse{Error: &s})
		return
	}

	data, err := report.BuildRawData(snapshot, from, to, basis)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RawDataResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RawDataResponse{Data: &data})
}

// @Summary		Get monthly KPI
// @Description	Returns the KPI vector for a single month
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	KpiResponse
// @Failure		400	{object}	KpiResponse
// @Failure		500	{object}	KpiResponse
// @Router			/v1/reports/kpi [get]
// @Param			owner		query	string	true	"ID of the owner"
// @Param			month		query	string	false	"The month in YYYY-MM format. Defaults to the current month"
// @Param			dateBasis	query	string	false	"BOOKING or VALUTA. Defaults to BOOKING"
func GetMonthlyKpi(c *gin.Context) {
	var query KpiQuery
	if err := c.ShouldBind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, KpiResponse{Error: &s})
		return
	}

	if query.Owner == pp_uuid.Nil {
		s := errOwnerNotSet.Error()
		c.JSON(http.StatusBadRequest, KpiResponse{Error: &s})
		return
	}

	month := types.MonthOf(time.Now().UTC())
	if query.Month != "" {
		parsed, err := types.ParseMonth(query.Month)
		if err != nil {
			s := errMonthNotSetInPath.Error()
			c.JSON(http.StatusBadRequest, KpiResponse{Error: &s})
			return
		}
		month = parsed
	}

	basis := report.DateBasis(query.DateBasis)
	if query.DateBasis == "" {
		basis = report.BasisBooking
	}

	from := month.First()
	to := month.AddDate(0, 1).First()

	snapshot, err := models.LoadSnapshot(models.DB, query.Owner.UUID, from, to)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), KpiResponse{Error: &s})
		return
	}

	data, err := report.BuildMonthlyKPI(snapshot, from, basis)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, KpiResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, KpiResponse{Data: &data})
}
