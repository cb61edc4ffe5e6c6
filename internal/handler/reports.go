package handler

import (
	"fmt"
	"net/http"

	"github.com/Aniket-89/recrm/internal/apierror"
	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Run godoc
// @Summary      Run a report
// @Description  Reports: booking-register, plot-inventory, overdue-payments, payment-collection, rm-performance, customer-ledger. Set format=xlsx for a spreadsheet download.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        name        path  string true  "Report name"
// @Param        project_id  query string false "Filter by project"
// @Param        rm_id       query string false "Filter by RM"
// @Param        customer_id query string false "Filter by customer (required for customer-ledger)"
// @Param        status      query string false "Status filter"
// @Param        from_date   query string false "YYYY-MM-DD"
// @Param        to_date     query string false "YYYY-MM-DD"
// @Param        format      query string false "json (default) | xlsx"
// @Success      200
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reports/{name} [get]
func (h *ReportsHandler) Run(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	name := c.Param("name")
	ctx := c.Request.Context()

	if name == service.ReportCustomerLedger && filter.CustomerID == "" {
		c.JSON(http.StatusBadRequest, apierror.New("customer_id is required for the customer ledger"))
		return
	}

	if filter.Format == "xlsx" {
		data, filename, err := h.svc.Export(ctx, name, filter)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, xlsxContentType, data)
		return
	}

	var (
		rows interface{}
		err  error
	)
	switch name {
	case service.ReportBookingRegister:
		rows, err = h.svc.BookingRegister(ctx, filter)
	case service.ReportPlotInventory:
		rows, err = h.svc.PlotInventory(ctx, filter)
	case service.ReportOverduePayments:
		rows, err = h.svc.OverduePayments(ctx, filter)
	case service.ReportPaymentCollection:
		rows, err = h.svc.PaymentCollection(ctx, filter)
	case service.ReportRMPerformance:
		rows, err = h.svc.RMPerformance(ctx, filter)
	case service.ReportCustomerLedger:
		rows, err = h.svc.CustomerLedger(ctx, filter)
	default:
		c.JSON(http.StatusNotFound, apierror.New("Unknown report"))
		return
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
