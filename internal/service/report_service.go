package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/repository"

	"github.com/xuri/excelize/v2"
)

// Report names accepted by Export and the reports endpoint.
const (
	ReportBookingRegister   = "booking-register"
	ReportPlotInventory     = "plot-inventory"
	ReportOverduePayments   = "overdue-payments"
	ReportPaymentCollection = "payment-collection"
	ReportRMPerformance     = "rm-performance"
	ReportCustomerLedger    = "customer-ledger"
)

type ReportService interface {
	BookingRegister(ctx context.Context, f dto.ReportFilter) ([]dto.BookingRegisterRow, error)
	PlotInventory(ctx context.Context, f dto.ReportFilter) ([]dto.PlotInventoryRow, error)
	OverduePayments(ctx context.Context, f dto.ReportFilter) ([]dto.OverduePaymentRow, error)
	PaymentCollection(ctx context.Context, f dto.ReportFilter) ([]dto.PaymentCollectionRow, error)
	RMPerformance(ctx context.Context, f dto.ReportFilter) ([]dto.RMPerformanceRow, error)
	CustomerLedger(ctx context.Context, f dto.ReportFilter) ([]dto.CustomerLedgerRow, error)
	// Export renders a report as an xlsx workbook and returns the bytes plus a
	// suggested filename.
	Export(ctx context.Context, report string, f dto.ReportFilter) ([]byte, string, error)
}

type reportService struct {
	reports repository.ReportRepository
}

func NewReportService(reports repository.ReportRepository) ReportService {
	return &reportService{reports: reports}
}

func (s *reportService) BookingRegister(ctx context.Context, f dto.ReportFilter) ([]dto.BookingRegisterRow, error) {
	return s.reports.BookingRegister(ctx, f)
}

func (s *reportService) PlotInventory(ctx context.Context, f dto.ReportFilter) ([]dto.PlotInventoryRow, error) {
	return s.reports.PlotInventory(ctx, f)
}

func (s *reportService) OverduePayments(ctx context.Context, f dto.ReportFilter) ([]dto.OverduePaymentRow, error) {
	return s.reports.OverduePayments(ctx, f)
}

func (s *reportService) PaymentCollection(ctx context.Context, f dto.ReportFilter) ([]dto.PaymentCollectionRow, error) {
	return s.reports.PaymentCollection(ctx, f)
}

func (s *reportService) RMPerformance(ctx context.Context, f dto.ReportFilter) ([]dto.RMPerformanceRow, error) {
	return s.reports.RMPerformance(ctx, f)
}

func (s *reportService) CustomerLedger(ctx context.Context, f dto.ReportFilter) ([]dto.CustomerLedgerRow, error) {
	return s.reports.CustomerLedger(ctx, f)
}

func (s *reportService) Export(ctx context.Context, report string, f dto.ReportFilter) ([]byte, string, error) {
	var headers []string
	var rows [][]interface{}

	switch report {
	case ReportBookingRegister:
		data, err := s.reports.BookingRegister(ctx, f)
		if err != nil {
			return nil, "", err
		}
		headers = []string{"Booking No", "Booking Date", "Customer", "Plot", "Project", "Plan", "Plot Value", "Discount", "Final Value", "RM", "Status"}
		for _, r := range data {
			rows = append(rows, []interface{}{
				r.BookingNo, r.BookingDate, r.Customer, r.PlotNumber, r.Project, r.PlanName,
				decToFloat(r.PlotValue), decToFloat(r.Discount), decToFloat(r.FinalValue),
				strOrEmpty(r.RMName), r.Status,
			})
		}
	case ReportPlotInventory:
		data, err := s.reports.PlotInventory(ctx, f)
		if err != nil {
			return nil, "", err
		}
		headers = []string{"Plot", "Project", "Sector", "Type", "Facing", "Area", "Unit", "Rate", "Total Value", "Status", "Booking No", "Customer", "RM", "Booking Date"}
		for _, r := range data {
			rows = append(rows, []interface{}{
				r.PlotNumber, r.Project, strOrEmpty(r.Sector), strOrEmpty(r.PlotType), strOrEmpty(r.Facing),
				decToFloat(r.PlotArea), r.AreaUnit, decToFloat(r.RatePerUnit), decToFloat(r.TotalValue),
				r.Status, intOrEmpty(r.BookingNo), strOrEmpty(r.Customer), strOrEmpty(r.RMName), strOrEmpty(r.BookingDate),
			})
		}
	case ReportOverduePayments:
		data, err := s.reports.OverduePayments(ctx, f)
		if err != nil {
			return nil, "", err
		}
		headers = []string{"Booking No", "Customer", "Plot", "Project", "Stage", "Amount Due", "Received", "Balance", "Due Date", "Days Overdue", "RM"}
		for _, r := range data {
			rows = append(rows, []interface{}{
				r.BookingNo, r.Customer, r.PlotNumber, r.Project, r.StageName,
				decToFloat(r.AmountDue), decToFloat(r.AmountReceived), decToFloat(r.Balance),
				r.DueDate, r.DaysOverdue, strOrEmpty(r.RMName),
			})
		}
	case ReportPaymentCollection:
		data, err := s.reports.PaymentCollection(ctx, f)
		if err != nil {
			return nil, "", err
		}
		headers = []string{"Reference", "Payment Date", "Customer", "Booking No", "Project", "Stage", "Mode", "Amount"}
		for _, r := range data {
			rows = append(rows, []interface{}{
				r.ReferenceNo, r.PaymentDate, r.Customer, r.BookingNo, r.Project, r.StageName, r.PaymentMode, decToFloat(r.Amount),
			})
		}
	case ReportRMPerformance:
		data, err := s.reports.RMPerformance(ctx, f)
		if err != nil {
			return nil, "", err
		}
		headers = []string{"RM", "Code", "Total Bookings", "Closed", "Cancelled", "Revenue", "Collected"}
		for _, r := range data {
			rows = append(rows, []interface{}{
				r.RMName, r.RMCode, r.TotalBookings, r.ClosedBookings, r.CancelledBookings,
				decToFloat(r.TotalRevenue), decToFloat(r.TotalCollected),
			})
		}
	case ReportCustomerLedger:
		data, err := s.reports.CustomerLedger(ctx, f)
		if err != nil {
			return nil, "", err
		}
		headers = []string{"Date", "Type", "Reference", "Description", "Debit", "Credit"}
		for _, r := range data {
			rows = append(rows, []interface{}{
				r.Date, r.EntryType, r.Reference, r.Description, decToFloat(r.Debit), decToFloat(r.Credit),
			})
		}
	default:
		return nil, "", ruleErrorf("unknown report %q", report)
	}

	buf, err := buildWorkbook(headers, rows)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s-%s.xlsx", report, time.Now().Format("20060102"))
	return buf, filename, nil
}

func buildWorkbook(headers []string, rows [][]interface{}) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	const sheet = "Sheet1"
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) interface{} {
	if n == nil {
		return ""
	}
	return *n
}
