package repository

import (
	"context"

	"github.com/Aniket-89/recrm/internal/dto"

	"gorm.io/gorm"
)

// ReportRepository runs the read-only reporting queries as raw SQL — these
// cut across five tables and are much clearer as plain joins than as GORM
// chains.
type ReportRepository interface {
	BookingRegister(ctx context.Context, f dto.ReportFilter) ([]dto.BookingRegisterRow, error)
	PlotInventory(ctx context.Context, f dto.ReportFilter) ([]dto.PlotInventoryRow, error)
	OverduePayments(ctx context.Context, f dto.ReportFilter) ([]dto.OverduePaymentRow, error)
	PaymentCollection(ctx context.Context, f dto.ReportFilter) ([]dto.PaymentCollectionRow, error)
	RMPerformance(ctx context.Context, f dto.ReportFilter) ([]dto.RMPerformanceRow, error)
	CustomerLedger(ctx context.Context, f dto.ReportFilter) ([]dto.CustomerLedgerRow, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) BookingRegister(ctx context.Context, f dto.ReportFilter) ([]dto.BookingRegisterRow, error) {
	sql := `
		SELECT
			b.booking_no,
			to_char(b.booking_date, 'YYYY-MM-DD') AS booking_date,
			c.name          AS customer,
			p.plot_number,
			pr.name         AS project,
			pl.name         AS plan_name,
			b.plot_value,
			b.discount,
			b.final_value,
			rm.rm_name,
			b.status
		FROM bookings b
		JOIN customers c  ON c.id  = b.customer_id
		JOIN plots p      ON p.id  = b.plot_id
		JOIN projects pr  ON pr.id = b.project_id
		JOIN payment_plan_templates pl ON pl.id = b.payment_plan_id
		LEFT JOIN relationship_managers rm ON rm.id = b.assigned_rm_id
		WHERE b.status != 'Draft'`
	args := []interface{}{}

	if f.ProjectID != "" {
		sql += " AND b.project_id = ?"
		args = append(args, f.ProjectID)
	}
	if f.RMID != "" {
		sql += " AND b.assigned_rm_id = ?"
		args = append(args, f.RMID)
	}
	if f.Status != "" && f.Status != "all" {
		sql += " AND b.status = ?"
		args = append(args, f.Status)
	}
	if f.FromDate != "" {
		sql += " AND b.booking_date >= ?"
		args = append(args, f.FromDate)
	}
	if f.ToDate != "" {
		sql += " AND b.booking_date <= ?"
		args = append(args, f.ToDate)
	}
	sql += " ORDER BY b.booking_date DESC, b.booking_no DESC"

	var rows []dto.BookingRegisterRow
	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) PlotInventory(ctx context.Context, f dto.ReportFilter) ([]dto.PlotInventoryRow, error) {
	sql := `
		SELECT
			p.plot_number,
			pr.name AS project,
			p.sector,
			p.plot_type,
			p.facing,
			p.plot_area,
			p.area_unit,
			p.rate_per_unit,
			p.total_value,
			p.status,
			b.booking_no,
			c.name AS customer,
			rm.rm_name,
			to_char(b.booking_date, 'YYYY-MM-DD') AS booking_date
		FROM plots p
		JOIN projects pr ON pr.id = p.project_id
		LEFT JOIN bookings b  ON b.id = p.booking_id AND b.status NOT IN ('Draft', 'Cancelled')
		LEFT JOIN customers c ON c.id = b.customer_id
		LEFT JOIN relationship_managers rm ON rm.id = b.assigned_rm_id
		WHERE 1=1`
	args := []interface{}{}

	if f.ProjectID != "" {
		sql += " AND p.project_id = ?"
		args = append(args, f.ProjectID)
	}
	if f.Status != "" && f.Status != "all" {
		sql += " AND p.status = ?"
		args = append(args, f.Status)
	}
	sql += " ORDER BY pr.name, p.sector, p.plot_number"

	var rows []dto.PlotInventoryRow
	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) OverduePayments(ctx context.Context, f dto.ReportFilter) ([]dto.OverduePaymentRow, error) {
	sql := `
		SELECT
			b.booking_no,
			c.name AS customer,
			p.plot_number,
			pr.name AS project,
			s.stage_name,
			s.amount_due,
			s.amount_received,
			s.balance,
			to_char(s.due_date, 'YYYY-MM-DD') AS due_date,
			(CURRENT_DATE - s.due_date)::int AS days_overdue,
			rm.rm_name
		FROM booking_schedule_rows s
		JOIN bookings b  ON b.id = s.booking_id
		JOIN customers c ON c.id = b.customer_id
		JOIN plots p     ON p.id = b.plot_id
		JOIN projects pr ON pr.id = b.project_id
		LEFT JOIN relationship_managers rm ON rm.id = b.assigned_rm_id
		WHERE s.status = 'Overdue'`
	args := []interface{}{}

	if f.ProjectID != "" {
		sql += " AND b.project_id = ?"
		args = append(args, f.ProjectID)
	}
	if f.RMID != "" {
		sql += " AND b.assigned_rm_id = ?"
		args = append(args, f.RMID)
	}
	sql += " ORDER BY s.due_date ASC"

	var rows []dto.OverduePaymentRow
	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) PaymentCollection(ctx context.Context, f dto.ReportFilter) ([]dto.PaymentCollectionRow, error) {
	sql := `
		SELECT
			pe.reference_no,
			to_char(pe.payment_date, 'YYYY-MM-DD') AS payment_date,
			c.name AS customer,
			b.booking_no,
			pr.name AS project,
			s.stage_name,
			pe.payment_mode,
			pe.amount
		FROM payment_entries pe
		JOIN bookings b  ON b.id = pe.booking_id
		JOIN customers c ON c.id = pe.customer_id
		JOIN projects pr ON pr.id = b.project_id
		JOIN booking_schedule_rows s ON s.id = pe.schedule_row_id
		WHERE 1=1`
	args := []interface{}{}

	if f.ProjectID != "" {
		sql += " AND b.project_id = ?"
		args = append(args, f.ProjectID)
	}
	if f.FromDate != "" {
		sql += " AND pe.payment_date >= ?"
		args = append(args, f.FromDate)
	}
	if f.ToDate != "" {
		sql += " AND pe.payment_date <= ?"
		args = append(args, f.ToDate)
	}
	sql += " ORDER BY pe.payment_date DESC, pe.reference_no DESC"

	var rows []dto.PaymentCollectionRow
	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) RMPerformance(ctx context.Context, f dto.ReportFilter) ([]dto.RMPerformanceRow, error) {
	sql := `
		SELECT
			rm.rm_name,
			rm.rm_code,
			COUNT(b.id) FILTER (WHERE b.status != 'Draft')                 AS total_bookings,
			COUNT(b.id) FILTER (WHERE b.status = 'Completed')              AS closed_bookings,
			COUNT(b.id) FILTER (WHERE b.status = 'Cancelled')              AS cancelled_bookings,
			COALESCE(SUM(b.final_value) FILTER (WHERE b.status NOT IN ('Draft', 'Cancelled')), 0) AS total_revenue,
			COALESCE((
				SELECT SUM(pe.amount)
				FROM payment_entries pe
				JOIN bookings b2 ON b2.id = pe.booking_id
				WHERE b2.assigned_rm_id = rm.id
			), 0) AS total_collected
		FROM relationship_managers rm
		LEFT JOIN bookings b ON b.assigned_rm_id = rm.id
		WHERE rm.active = true`
	args := []interface{}{}

	if f.RMID != "" {
		sql += " AND rm.id = ?"
		args = append(args, f.RMID)
	}
	sql += " GROUP BY rm.id, rm.rm_name, rm.rm_code ORDER BY total_revenue DESC"

	var rows []dto.RMPerformanceRow
	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}

// CustomerLedger interleaves bookings (debits) and payments (credits) for one
// customer, oldest first.
func (r *reportRepo) CustomerLedger(ctx context.Context, f dto.ReportFilter) ([]dto.CustomerLedgerRow, error) {
	sql := `
		SELECT * FROM (
			SELECT
				to_char(b.booking_date, 'YYYY-MM-DD') AS date,
				'Booking' AS entry_type,
				'RB-' || lpad(b.booking_no::text, 5, '0') AS reference,
				'Booking of plot ' || p.plot_number || ', ' || pr.name AS description,
				b.final_value AS debit,
				0::numeric AS credit
			FROM bookings b
			JOIN plots p     ON p.id = b.plot_id
			JOIN projects pr ON pr.id = b.project_id
			WHERE b.customer_id = ? AND b.status NOT IN ('Draft', 'Cancelled')

			UNION ALL

			SELECT
				to_char(pe.payment_date, 'YYYY-MM-DD') AS date,
				'Payment' AS entry_type,
				pe.reference_no AS reference,
				'Payment received (' || pe.payment_mode || ')' AS description,
				0::numeric AS debit,
				pe.amount AS credit
			FROM payment_entries pe
			WHERE pe.customer_id = ?
		) ledger
		ORDER BY date ASC, entry_type ASC`

	var rows []dto.CustomerLedgerRow
	err := r.db.WithContext(ctx).Raw(sql, f.CustomerID, f.CustomerID).Scan(&rows).Error
	return rows, err
}
