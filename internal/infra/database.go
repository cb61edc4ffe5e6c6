package infra

import (
	"fmt"

	"github.com/Aniket-89/recrm/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the SQL objects GORM cannot express
// (the document-number sequences).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Plot{},
		&model.Customer{},
		&model.RelationshipManager{},
		&model.PaymentPlanTemplate{},
		&model.PlanStage{},
		&model.Booking{},
		&model.ScheduleRow{},
		&model.PaymentEntry{},
		&model.Invoice{},
		&model.DocumentEntry{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := createSequences(db); err != nil {
		return nil, fmt.Errorf("create sequences: %w", err)
	}
	if err := createIndexes(db); err != nil {
		return nil, fmt.Errorf("create indexes: %w", err)
	}

	return db, nil
}

// Drafts are inserted with booking_no 0 and only receive a real number at
// submission, so a full unique index would reject the second draft ever
// created. The index must exclude the 0 placeholder — GORM's uniqueIndex tag
// cannot express a partial index, hence raw DDL.
const bookingNoUniqueIndex = "CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_booking_no " +
	"ON bookings (booking_no) WHERE booking_no <> 0"

func createIndexes(db *gorm.DB) error {
	return db.Exec(bookingNoUniqueIndex).Error
}

// createSequences provisions the document-number sequences used for booking
// numbers, payment references and invoice numbers. CREATE SEQUENCE IF NOT
// EXISTS makes re-runs a no-op.
func createSequences(db *gorm.DB) error {
	for _, seq := range []string{
		"bookings_booking_no_seq",
		"payment_entries_reference_no_seq",
		"invoices_invoice_no_seq",
	} {
		if err := db.Exec(fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s START 1", seq)).Error; err != nil {
			return err
		}
	}
	return nil
}
