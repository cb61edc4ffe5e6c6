package worker

// receipt_worker.go
// Processes receipt jobs from service.QueueReceipt: renders a PDF receipt for
// a payment entry and enqueues an email job to the customer when they have an
// address on file.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Aniket-89/recrm/internal/infra"
	"github.com/Aniket-89/recrm/internal/repository"
	"github.com/Aniket-89/recrm/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ReceiptWorker struct {
	payments    repository.PaymentEntryRepository
	bookings    repository.BookingRepository
	projects    repository.ProjectRepository
	dispatcher  *Dispatcher
	storagePath string
	companyName string
	currency    string
}

func NewReceiptWorker(
	payments repository.PaymentEntryRepository,
	bookings repository.BookingRepository,
	projects repository.ProjectRepository,
	dispatcher *Dispatcher,
	storagePath, companyName, currency string,
) *ReceiptWorker {
	return &ReceiptWorker{
		payments:    payments,
		bookings:    bookings,
		projects:    projects,
		dispatcher:  dispatcher,
		storagePath: storagePath,
		companyName: companyName,
		currency:    currency,
	}
}

// Process renders the receipt PDF with one retry round and hands the result
// to the email queue.
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload service.ReceiptJob
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}
	entryID, err := uuid.Parse(payload.PaymentEntryID)
	if err != nil {
		log.Error().Str("payment_entry_id", payload.PaymentEntryID).Msg("receipt_worker: invalid id")
		return
	}

	entry, err := w.payments.FindByID(ctx, entryID)
	if err != nil {
		log.Error().Err(err).Str("payment_entry_id", payload.PaymentEntryID).Msg("receipt_worker: entry not found")
		return
	}

	booking, err := w.bookings.FindByID(ctx, entry.BookingID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", entry.BookingID.String()).Msg("receipt_worker: booking not found")
		return
	}

	data := infra.ReceiptData{
		Entry:       entry,
		Customer:    booking.Customer,
		BookingNo:   booking.BookingNo,
		CompanyName: w.companyName,
		Currency:    w.currency,
	}
	if booking.Plot != nil {
		data.PlotNumber = booking.Plot.PlotNumber
	}
	if project, err := w.projects.FindByID(ctx, booking.ProjectID); err == nil {
		data.ProjectName = project.Name
	}
	if row, err := w.bookings.FindScheduleRow(ctx, entry.ScheduleRowID); err == nil {
		data.StageName = row.StageName
	}

	var pdfPath string
	err = withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GeneratePaymentReceiptPDF(data, w.storagePath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Msg("receipt_worker: pdf generation failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("reference_no", entry.ReferenceNo).Msg("receipt_worker: pdf generation failed after retries")
		SendToDLQ(ctx, w.dispatcher.rdb, service.QueueReceipt, "receipt", raw, err.Error(), 3)
		return
	}

	log.Info().Str("reference_no", entry.ReferenceNo).Str("path", pdfPath).Msg("receipt_worker: receipt generated")

	if booking.Customer == nil || booking.Customer.Email == nil || *booking.Customer.Email == "" {
		return
	}
	emailJob := EmailJobPayload{
		To:      []string{*booking.Customer.Email},
		Subject: fmt.Sprintf("Payment receipt %s", entry.ReferenceNo),
		Body: fmt.Sprintf("Dear %s,\n\nThank you for your payment of %s %s towards booking #%d.\nYour receipt is attached.\n\n%s",
			booking.Customer.Name, w.currency, entry.Amount.StringFixed(2), booking.BookingNo, w.companyName),
		AttachmentPath: pdfPath,
	}
	if err := w.dispatcher.Enqueue(ctx, service.QueueEmail, emailJob); err != nil {
		log.Error().Err(err).Str("reference_no", entry.ReferenceNo).Msg("receipt_worker: failed to enqueue email")
	}
}
