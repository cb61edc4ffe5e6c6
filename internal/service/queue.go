package service

import "context"

// Queue names consumed by the worker pool.
const (
	QueueReceipt = "jobs:receipt"
	QueueEmail   = "jobs:email"
)

// JobQueue pushes background jobs for the worker pool. Implemented over Redis
// lists in the worker package; a nil queue disables async side effects.
type JobQueue interface {
	Enqueue(ctx context.Context, queue string, payload any) error
}

// ReceiptJob asks the receipt worker to render a PDF receipt for a payment
// entry and mail it to the customer.
type ReceiptJob struct {
	PaymentEntryID string `json:"payment_entry_id"`
}

// EmailJob is a pre-rendered message for the email worker.
type EmailJob struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}
