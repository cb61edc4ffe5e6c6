package worker

// email_worker.go
// Processes email jobs from service.QueueEmail: customer receipts (with the
// PDF attached) and RM overdue digests.

import (
	"context"
	"encoding/json"

	"github.com/Aniket-89/recrm/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to service.QueueEmail. It is a
// superset of service.EmailJob — receipt emails add an attachment path.
type EmailJobPayload struct {
	To             []string `json:"to"`
	Subject        string   `json:"subject"`
	Body           string   `json:"body"`
	AttachmentPath string   `json:"attachment_path,omitempty"`
}

type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends one email, attaching the referenced file when present.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if len(payload.To) == 0 {
		log.Warn().Msg("email_worker: empty recipient list — skipping")
		return
	}

	err := withRetry(ctx, 3, func(attempt int) error {
		if err := w.mailer.Send(payload.To, payload.Subject, payload.Body, payload.AttachmentPath); err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Msg("email_worker: send failed, retrying")
			return err
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Strs("to", payload.To).Msg("email_worker: failed to send after retries")
		return
	}
	log.Info().Strs("to", payload.To).Str("subject", payload.Subject).Msg("email_worker: email sent")
}
