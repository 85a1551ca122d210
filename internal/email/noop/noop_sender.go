package noop

import (
	"context"
	"log"

	"billforge/internal/domain"
	"billforge/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs invoice sends to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoice(_ context.Context, snap *domain.InvoiceSnapshot, downloadURL string) error {
	log.Printf("[NOOP EMAIL] Invoice %s (total %.2f) for %s <%s>, download: %s",
		snap.InvoiceNumber, snap.GrandTotal, snap.BillTo.Name, snap.BillTo.Email, downloadURL)
	return nil
}
