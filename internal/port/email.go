package port

import (
	"context"

	"billforge/internal/domain"
)

// EmailSender defines the contract for delivering an invoice to its billing
// party. The snapshot is fully materialized before it reaches the sender.
type EmailSender interface {
	SendInvoice(ctx context.Context, snap *domain.InvoiceSnapshot, downloadURL string) error
}
