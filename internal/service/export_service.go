package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"billforge/internal/csvexport"
	"billforge/internal/domain"
	"billforge/internal/port"
	"billforge/internal/xlsxexport"
)

// Export is a rendered invoice document ready to stream to the client.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadResult describes an export delivered to object storage.
type UploadResult struct {
	Bucket      string `json:"bucket"`
	Key         string `json:"key"`
	Location    string `json:"location"`
	DownloadURL string `json:"download_url"`
}

// ExportService renders invoice snapshots into shareable documents and moves
// them out of the system: file downloads, object storage, email.
type ExportService interface {
	ExportCSV(ctx context.Context, invoiceID uuid.UUID) (*Export, error)
	ExportXLSX(ctx context.Context, invoiceID uuid.UUID) (*Export, error)
	UploadSnapshot(ctx context.Context, invoiceID uuid.UUID) (*UploadResult, error)
	SendInvoice(ctx context.Context, invoiceID uuid.UUID) error
}

type exportService struct {
	invoices      InvoiceService
	storage       port.ObjectStorage
	email         port.EmailSender
	bucket        string
	presignExpiry int64
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	invoices InvoiceService,
	storage port.ObjectStorage,
	email port.EmailSender,
	bucket string,
	presignExpiry int64,
) ExportService {
	return &exportService{
		invoices:      invoices,
		storage:       storage,
		email:         email,
		bucket:        bucket,
		presignExpiry: presignExpiry,
	}
}

func (s *exportService) ExportCSV(ctx context.Context, invoiceID uuid.UUID) (*Export, error) {
	snap, err := s.invoices.Snapshot(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)

	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, fmt.Errorf("exportService.ExportCSV: %w", err)
	}
	if err := w.WriteSnapshot(snap); err != nil {
		return nil, fmt.Errorf("exportService.ExportCSV: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("exportService.ExportCSV: %w", err)
	}

	return &Export{
		Filename:    csvexport.BuildFilename(snap.InvoiceNumber, "csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func (s *exportService) ExportXLSX(ctx context.Context, invoiceID uuid.UUID) (*Export, error) {
	snap, err := s.invoices.Snapshot(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	data, err := xlsxexport.Write(snap)
	if err != nil {
		return nil, fmt.Errorf("exportService.ExportXLSX: %w", err)
	}

	return &Export{
		Filename:    csvexport.BuildFilename(snap.InvoiceNumber, "xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, nil
}

func (s *exportService) UploadSnapshot(ctx context.Context, invoiceID uuid.UUID) (*UploadResult, error) {
	export, err := s.ExportXLSX(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("invoices/%s/%s", invoiceID, export.Filename)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(export.Data),
		ContentType: export.ContentType,
	})
	if err != nil {
		return nil, domain.ErrUploadFailed
	}

	url, err := s.storage.GetPresignedURL(ctx, s.bucket, key, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("exportService.UploadSnapshot: %w", err)
	}

	return &UploadResult{
		Bucket:      s.bucket,
		Key:         key,
		Location:    out.Location,
		DownloadURL: url,
	}, nil
}

func (s *exportService) SendInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	snap, err := s.invoices.Snapshot(ctx, invoiceID)
	if err != nil {
		return err
	}

	// Best effort attachment: the mail still goes out with totals if the
	// upload step fails.
	downloadURL := ""
	if upload, err := s.UploadSnapshot(ctx, invoiceID); err == nil {
		downloadURL = upload.DownloadURL
	}

	if err := s.email.SendInvoice(ctx, snap, downloadURL); err != nil {
		return fmt.Errorf("exportService.SendInvoice: %w", err)
	}
	return nil
}
