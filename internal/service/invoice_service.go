package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"billforge/internal/billing"
	"billforge/internal/domain"
	"billforge/internal/port"
)

// PartyInput is the DTO for a billing or shipping party.
type PartyInput struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	GSTNumber string `json:"gst_number"`
}

// ContextInput is the DTO for invoice-level tax and presentation settings.
type ContextInput struct {
	IsInterState   *bool    `json:"is_inter_state"`
	CustomerType   *string  `json:"customer_type"`
	ItemKind       *string  `json:"item_kind"`
	DeliveryCharge *float64 `json:"delivery_charge"`
}

// CreateInvoiceInput is the DTO for creating an invoice. A new invoice always
// starts with one default line item.
type CreateInvoiceInput struct {
	InvoiceNumber string       `json:"invoice_number" binding:"required"`
	InvoiceDate   string       `json:"invoice_date"`
	DueDate       string       `json:"due_date"`
	BillTo        PartyInput   `json:"bill_to"`
	ShipTo        PartyInput   `json:"ship_to"`
	SameAsBilling bool         `json:"same_as_billing"`
	Context       ContextInput `json:"context"`
}

// UpdateInvoiceInput is the DTO for partial header and context updates. Nil
// fields are left unchanged.
type UpdateInvoiceInput struct {
	InvoiceNumber *string       `json:"invoice_number"`
	InvoiceDate   *string       `json:"invoice_date"`
	DueDate       *string       `json:"due_date"`
	BillTo        *PartyInput   `json:"bill_to"`
	ShipTo        *PartyInput   `json:"ship_to"`
	SameAsBilling *bool         `json:"same_as_billing"`
	Context       *ContextInput `json:"context"`
}

// LineItemInput is the DTO for adding or updating a line item.
type LineItemInput struct {
	Description        string   `json:"description"`
	ClassificationCode string   `json:"classification_code"`
	Quantity           *float64 `json:"quantity"`
	UnitPrice          float64  `json:"unit_price"`
	DiscountPercent    float64  `json:"discount_percent"`
	SGSTRatePercent    *float64 `json:"sgst_rate_percent"`
	CGSTRatePercent    *float64 `json:"cgst_rate_percent"`
	IGSTRatePercent    *float64 `json:"igst_rate_percent"`
}

// InvoiceList is a paginated invoice listing.
type InvoiceList struct {
	Invoices []domain.Invoice `json:"invoices"`
	Total    int              `json:"total"`
	Offset   int              `json:"offset"`
	Limit    int              `json:"limit"`
}

// InvoiceService defines the invoice editing contract. Every mutation saves
// the invoice and returns it whole; totals are derived on read, never stored.
type InvoiceService interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, offset, limit int) (*InvoiceList, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddLine(ctx context.Context, invoiceID uuid.UUID, input LineItemInput) (*domain.Invoice, error)
	UpdateLine(ctx context.Context, invoiceID, itemID uuid.UUID, input LineItemInput) (*domain.Invoice, error)
	RemoveLine(ctx context.Context, invoiceID, itemID uuid.UUID) (*domain.Invoice, error)

	Snapshot(ctx context.Context, id uuid.UUID) (*domain.InvoiceSnapshot, error)
	SuggestRates(ctx context.Context, code string) ([]port.HSNEntry, error)
}

type invoiceService struct {
	repo           port.InvoiceRepository
	hsnRepo        port.HSNRepository
	defaultGSTRate float64
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(repo port.InvoiceRepository, hsnRepo port.HSNRepository, defaultGSTRate float64) InvoiceService {
	return &invoiceService{
		repo:           repo,
		hsnRepo:        hsnRepo,
		defaultGSTRate: defaultGSTRate,
	}
}

func toParty(in PartyInput) domain.Party {
	return domain.Party{
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		GSTNumber: in.GSTNumber,
	}
}

func (s *invoiceService) applyContext(invCtx *domain.InvoiceContext, in ContextInput) error {
	if in.IsInterState != nil {
		invCtx.IsInterState = *in.IsInterState
	}
	if in.CustomerType != nil {
		ct := domain.CustomerType(*in.CustomerType)
		if !domain.ValidCustomerTypes[ct] {
			return domain.ErrInvalidCustomerType
		}
		invCtx.CustomerType = ct
	}
	if in.ItemKind != nil {
		ik := domain.ItemKind(*in.ItemKind)
		if !domain.ValidItemKinds[ik] {
			return domain.ErrInvalidItemKind
		}
		invCtx.ItemKind = ik
	}
	if in.DeliveryCharge != nil {
		invCtx.DeliveryCharge = *in.DeliveryCharge
	}
	return nil
}

func (s *invoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	inv := &domain.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: input.InvoiceNumber,
		InvoiceDate:   input.InvoiceDate,
		DueDate:       input.DueDate,
		BillTo:        toParty(input.BillTo),
		ShipTo:        toParty(input.ShipTo),
		SameAsBilling: input.SameAsBilling,
		Context: domain.InvoiceContext{
			CustomerType: domain.CustomerB2B,
			ItemKind:     domain.ItemKindGoods,
		},
	}
	if err := s.applyContext(&inv.Context, input.Context); err != nil {
		return nil, err
	}

	// An invoice is never empty: it is born with one default line.
	inv.AddItem(domain.NewDefaultLineItem(inv.Context, s.defaultGSTRate))

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("invoiceService.Create: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, offset, limit int) (*InvoiceList, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	invoices, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.List: %w", err)
	}
	return &InvoiceList{
		Invoices: invoices,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	}, nil
}

func (s *invoiceService) Update(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.InvoiceNumber != nil {
		inv.InvoiceNumber = *input.InvoiceNumber
	}
	if input.InvoiceDate != nil {
		inv.InvoiceDate = *input.InvoiceDate
	}
	if input.DueDate != nil {
		inv.DueDate = *input.DueDate
	}
	if input.BillTo != nil {
		inv.BillTo = toParty(*input.BillTo)
	}
	if input.ShipTo != nil {
		inv.ShipTo = toParty(*input.ShipTo)
	}
	if input.SameAsBilling != nil {
		inv.SameAsBilling = *input.SameAsBilling
	}
	if input.Context != nil {
		if err := s.applyContext(&inv.Context, *input.Context); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("invoiceService.Update: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// buildLine resolves a LineItemInput into a LineItem. Rates left nil fall
// back to a classification lookup when a code is present, then to the
// configured default rate split by regime. Explicit rates always win.
func (s *invoiceService) buildLine(ctx context.Context, invCtx domain.InvoiceContext, input LineItemInput) domain.LineItem {
	rate := s.defaultGSTRate
	if input.ClassificationCode != "" && s.hsnRepo != nil {
		if entries, err := s.hsnRepo.FindByCode(ctx, input.ClassificationCode); err == nil && len(entries) > 0 {
			rate = entries[0].GSTRate
		}
	}

	item := domain.NewDefaultLineItem(invCtx, rate)
	item.Description = input.Description
	item.ClassificationCode = input.ClassificationCode
	item.UnitPrice = input.UnitPrice
	item.DiscountPercent = input.DiscountPercent
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.SGSTRatePercent != nil {
		item.SGSTRatePercent = *input.SGSTRatePercent
	}
	if input.CGSTRatePercent != nil {
		item.CGSTRatePercent = *input.CGSTRatePercent
	}
	if input.IGSTRatePercent != nil {
		item.IGSTRatePercent = *input.IGSTRatePercent
	}
	return item
}

func (s *invoiceService) AddLine(ctx context.Context, invoiceID uuid.UUID, input LineItemInput) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	inv.AddItem(s.buildLine(ctx, inv.Context, input))

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("invoiceService.AddLine: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) UpdateLine(ctx context.Context, invoiceID, itemID uuid.UUID, input LineItemInput) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	item := s.buildLine(ctx, inv.Context, input)
	item.ID = itemID
	if !inv.UpdateItem(item) {
		return nil, domain.ErrLineItemNotFound
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("invoiceService.UpdateLine: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) RemoveLine(ctx context.Context, invoiceID, itemID uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	// Removing the last remaining line is a silent no-op: the invoice is
	// returned unchanged and nothing is persisted.
	if !inv.RemoveItem(itemID) {
		return inv, nil
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("invoiceService.RemoveLine: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) Snapshot(ctx context.Context, id uuid.UUID) (*domain.InvoiceSnapshot, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snap := billing.BuildSnapshot(inv)
	return &snap, nil
}

func (s *invoiceService) SuggestRates(ctx context.Context, code string) ([]port.HSNEntry, error) {
	entries, err := s.hsnRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.SuggestRates: %w", err)
	}
	if len(entries) == 0 {
		return nil, domain.ErrRateNotFound
	}
	return entries, nil
}
