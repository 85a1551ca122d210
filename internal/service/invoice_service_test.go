package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billforge/internal/domain"
	"billforge/internal/port"
	"billforge/internal/service"
	"billforge/mocks"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func storedInvoice(items ...domain.LineItem) *domain.Invoice {
	return &domain.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-001",
		BillTo:        domain.Party{Name: "Acme Traders", Email: "billing@acme.test"},
		Context: domain.InvoiceContext{
			CustomerType: domain.CustomerB2B,
			ItemKind:     domain.ItemKindGoods,
		},
		Items: items,
	}
}

func TestInvoiceService_Create_SeedsOneDefaultLine(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	hsnRepo := new(mocks.MockHSNRepo)
	svc := service.NewInvoiceService(repo, hsnRepo, 18)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	inv, err := svc.Create(context.Background(), service.CreateInvoiceInput{
		InvoiceNumber: "INV-001",
	})

	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, 9.0, inv.Items[0].SGSTRatePercent)
	assert.Equal(t, 9.0, inv.Items[0].CGSTRatePercent)
	assert.Equal(t, 0.0, inv.Items[0].IGSTRatePercent)
	assert.Equal(t, 1.0, inv.Items[0].Quantity)
	repo.AssertExpectations(t)
}

func TestInvoiceService_Create_InterStateDefaultsToIGST(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo, new(mocks.MockHSNRepo), 18)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	interState := true
	inv, err := svc.Create(context.Background(), service.CreateInvoiceInput{
		InvoiceNumber: "INV-002",
		Context:       service.ContextInput{IsInterState: &interState},
	})

	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, 18.0, inv.Items[0].IGSTRatePercent)
	assert.Equal(t, 0.0, inv.Items[0].SGSTRatePercent)
}

func TestInvoiceService_Update_RejectsInvalidCustomerType(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo, new(mocks.MockHSNRepo), 18)

	inv := storedInvoice(domain.NewDefaultLineItem(domain.InvoiceContext{}, 18))
	repo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

	_, err := svc.Update(context.Background(), inv.ID, service.UpdateInvoiceInput{
		Context: &service.ContextInput{CustomerType: strPtr("wholesale")},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCustomerType)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestInvoiceService_Update_Header(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo, new(mocks.MockHSNRepo), 18)

	inv := storedInvoice(domain.NewDefaultLineItem(domain.InvoiceContext{}, 18))
	repo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.Update(context.Background(), inv.ID, service.UpdateInvoiceInput{
		InvoiceNumber: strPtr("INV-099"),
		Context:       &service.ContextInput{DeliveryCharge: floatPtr(75)},
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-099", updated.InvoiceNumber)
	assert.Equal(t, 75.0, updated.Context.DeliveryCharge)
	repo.AssertExpectations(t)
}

func TestInvoiceService_AddLine_SuggestsRateFromCode(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	hsnRepo := new(mocks.MockHSNRepo)
	svc := service.NewInvoiceService(repo, hsnRepo, 18)

	inv := storedInvoice(domain.NewDefaultLineItem(domain.InvoiceContext{}, 18))
	repo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	hsnRepo.On("FindByCode", mock.Anything, "8471").Return([]port.HSNEntry{
		{Code: "8471", Kind: "goods", Description: "Computers", GSTRate: 12},
	}, nil)

	updated, err := svc.AddLine(context.Background(), inv.ID, service.LineItemInput{
		Description:        "Laptop",
		ClassificationCode: "8471",
		UnitPrice:          45000,
	})

	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	added := updated.Items[1]
	assert.Equal(t, 6.0, added.SGSTRatePercent)
	assert.Equal(t, 6.0, added.CGSTRatePercent)
	hsnRepo.AssertExpectations(t)
}

func TestInvoiceService_AddLine_ExplicitRatesWin(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	hsnRepo := new(mocks.MockHSNRepo)
	svc := service.NewInvoiceService(repo, hsnRepo, 18)

	inv := storedInvoice(domain.NewDefaultLineItem(domain.InvoiceContext{}, 18))
	repo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	hsnRepo.On("FindByCode", mock.Anything, "8471").Return([]port.HSNEntry{
		{Code: "8471", GSTRate: 12},
	}, nil)

	updated, err := svc.AddLine(context.Background(), inv.ID, service.LineItemInput{
		ClassificationCode: "8471",
		UnitPrice:          100,
		SGSTRatePercent:    floatPtr(2.5),
		CGSTRatePercent:    floatPtr(2.5),
	})

	require.NoError(t, err)
	added := updated.Items[1]
	assert.Equal(t, 2.5, added.SGSTRatePercent)
	assert.Equal(t, 2.5, added.CGSTRatePercent)
}

func TestInvoiceService_UpdateLine_UnknownItem(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo, new(mocks.MockHSNRepo), 18)

	inv := storedInvoice(domain.NewDefaultLineItem(domain.InvoiceContext{}, 18))
	repo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

	_, err := svc.UpdateLine(context.Background(), inv.ID, uuid.New(), service.LineItemInput{})

	assert.ErrorIs(t, err, domain.ErrLineItemNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestInvoiceService_RemoveLine_LastLineIsNoOp(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo, new(mocks.MockHSNRepo), 18)

	only := domain.NewDefaultLineItem(domain.InvoiceContext{}, 18)
	inv := storedInvoice(only)
	repo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

	updated, err := svc.RemoveLine(context.Background(), inv.ID, only.ID)

	require.NoError(t, err)
	assert.Len(t, updated.Items, 1)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestInvoiceService_RemoveLine_Persists(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo, new(mocks.MockHSNRepo), 18)

	first := domain.NewDefaultLineItem(domain.InvoiceContext{}, 18)
	second := domain.NewDefaultLineItem(domain.InvoiceContext{}, 18)
	inv := storedInvoice(first, second)
	repo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.RemoveLine(context.Background(), inv.ID, second.ID)

	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, first.ID, updated.Items[0].ID)
	repo.AssertExpectations(t)
}

func TestInvoiceService_Snapshot(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo, new(mocks.MockHSNRepo), 18)

	item := domain.LineItem{
		ID:              uuid.New(),
		Description:     "Widget",
		Quantity:        2,
		UnitPrice:       500,
		SGSTRatePercent: 9,
		CGSTRatePercent: 9,
	}
	inv := storedInvoice(item)
	repo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

	snap, err := svc.Snapshot(context.Background(), inv.ID)

	require.NoError(t, err)
	assert.Equal(t, "INV-001", snap.InvoiceNumber)
	assert.InDelta(t, 1180.0, snap.GrandTotal, 1e-9)
	assert.NotEmpty(t, snap.AmountInWords)
}

func TestInvoiceService_SuggestRates_NotFound(t *testing.T) {
	hsnRepo := new(mocks.MockHSNRepo)
	svc := service.NewInvoiceService(new(mocks.MockInvoiceRepo), hsnRepo, 18)

	hsnRepo.On("FindByCode", mock.Anything, "0000").Return([]port.HSNEntry{}, nil)

	_, err := svc.SuggestRates(context.Background(), "0000")
	assert.ErrorIs(t, err, domain.ErrRateNotFound)
}
