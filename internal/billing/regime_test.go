package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"billforge/internal/billing"
	"billforge/internal/domain"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name string
		ctx  domain.InvoiceContext
		want billing.Regime
	}{
		{
			name: "b2b_goods_within_state",
			ctx:  domain.InvoiceContext{CustomerType: domain.CustomerB2B, ItemKind: domain.ItemKindGoods},
			want: billing.Regime{ShowTaxBreakdown: true, ChargesQuantity: true, ClassificationKind: domain.ItemKindGoods},
		},
		{
			name: "d2c_hides_tax_table",
			ctx:  domain.InvoiceContext{CustomerType: domain.CustomerD2C, ItemKind: domain.ItemKindGoods},
			want: billing.Regime{ShowTaxBreakdown: false, ChargesQuantity: true, ClassificationKind: domain.ItemKindGoods},
		},
		{
			name: "services_bill_flat",
			ctx:  domain.InvoiceContext{CustomerType: domain.CustomerB2B, ItemKind: domain.ItemKindServices},
			want: billing.Regime{ShowTaxBreakdown: true, ChargesQuantity: false, ClassificationKind: domain.ItemKindServices},
		},
		{
			name: "inter_state",
			ctx:  domain.InvoiceContext{IsInterState: true, CustomerType: domain.CustomerB2B, ItemKind: domain.ItemKindGoods},
			want: billing.Regime{InterState: true, ShowTaxBreakdown: true, ChargesQuantity: true, ClassificationKind: domain.ItemKindGoods},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, billing.Resolve(tc.ctx))
		})
	}
}

func TestRegime_TransactionType(t *testing.T) {
	assert.Equal(t, "inter-state", billing.Regime{InterState: true}.TransactionType())
	assert.Equal(t, "within-state", billing.Regime{}.TransactionType())
}
