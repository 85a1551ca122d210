package domain

// CustomerType selects the invoice presentation mode. It never affects the
// arithmetic: B2C/D2C invoices carry the same totals, they just suppress
// the line-by-line tax table.
type CustomerType string

const (
	CustomerB2B CustomerType = "b2b"
	CustomerD2C CustomerType = "d2c"
)

// ValidCustomerTypes maps accepted customer type values.
var ValidCustomerTypes = map[CustomerType]bool{
	CustomerB2B: true,
	CustomerD2C: true,
}

// ItemKind determines which classification scheme applies: HSN for goods,
// SAC for services. Services lines bill a flat unit price.
type ItemKind string

const (
	ItemKindGoods    ItemKind = "goods"
	ItemKindServices ItemKind = "services"
)

// ValidItemKinds maps accepted item kind values.
var ValidItemKinds = map[ItemKind]bool{
	ItemKindGoods:    true,
	ItemKindServices: true,
}

// Transaction type values used in snapshots and exports.
const (
	TransactionInterState  = "inter-state"
	TransactionWithinState = "within-state"
)
