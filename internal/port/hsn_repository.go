package port

import "context"

// HSNEntry is a single HSN/SAC code with its GST rate.
type HSNEntry struct {
	Code        string  `db:"code" json:"code"`
	Kind        string  `db:"kind" json:"kind"`
	Description string  `db:"description" json:"description"`
	GSTRate     float64 `db:"gst_rate" json:"gst_rate"`
}

// HSNRepository defines the contract for HSN/SAC rate lookups. Lookups feed
// default-rate suggestions for new lines; they are never used to validate
// caller-supplied rates.
type HSNRepository interface {
	FindByCode(ctx context.Context, code string) ([]HSNEntry, error)
}
