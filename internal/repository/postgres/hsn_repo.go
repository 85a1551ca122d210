package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"billforge/internal/port"
)

type hsnRepo struct {
	db *sqlx.DB
}

// NewHSNRepo creates a new PostgreSQL-backed HSNRepository.
func NewHSNRepo(db *sqlx.DB) port.HSNRepository {
	return &hsnRepo{db: db}
}

func (r *hsnRepo) FindByCode(ctx context.Context, code string) ([]port.HSNEntry, error) {
	var entries []port.HSNEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT code, kind, description, gst_rate
		 FROM hsn_codes
		 WHERE code = $1
		 ORDER BY gst_rate`, code)
	if err != nil {
		return nil, fmt.Errorf("hsnRepo.FindByCode: %w", err)
	}
	return entries, nil
}
