package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Benefit mirrors a row of the benefits table.
type Benefit struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description sql.NullString  `db:"description"` // Nullable
	Balance     decimal.Decimal `db:"balance"`
	IsActive    bool            `db:"is_active"`
	Version     int64           `db:"version"`
	AuditFields
}
