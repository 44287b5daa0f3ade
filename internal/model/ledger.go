package model

import "time"

// Ledger entry kinds.
const (
	LedgerKindIncome  = "income"
	LedgerKindExpense = "expense"
)

// LedgerEntry is one income or expense line in a group's financial ledger.
// Amounts are stored in cents to avoid floating-point rounding.
type LedgerEntry struct {
	EntryID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	GroupID     string    `gorm:"type:uuid;not null;index"                       json:"group_id"`
	Kind        string    `gorm:"type:varchar(10);not null"                      json:"kind"` // income | expense
	AmountCents int64     `gorm:"not null"                                       json:"amount_cents"`
	Description string    `gorm:"type:varchar(255)"                              json:"description,omitempty"`
	EntryDate   time.Time `gorm:"type:date;not null"                             json:"entry_date"`
	RecordedBy  *string   `gorm:"type:uuid"                                      json:"recorded_by,omitempty"`
	BaseModel
}

func (LedgerEntry) TableName() string { return "ledger_entries" }
