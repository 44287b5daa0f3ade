package dto

// CreateLedgerEntryRequest records one income or expense line.
type CreateLedgerEntryRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=income expense"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Description string `json:"description" binding:"omitempty,max=255"`
	EntryDate   string `json:"entry_date" binding:"required"` // "2006-01-02"
}

// LedgerEntryResponse is the public view of a ledger entry.
type LedgerEntryResponse struct {
	ID          string  `json:"id"`
	GroupID     string  `json:"group_id"`
	Kind        string  `json:"kind"`
	AmountCents int64   `json:"amount_cents"`
	Description string  `json:"description,omitempty"`
	EntryDate   string  `json:"entry_date"`
	RecordedBy  *string `json:"recorded_by,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// LedgerReportResponse summarizes a group's ledger.
type LedgerReportResponse struct {
	GroupID      string `json:"group_id"`
	IncomeCents  int64  `json:"income_cents"`
	ExpenseCents int64  `json:"expense_cents"`
	BalanceCents int64  `json:"balance_cents"`
}
