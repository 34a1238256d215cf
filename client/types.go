package client

import "time"

// HealthResponse from GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ErrorResponse for API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items   []T  `json:"items"`
	HasMore bool `json:"has_more"`
}

// Creator from GET /api/v1/creators.
type Creator struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"` // markdown
	Online      bool      `json:"online"`
	RatePerMin  int64     `json:"rate_per_min_cents"`
	Tags        []string  `json:"tags,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Call status values.
const (
	CallCompleted = "completed"
	CallMissed    = "missed"
	CallDeclined  = "declined"
)

// CallRecord from GET /api/v1/calls.
type CallRecord struct {
	ID            string    `json:"id"`
	CreatorID     string    `json:"creator_id"`
	CreatorHandle string    `json:"creator_handle"`
	Status        string    `json:"status"`
	StartedAt     time.Time `json:"started_at"`
	DurationSec   int       `json:"duration_sec"`
	CostCents     int64     `json:"cost_cents"`
}

// Transaction kinds.
const (
	TxCredit = "credit"
	TxDebit  = "debit"
)

// Transaction from GET /api/v1/wallet/transactions.
type Transaction struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	AmountCents  int64     `json:"amount_cents"`
	Currency     string    `json:"currency"`
	Description  string    `json:"description"`
	BalanceCents int64     `json:"balance_cents"`
	CreatedAt    time.Time `json:"created_at"`
}
