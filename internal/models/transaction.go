package models

import "time"

// Status is the lifecycle state of a deposit or withdrawal request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ValidNext reports whether the client may request a transition to next.
// The only transitions the platform allows are pending -> approved and
// pending -> rejected.
func (s Status) ValidNext(next Status) bool {
	return s == StatusPending && next.IsTerminal()
}

// Kind selects which transaction collection an operation works on.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// TransactionUser identifies the member who raised the request. Only the
// email is used client-side, for display and search.
type TransactionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AccountDetails carries the payout destination on a withdrawal request.
type AccountDetails struct {
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	AccountHolder string `json:"accountHolder"`
}

// Transaction represents a deposit or withdrawal request. Records are
// created and owned by the backend; the client only reads collections and
// requests status transitions on pending records.
type Transaction struct {
	ID        string          `json:"id"`
	User      TransactionUser `json:"user"`
	Amount    float64         `json:"amount"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`

	// TransactionID is the external payment reference. Always present on
	// deposits, optional on withdrawals.
	TransactionID string `json:"transactionId,omitempty"`

	// Withdrawal-only fields.
	ProofImage     string          `json:"proofImage,omitempty"`
	AccountDetails *AccountDetails `json:"accountDetails,omitempty"`
}
