package stubapi

import (
	"time"

	"github.com/netvest/console/internal/models"
)

// Account is a platform account in the fixture database.
type Account struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string
	IsAdmin      bool
	ReferralCode string `gorm:"uniqueIndex;not null"`
	ReferredBy   string `gorm:"index"`
	Level        int
	Balance      float64
	CreatedAt    time.Time
}

// TransactionRecord is a deposit or withdrawal request in the fixture
// database.
type TransactionRecord struct {
	ID        string  `gorm:"primaryKey"`
	Kind      string  `gorm:"index;not null"`
	AccountID string  `gorm:"index;not null"`
	Account   Account `gorm:"foreignKey:AccountID"`
	Amount    float64
	Status    string `gorm:"not null"`
	Reference string
	CreatedAt time.Time

	// Withdrawal payout details.
	ProofImage    string
	AccountNumber string
	BankName      string
	AccountHolder string
}

// toMember converts an account to its wire shape.
func (a Account) toMember() models.Member {
	return models.Member{
		ID:           a.ID,
		Email:        a.Email,
		ReferralCode: a.ReferralCode,
		ReferredBy:   a.ReferredBy,
		Level:        a.Level,
		Balance:      a.Balance,
	}
}

// toTransaction converts a record to its wire shape.
func (r TransactionRecord) toTransaction() models.Transaction {
	tx := models.Transaction{
		ID:            r.ID,
		User:          models.TransactionUser{ID: r.Account.ID, Email: r.Account.Email},
		Amount:        r.Amount,
		Status:        models.Status(r.Status),
		CreatedAt:     r.CreatedAt,
		TransactionID: r.Reference,
	}

	if r.Kind == string(models.KindWithdrawal) {
		tx.ProofImage = r.ProofImage
		tx.AccountDetails = &models.AccountDetails{
			AccountNumber: r.AccountNumber,
			BankName:      r.BankName,
			AccountHolder: r.AccountHolder,
		}
	}

	return tx
}
