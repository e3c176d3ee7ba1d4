package stubapi

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/netvest/console/internal/models"
)

// seed populates an empty fixture database with an admin account, a
// four-level referral network (including one member whose referrer is not
// in the snapshot) and a mix of pending and resolved requests. Seeding a
// database that already has accounts is a no-op so a file-backed DSN
// survives restarts.
func (s *Server) seed() error {
	var count int64
	if err := s.db.Model(&Account{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	base := time.Now().Add(-30 * 24 * time.Hour)

	admin := Account{
		ID:           uuid.NewString(),
		Email:        s.cfg.AdminEmail,
		PasswordHash: string(hash),
		IsAdmin:      true,
		ReferralCode: "NVROOT",
		Level:        0,
		Balance:      0,
		CreatedAt:    base,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	members := []Account{
		{Email: "alice@netvest.dev", ReferralCode: "NV1001", ReferredBy: "NVROOT", Level: 1, Balance: 2500},
		{Email: "bruno@netvest.dev", ReferralCode: "NV1002", ReferredBy: "NVROOT", Level: 1, Balance: 1200},
		{Email: "carla@netvest.dev", ReferralCode: "NV2001", ReferredBy: "NV1001", Level: 2, Balance: 800},
		{Email: "diego@netvest.dev", ReferralCode: "NV2002", ReferredBy: "NV1002", Level: 2, Balance: 430},
		{Email: "erin@netvest.dev", ReferralCode: "NV3001", ReferredBy: "NV2001", Level: 3, Balance: 150},
		{Email: "farid@netvest.dev", ReferralCode: "NV4001", ReferredBy: "NV3001", Level: 4, Balance: 75},
		// Referrer left the snapshot; the client tolerates the dangling code.
		{Email: "ghost@netvest.dev", ReferralCode: "NV9001", ReferredBy: "NVGONE", Level: 3, Balance: 0},
	}
	for i := range members {
		members[i].ID = uuid.NewString()
		members[i].CreatedAt = base.Add(time.Duration(i+1) * time.Hour)
		if err := s.db.Create(&members[i]).Error; err != nil {
			return err
		}
	}

	byEmail := make(map[string]Account, len(members))
	for _, m := range members {
		byEmail[m.Email] = m
	}

	transactions := []TransactionRecord{
		{
			Kind:      string(models.KindDeposit),
			AccountID: byEmail["alice@netvest.dev"].ID,
			Amount:    500,
			Status:    string(models.StatusPending),
			Reference: "DEP-84613",
		},
		{
			Kind:      string(models.KindDeposit),
			AccountID: byEmail["carla@netvest.dev"].ID,
			Amount:    250,
			Status:    string(models.StatusApproved),
			Reference: "DEP-84590",
		},
		{
			Kind:      string(models.KindDeposit),
			AccountID: byEmail["bruno@netvest.dev"].ID,
			Amount:    1000,
			Status:    string(models.StatusRejected),
			Reference: "DEP-84502",
		},
		{
			Kind:          string(models.KindWithdrawal),
			AccountID:     byEmail["bruno@netvest.dev"].ID,
			Amount:        300,
			Status:        string(models.StatusPending),
			ProofImage:    "https://cdn.netvest.dev/proofs/wd-77120.png",
			AccountNumber: "0045812290",
			BankName:      "Bank of Axum",
			AccountHolder: "Bruno Okafor",
		},
		{
			Kind:          string(models.KindWithdrawal),
			AccountID:     byEmail["erin@netvest.dev"].ID,
			Amount:        90,
			Status:        string(models.StatusPending),
			AccountNumber: "1199003345",
			BankName:      "Harborview Credit Union",
			AccountHolder: "Erin Walsh",
		},
		{
			Kind:          string(models.KindWithdrawal),
			AccountID:     byEmail["alice@netvest.dev"].ID,
			Amount:        700,
			Status:        string(models.StatusApproved),
			Reference:     "WD-77093",
			AccountNumber: "0045817766",
			BankName:      "Bank of Axum",
			AccountHolder: "Alice Mensah",
		},
	}
	for i := range transactions {
		transactions[i].ID = uuid.NewString()
		transactions[i].CreatedAt = base.Add(time.Duration(i+1) * 24 * time.Hour)
		if err := s.db.Create(&transactions[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
