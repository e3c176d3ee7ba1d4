package approvals

import (
	"strings"

	"github.com/netvest/console/internal/models"
)

// StatusAll is the pass-through status filter.
const StatusAll models.Status = "all"

// FilterOptions narrows a transaction list. Status and Term compose: status
// first, then term. The zero value filters nothing.
type FilterOptions struct {
	Status models.Status
	Term   string
}

// Filter returns the transactions matching the options, preserving the
// original backend order. Status "all" (or empty) passes everything; a
// non-empty term matches case-insensitively against the requester's email,
// the external transaction reference, or — on withdrawals — the bank
// account number and bank name.
func Filter(transactions []models.Transaction, opts FilterOptions) []models.Transaction {
	byStatus := transactions
	if opts.Status != "" && opts.Status != StatusAll {
		byStatus = nil
		for _, tx := range transactions {
			if tx.Status == opts.Status {
				byStatus = append(byStatus, tx)
			}
		}
	}

	term := strings.TrimSpace(opts.Term)
	if term == "" {
		return byStatus
	}

	needle := strings.ToLower(term)
	var matches []models.Transaction
	for _, tx := range byStatus {
		if matchesTerm(tx, needle) {
			matches = append(matches, tx)
		}
	}
	return matches
}

// matchesTerm checks one transaction against a lowercased search term.
func matchesTerm(tx models.Transaction, needle string) bool {
	if strings.Contains(strings.ToLower(tx.User.Email), needle) {
		return true
	}
	if tx.TransactionID != "" && strings.Contains(strings.ToLower(tx.TransactionID), needle) {
		return true
	}
	if tx.AccountDetails != nil {
		if strings.Contains(strings.ToLower(tx.AccountDetails.AccountNumber), needle) {
			return true
		}
		if strings.Contains(strings.ToLower(tx.AccountDetails.BankName), needle) {
			return true
		}
	}
	return false
}
