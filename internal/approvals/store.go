// Package approvals models the admin-side lifecycle of deposit and
// withdrawal requests: pending until an admin approves or rejects, terminal
// after that. The backend owns the records; a Store holds the last-known
// collection for one kind and applies admin actions optimistically once the
// backend confirms them.
package approvals

import (
	"errors"
	"sync"

	"github.com/netvest/console/internal/models"
	"github.com/netvest/console/internal/session"
)

var (
	// ErrNotFound means the id is not in the last-known collection.
	ErrNotFound = errors.New("transaction not found")

	// ErrNotPending means the record is already terminal; the platform
	// permits exactly one transition out of pending.
	ErrNotPending = errors.New("transaction is not pending")

	// ErrInvalidStatus means the requested target is not a terminal state.
	ErrInvalidStatus = errors.New("status must be approved or rejected")

	// ErrUpdateInFlight means another status update from this store is
	// still outstanding. The request is refused, not queued; the operator
	// retries once the in-flight call resolves.
	ErrUpdateInFlight = errors.New("another status update is in progress")
)

// Backend is the slice of the platform API a Store needs. *api.Client
// satisfies it.
type Backend interface {
	ListTransactions(sess session.Session, kind models.Kind) ([]models.Transaction, error)
	UpdateStatus(sess session.Session, kind models.Kind, id string, status models.Status) (*models.Transaction, error)
}

// Store holds the last-known transaction collection for one kind. A failed
// refresh keeps the previous list so a transient backend error never blanks
// the view, and at most one status update is in flight at a time.
type Store struct {
	backend Backend
	kind    models.Kind

	mu           sync.Mutex
	transactions []models.Transaction
	loaded       bool
	inFlight     bool
}

// NewStore creates a store for one transaction kind.
func NewStore(backend Backend, kind models.Kind) *Store {
	return &Store{backend: backend, kind: kind}
}

// Kind returns the transaction kind this store holds.
func (s *Store) Kind() models.Kind {
	return s.kind
}

// Refresh fetches the collection from the backend. On failure the
// last-known list is left as it was and the error is returned for the
// caller to surface; nothing retries automatically.
func (s *Store) Refresh(sess session.Session) error {
	transactions, err := s.backend.ListTransactions(sess, s.kind)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.transactions = transactions
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Loaded reports whether at least one refresh has succeeded.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Transactions returns a copy of the last-known collection in backend
// order.
func (s *Store) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// SetStatus requests a transition to approved or rejected for a pending
// record. The precondition is checked locally first: a record that is
// missing or already terminal is refused without touching the backend. The
// local record is patched only after the backend confirms the update, never
// speculatively; on failure the collection is untouched. A concurrent edit
// to the same record by another admin can be silently overwritten by the
// patch — a subsequent refresh reveals the authoritative state.
func (s *Store) SetStatus(sess session.Session, id string, next models.Status) (*models.Transaction, error) {
	if !next.IsTerminal() {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if !s.transactions[idx].Status.ValidNext(next) {
		s.mu.Unlock()
		return nil, ErrNotPending
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrUpdateInFlight
	}
	s.inFlight = true
	s.mu.Unlock()

	updated, err := s.backend.UpdateStatus(sess, s.kind, id, next)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		return nil, err
	}

	// Patch in place: same id, status replaced. A full re-fetch here would
	// clobber other admins' concurrent edits to unrelated records.
	if i := s.indexOf(id); i >= 0 {
		s.transactions[i].Status = updated.Status
	}
	return updated, nil
}

// indexOf finds a transaction by id. Caller holds s.mu.
func (s *Store) indexOf(id string) int {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			return i
		}
	}
	return -1
}
