package approvals

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/netvest/console/internal/api"
	"github.com/netvest/console/internal/models"
	"github.com/netvest/console/internal/session"
)

// MockBackend is a mock implementation of the platform API slice the store
// uses.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) ListTransactions(sess session.Session, kind models.Kind) ([]models.Transaction, error) {
	args := m.Called(sess, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockBackend) UpdateStatus(sess session.Session, kind models.Kind, id string, status models.Status) (*models.Transaction, error) {
	args := m.Called(sess, kind, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func testSession() session.Session {
	return session.Session{Token: "test-token", Email: "admin@x", IsAdmin: true}
}

func pendingDeposits() []models.Transaction {
	return []models.Transaction{
		{ID: "t1", User: models.TransactionUser{Email: "alice@x"}, Amount: 100, Status: models.StatusPending, TransactionID: "DEP-1"},
		{ID: "t2", User: models.TransactionUser{Email: "bruno@x"}, Amount: 250, Status: models.StatusApproved, TransactionID: "DEP-2"},
	}
}

func TestRefresh(t *testing.T) {
	backend := new(MockBackend)
	store := NewStore(backend, models.KindDeposit)
	sess := testSession()

	backend.On("ListTransactions", sess, models.KindDeposit).Return(pendingDeposits(), nil)

	require.False(t, store.Loaded())
	require.NoError(t, store.Refresh(sess))
	assert.True(t, store.Loaded())
	assert.Len(t, store.Transactions(), 2)
	backend.AssertExpectations(t)
}

func TestRefreshFailureKeepsLastKnownList(t *testing.T) {
	backend := new(MockBackend)
	store := NewStore(backend, models.KindDeposit)
	sess := testSession()

	backend.On("ListTransactions", sess, models.KindDeposit).Return(pendingDeposits(), nil).Once()
	require.NoError(t, store.Refresh(sess))

	// A transient failure must not blank the view.
	fetchErr := &api.FetchError{Op: "list deposits", StatusCode: 502}
	backend.On("ListTransactions", sess, models.KindDeposit).Return(nil, fetchErr).Once()

	err := store.Refresh(sess)
	var ferr *api.FetchError
	assert.ErrorAs(t, err, &ferr)
	assert.Len(t, store.Transactions(), 2)
	assert.True(t, store.Loaded())
}

func TestSetStatusPatchesInPlace(t *testing.T) {
	backend := new(MockBackend)
	store := NewStore(backend, models.KindDeposit)
	sess := testSession()

	backend.On("ListTransactions", sess, models.KindDeposit).Return(pendingDeposits(), nil)
	require.NoError(t, store.Refresh(sess))

	updated := models.Transaction{ID: "t1", Status: models.StatusApproved}
	backend.On("UpdateStatus", sess, models.KindDeposit, "t1", models.StatusApproved).Return(&updated, nil)

	result, err := store.SetStatus(sess, "t1", models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, result.Status)

	// Same id, status replaced, position and neighbours untouched.
	transactions := store.Transactions()
	require.Len(t, transactions, 2)
	assert.Equal(t, "t1", transactions[0].ID)
	assert.Equal(t, models.StatusApproved, transactions[0].Status)
	assert.Equal(t, "alice@x", transactions[0].User.Email)
	assert.Equal(t, models.StatusApproved, transactions[1].Status)
	backend.AssertExpectations(t)
}

func TestSetStatusRefusesTerminalRecordLocally(t *testing.T) {
	backend := new(MockBackend)
	store := NewStore(backend, models.KindDeposit)
	sess := testSession()

	backend.On("ListTransactions", sess, models.KindDeposit).Return(pendingDeposits(), nil)
	require.NoError(t, store.Refresh(sess))

	updated := models.Transaction{ID: "t1", Status: models.StatusApproved}
	backend.On("UpdateStatus", sess, models.KindDeposit, "t1", models.StatusApproved).Return(&updated, nil).Once()

	_, err := store.SetStatus(sess, "t1", models.StatusApproved)
	require.NoError(t, err)

	// The record is terminal now; a second transition is refused locally
	// and no remote call is made.
	_, err = store.SetStatus(sess, "t1", models.StatusRejected)
	assert.ErrorIs(t, err, ErrNotPending)
	backend.AssertNumberOfCalls(t, "UpdateStatus", 1)

	// t2 was fetched already terminal; same refusal.
	_, err = store.SetStatus(sess, "t2", models.StatusRejected)
	assert.ErrorIs(t, err, ErrNotPending)
	backend.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestSetStatusUnknownRecord(t *testing.T) {
	backend := new(MockBackend)
	store := NewStore(backend, models.KindDeposit)
	sess := testSession()

	backend.On("ListTransactions", sess, models.KindDeposit).Return(pendingDeposits(), nil)
	require.NoError(t, store.Refresh(sess))

	_, err := store.SetStatus(sess, "missing", models.StatusApproved)
	assert.ErrorIs(t, err, ErrNotFound)
	backend.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetStatusRejectsNonTerminalTarget(t *testing.T) {
	backend := new(MockBackend)
	store := NewStore(backend, models.KindDeposit)

	_, err := store.SetStatus(testSession(), "t1", models.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatusFailureLeavesCollectionUnchanged(t *testing.T) {
	backend := new(MockBackend)
	store := NewStore(backend, models.KindDeposit)
	sess := testSession()

	backend.On("ListTransactions", sess, models.KindDeposit).Return(pendingDeposits(), nil)
	require.NoError(t, store.Refresh(sess))

	fetchErr := &api.FetchError{Op: "update deposit status", StatusCode: 500}
	backend.On("UpdateStatus", sess, models.KindDeposit, "t1", models.StatusRejected).Return(nil, fetchErr).Once()

	_, err := store.SetStatus(sess, "t1", models.StatusRejected)
	assert.Error(t, err)

	// Local state untouched: still pending, still actionable.
	assert.Equal(t, models.StatusPending, store.Transactions()[0].Status)

	// The failed update released the single-flight guard, so a fresh
	// user-triggered attempt goes through.
	updated := models.Transaction{ID: "t1", Status: models.StatusRejected}
	backend.On("UpdateStatus", sess, models.KindDeposit, "t1", models.StatusRejected).Return(&updated, nil)
	_, err = store.SetStatus(sess, "t1", models.StatusRejected)
	assert.NoError(t, err)
}

func TestSetStatusSingleFlight(t *testing.T) {
	backend := new(MockBackend)
	store := NewStore(backend, models.KindDeposit)
	sess := testSession()

	backend.On("ListTransactions", sess, models.KindDeposit).Return(pendingDeposits(), nil)
	require.NoError(t, store.Refresh(sess))

	started := make(chan struct{})
	release := make(chan struct{})
	updated := models.Transaction{ID: "t1", Status: models.StatusApproved}
	backend.On("UpdateStatus", sess, models.KindDeposit, "t1", models.StatusApproved).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&updated, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := store.SetStatus(sess, "t1", models.StatusApproved)
		assert.NoError(t, err)
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("first update never reached the backend")
	}

	// While the first call is outstanding, further transition requests are
	// refused locally — not queued, not retried.
	_, err := store.SetStatus(sess, "t1", models.StatusRejected)
	assert.ErrorIs(t, err, ErrUpdateInFlight)

	close(release)
	wg.Wait()

	assert.Equal(t, models.StatusApproved, store.Transactions()[0].Status)
	backend.AssertNumberOfCalls(t, "UpdateStatus", 1)
}
