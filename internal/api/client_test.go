package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netvest/console/internal/config"
	"github.com/netvest/console/internal/models"
	"github.com/netvest/console/internal/session"
	"github.com/netvest/console/internal/stubapi"
)

// newTestBackend spins up the stub API over httptest and logs in as the
// seeded admin, returning a ready client and session.
func newTestBackend(t *testing.T) (*Client, session.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.StubConfig{
		// Each test gets its own shared-cache in-memory database so status
		// updates in one test cannot leak into another.
		DatabaseDSN:   fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
		JWTSecret:     "test-secret",
		JWTExpiration: 1,
		AdminEmail:    "admin@netvest.dev",
		AdminPassword: "admin1234",
	}

	server, err := stubapi.New(cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)

	body, err := json.Marshal(map[string]string{
		"email":    cfg.AdminEmail,
		"password": cfg.AdminPassword,
	})
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/auth/login", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.NotEmpty(t, login.Token)

	return NewClient(ts.URL), session.FromToken(login.Token)
}

func TestLoadNetwork(t *testing.T) {
	client, sess := newTestBackend(t)

	snapshot, err := client.LoadNetwork(sess)
	require.NoError(t, err)

	assert.Equal(t, "NVROOT", snapshot.RootReferralCode)
	assert.Equal(t, 7, snapshot.TotalMembers)
	assert.Len(t, snapshot.TeamMembers, 7)

	// The snapshot carries server-supplied levels, including a tier beyond
	// the usual three and a member with a dangling referrer.
	levels := make(map[int]int)
	danglers := 0
	for _, m := range snapshot.TeamMembers {
		levels[m.Level]++
		if m.ReferredBy == "NVGONE" {
			danglers++
		}
	}
	assert.Equal(t, 2, levels[1])
	assert.Equal(t, 1, levels[4])
	assert.Equal(t, 1, danglers)
}

func TestLoadNetworkRequiresSession(t *testing.T) {
	client, _ := newTestBackend(t)

	_, err := client.LoadNetwork(session.Session{})
	assert.ErrorIs(t, err, ErrAuthMissing)
}

func TestLoadNetworkRejectsBadToken(t *testing.T) {
	client, _ := newTestBackend(t)

	_, err := client.LoadNetwork(session.FromToken("not-a-real-token"))

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, http.StatusUnauthorized, ferr.StatusCode)
	assert.Equal(t, "load network", ferr.Op)
}

func TestListTransactions(t *testing.T) {
	client, sess := newTestBackend(t)

	deposits, err := client.ListTransactions(sess, models.KindDeposit)
	require.NoError(t, err)
	require.Len(t, deposits, 3)

	// Backend order is newest first; the client preserves it.
	assert.Equal(t, "DEP-84502", deposits[0].TransactionID)
	assert.Equal(t, "DEP-84613", deposits[2].TransactionID)
	for _, tx := range deposits {
		assert.Nil(t, tx.AccountDetails)
		assert.NotEmpty(t, tx.User.Email)
	}

	withdrawals, err := client.ListTransactions(sess, models.KindWithdrawal)
	require.NoError(t, err)
	require.Len(t, withdrawals, 3)
	for _, tx := range withdrawals {
		require.NotNil(t, tx.AccountDetails)
		assert.NotEmpty(t, tx.AccountDetails.BankName)
	}
}

func TestUpdateStatus(t *testing.T) {
	client, sess := newTestBackend(t)

	withdrawals, err := client.ListTransactions(sess, models.KindWithdrawal)
	require.NoError(t, err)

	var pending *models.Transaction
	for i := range withdrawals {
		if withdrawals[i].Status == models.StatusPending {
			pending = &withdrawals[i]
			break
		}
	}
	require.NotNil(t, pending, "seed data should include a pending withdrawal")

	updated, err := client.UpdateStatus(sess, models.KindWithdrawal, pending.ID, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, pending.ID, updated.ID)
	assert.Equal(t, models.StatusApproved, updated.Status)

	// The transition is terminal server-side too: a second attempt comes
	// back as a conflict with a parseable message.
	_, err = client.UpdateStatus(sess, models.KindWithdrawal, pending.ID, models.StatusRejected)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, http.StatusConflict, ferr.StatusCode)
	assert.Equal(t, "transaction is not pending", ferr.Message)
}

func TestUpdateStatusUnknownID(t *testing.T) {
	client, sess := newTestBackend(t)

	_, err := client.UpdateStatus(sess, models.KindDeposit, "no-such-id", models.StatusApproved)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, http.StatusNotFound, ferr.StatusCode)
}
