package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/netvest/console/internal/models"
	"github.com/netvest/console/internal/session"
)

const (
	teamMembersEndpoint = "/admin/team-members"
	depositsEndpoint    = "/admin/deposits"
	withdrawalsEndpoint = "/admin/withdrawals"
)

// Client is a thin wrapper around the platform's admin API. Every method
// takes an explicit session; there is no ambient token lookup. A missing
// token short-circuits with ErrAuthMissing before any request is made.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new platform API client. No request timeout is set
// here; the transport layer, and ultimately the backend, decide how long a
// call may take. In-flight requests are never cancelled client-side —
// losing interest in a result just means discarding it.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

// collectionPath returns the admin collection endpoint for a kind.
func collectionPath(kind models.Kind) string {
	if kind == models.KindWithdrawal {
		return withdrawalsEndpoint
	}
	return depositsEndpoint
}

// LoadNetwork fetches the full referral network snapshot for the
// authenticated viewer. A failure here means "network unavailable", never
// "empty network" — callers must not render an empty tree off an error.
func (c *Client) LoadNetwork(sess session.Session) (*models.NetworkSnapshot, error) {
	var snapshot models.NetworkSnapshot
	if err := c.do(sess, "load network", http.MethodGet, teamMembersEndpoint, nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ListTransactions fetches all deposits or all withdrawals for the
// authenticated admin, in the order the backend returns them.
func (c *Client) ListTransactions(sess session.Session, kind models.Kind) ([]models.Transaction, error) {
	var transactions []models.Transaction
	op := fmt.Sprintf("list %ss", kind)
	if err := c.do(sess, op, http.MethodGet, collectionPath(kind), nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// UpdateStatus requests a status transition for a single transaction and
// returns the updated record as the backend sees it.
func (c *Client) UpdateStatus(sess session.Session, kind models.Kind, id string, status models.Status) (*models.Transaction, error) {
	body := map[string]models.Status{"status": status}
	var updated models.Transaction
	op := fmt.Sprintf("update %s status", kind)
	path := fmt.Sprintf("%s/%s", collectionPath(kind), id)
	if err := c.do(sess, op, http.MethodPatch, path, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// errorBody is the optional error envelope on non-2xx responses. Nothing
// beyond the message string is parsed out of failures.
type errorBody struct {
	Error string `json:"error"`
}

// do performs an authenticated request and decodes a 2xx response into out.
func (c *Client) do(sess session.Session, op, method, path string, body, out interface{}) error {
	if !sess.Valid() {
		return ErrAuthMissing
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &FetchError{Op: op, Err: fmt.Errorf("error marshaling request: %w", err)}
		}
		reqBody = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("error creating request: %w", err)}
	}

	req.Header.Set("Authorization", "Bearer "+sess.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ferr := &FetchError{Op: op, StatusCode: resp.StatusCode}
		var envelope errorBody
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			ferr.Message = envelope.Error
		}
		return ferr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &FetchError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("error parsing response: %w", err)}
		}
	}

	return nil
}
