package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Claims mirrors the claims the platform embeds in its access tokens.
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.StandardClaims
}

// Session is the authenticated context threaded explicitly into every API
// call. There is intentionally no package-level current session: passing the
// value around keeps each operation testable without standing up a login
// flow. Token issuance and refresh belong to the backend; the client only
// distinguishes "currently valid token" from "none".
type Session struct {
	Token   string
	Email   string
	IsAdmin bool

	expiresAt time.Time
}

// FromToken builds a Session from a bearer token. The token is decoded
// without signature verification; the backend is the authority on
// validity, the client only reads identity and expiry out of it for local
// gating. A token that does not parse as a JWT still yields a usable
// session with no known expiry.
func FromToken(token string) Session {
	sess := Session{Token: token}

	claims := &Claims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return sess
	}

	sess.Email = claims.Email
	sess.IsAdmin = claims.IsAdmin
	if claims.ExpiresAt != 0 {
		sess.expiresAt = time.Unix(claims.ExpiresAt, 0)
	}

	return sess
}

// Valid reports whether the session carries a token that is usable right
// now. Operations are skipped, not attempted, when this is false.
func (s Session) Valid() bool {
	if s.Token == "" {
		return false
	}
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return false
	}
	return true
}
