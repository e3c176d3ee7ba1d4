package models

// Member represents one account in the referral network as returned by the
// platform API. Level is the depth relative to the viewing user (1 = direct
// referral) and is supplied by the backend; the client never re-derives it
// from the ReferredBy chain, which may be truncated in any given snapshot.
type Member struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	ReferralCode string  `json:"referralCode"`
	ReferredBy   string  `json:"referredBy,omitempty"` // empty for the root
	Level        int     `json:"level"`
	Balance      float64 `json:"balance"`
}

// NetworkSnapshot is the full referral network for the authenticated viewer.
type NetworkSnapshot struct {
	TeamMembers      []Member `json:"teamMembers"`
	RootReferralCode string   `json:"rootReferralCode"`
	TotalMembers     int      `json:"totalMembers"`
}
