package network

import "github.com/netvest/console/internal/models"

// Expansion tracks which members' subtrees are open in the tree view. It is
// presentation state, fully independent of the member data: toggling one id
// never touches another, and re-toggling the same id flips it back.
type Expansion struct {
	open map[string]bool
}

// NewExpansion seeds expansion state for a snapshot. Level-1 members start
// expanded so the viewer's direct referrals are visible immediately;
// everything else starts collapsed.
func NewExpansion(members []models.Member) *Expansion {
	open := make(map[string]bool)
	for _, m := range members {
		if m.Level == 1 {
			open[m.ID] = true
		}
	}
	return &Expansion{open: open}
}

// Expanded reports whether the member's subtree is open.
func (e *Expansion) Expanded(id string) bool {
	return e.open[id]
}

// Toggle flips the open state for a single member id.
func (e *Expansion) Toggle(id string) {
	e.open[id] = !e.open[id]
}
