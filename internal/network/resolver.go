// Package network turns the flat member collection the platform API returns
// into a navigable, searchable referral hierarchy. Nothing here mutates the
// source slice; every operation derives a fresh view from it.
package network

import (
	"fmt"
	"sort"
	"strings"

	"github.com/netvest/console/internal/models"
)

// GroupByLevel partitions members by their server-supplied level. Members
// within a level keep their order from the fetch; levels are not capped, so
// hierarchies deeper than the common three tiers group correctly.
func GroupByLevel(members []models.Member) map[int][]models.Member {
	groups := make(map[int][]models.Member)
	for _, m := range members {
		groups[m.Level] = append(groups[m.Level], m)
	}
	return groups
}

// Levels returns the level keys of a grouping in ascending numeric order,
// which is the order levels are rendered in.
func Levels(groups map[int][]models.Member) []int {
	levels := make([]int, 0, len(groups))
	for level := range groups {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}

// LevelLabel names a level for display. The first three tiers carry the
// platform's marketing names; anything deeper gets a generic label.
func LevelLabel(level int) string {
	switch level {
	case 1:
		return "Direct Referrals"
	case 2:
		return "Level 2"
	case 3:
		return "Level 3"
	default:
		return fmt.Sprintf("Level %d", level)
	}
}

// ChildrenOf returns every member recruited directly with the given
// referral code. This is a linear scan per call, which is fine at the
// hundreds-of-members scale the platform sees; a snapshot-scoped
// referredBy -> children index would replace it if networks grew large.
func ChildrenOf(members []models.Member, referralCode string) []models.Member {
	var children []models.Member
	for _, m := range members {
		if m.ReferredBy != "" && m.ReferredBy == referralCode {
			children = append(children, m)
		}
	}
	return children
}

// Search filters members by a case-insensitive substring match on email.
// A blank term returns the input unchanged. Search results are a flat list,
// never a hierarchy: when a term is active it wins over level grouping,
// because the intent is "find someone", not "explore structure".
func Search(members []models.Member, term string) []models.Member {
	if strings.TrimSpace(term) == "" {
		return members
	}

	needle := strings.ToLower(term)
	var matches []models.Member
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Email), needle) {
			matches = append(matches, m)
		}
	}
	return matches
}
