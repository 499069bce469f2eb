package rolewarden

import (
	"strings"

	dgo "github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
)

// guildRoles is the slice of guild state the reconciler needs. A live
// implementation over a discordgo session lives in discord.go; tests supply
// fakes.
type guildRoles interface {
	// Role resolves a guild role by ID, returning nil when it no longer
	// exists.
	Role(id string) (*dgo.Role, error)
	// MemberRoleIDs returns the role IDs the member currently holds.
	MemberRoleIDs(userID string) ([]string, error)
	// CanManage reports whether the bot may grant or revoke role.
	CanManage(role *dgo.Role) bool
	Grant(userID, roleID string) error
	Revoke(userID, roleID string) error
}

// roleDiff records the names of roles changed by one menu submission.
type roleDiff struct {
	added   []string
	removed []string
}

func (d roleDiff) empty() bool {
	return len(d.added) == 0 && len(d.removed) == 0
}

// summary renders the private reply shown to the submitting user.
func (d roleDiff) summary() string {
	if d.empty() {
		return "No changes."
	}
	var parts []string
	if len(d.added) > 0 {
		parts = append(parts, "Added: "+strings.Join(d.added, ", "))
	}
	if len(d.removed) > 0 {
		parts = append(parts, "Removed: "+strings.Join(d.removed, ", "))
	}
	return strings.Join(parts, " | ")
}

// reconcileRoles walks the menu's candidate roles in order and grants or
// revokes each so the member's membership matches selected. Deleted roles and
// roles the bot cannot manage are skipped; the rest of the batch is still
// processed. Membership is read live at the start, so repeating the same
// submission yields an empty diff. A failed grant or revoke aborts the walk;
// changes already applied stay applied.
func reconcileRoles(g guildRoles, userID string, candidates, selected []string) (roleDiff, error) {
	var diff roleDiff

	current, err := g.MemberRoleIDs(userID)
	if err != nil {
		return diff, errors.Wrap(err, "resolving member")
	}
	held := make(map[string]bool, len(current))
	for _, id := range current {
		held[id] = true
	}
	want := make(map[string]bool, len(selected))
	for _, id := range selected {
		want[id] = true
	}

	for _, id := range candidates {
		role, err := g.Role(id)
		if err != nil {
			return diff, errors.Wrap(err, "resolving role")
		}
		if role == nil || !g.CanManage(role) {
			continue
		}

		switch {
		case want[id] && !held[id]:
			if err := g.Grant(userID, id); err != nil {
				return diff, errors.Wrapf(err, "granting %q", role.Name)
			}
			diff.added = append(diff.added, role.Name)
		case !want[id] && held[id]:
			if err := g.Revoke(userID, id); err != nil {
				return diff, errors.Wrapf(err, "revoking %q", role.Name)
			}
			diff.removed = append(diff.removed, role.Name)
		}
	}

	return diff, nil
}
