package rolewarden

import (
	"strconv"

	dgo "github.com/bwmarrin/discordgo"
)

const menuManagerPermissions = dgo.PermissionAdministrator |
	dgo.PermissionManageServer |
	dgo.PermissionManageRoles

// actorMayManageRoleMenu reports whether a member holding perms may create
// role menus or change autorole settings.
func actorMayManageRoleMenu(perms int64) bool {
	return perms&menuManagerPermissions != 0
}

// botMayManageRole reports whether the bot, holding botPerms with botTop as
// its highest role, may grant or revoke target. Discord only allows managing
// roles strictly below the manager's own highest role.
func botMayManageRole(botPerms int64, botTop, target *dgo.Role) bool {
	if botPerms&dgo.PermissionManageRoles == 0 {
		return false
	}
	return botTop != nil && target != nil && roleIsBelow(target, botTop)
}

// roleIsBelow reports whether a sits strictly below b in the guild hierarchy.
// Equal positions fall back to snowflake age: the older (smaller) ID ranks
// higher. An ID that fails to parse never outranks anything, so a malformed
// role ends up unmanageable rather than quietly privileged.
func roleIsBelow(a, b *dgo.Role) bool {
	if a.Position != b.Position {
		return a.Position < b.Position
	}
	an, aerr := strconv.ParseUint(a.ID, 10, 64)
	bn, berr := strconv.ParseUint(b.ID, 10, 64)
	if aerr != nil || berr != nil {
		return false
	}
	return an > bn
}

// guildPermissions unions the guild-level permission bits granted to member
// by its roles, including @everyone. Administrator implies everything.
func guildPermissions(roles []*dgo.Role, guildID string, member *dgo.Member) int64 {
	byID := rolesByID(roles)

	var perms int64
	// @everyone shares the guild's own ID.
	if everyone, ok := byID[guildID]; ok {
		perms |= everyone.Permissions
	}
	for _, id := range member.Roles {
		if r, ok := byID[id]; ok {
			perms |= r.Permissions
		}
	}
	if perms&dgo.PermissionAdministrator != 0 {
		perms |= dgo.PermissionAll
	}
	return perms
}

// highestRole returns the member's top role, falling back to @everyone when
// the member holds no others.
func highestRole(roles []*dgo.Role, guildID string, memberRoleIDs []string) *dgo.Role {
	byID := rolesByID(roles)

	top := byID[guildID]
	for _, id := range memberRoleIDs {
		r, ok := byID[id]
		if !ok {
			continue
		}
		if top == nil || roleIsBelow(top, r) {
			top = r
		}
	}
	return top
}

func rolesByID(roles []*dgo.Role) map[string]*dgo.Role {
	byID := make(map[string]*dgo.Role, len(roles))
	for _, r := range roles {
		byID[r.ID] = r
	}
	return byID
}
