package rolewarden

import (
	"fmt"

	dgo "github.com/bwmarrin/discordgo"
)

// handleAutoRole serves the /autorole subcommands.
func (b *wardenBot) handleAutoRole(s *dgo.Session, i *dgo.InteractionCreate) error {
	if !actorMayManageRoleMenu(i.Member.Permissions) {
		return b.respond(s, i, "You need Administrator, Manage Server or Manage Roles to do that.")
	}

	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "set-default":
		role := sub.Options[0].RoleValue(s, i.GuildID)
		if role == nil {
			return b.respond(s, i, "That role could not be resolved.")
		}

		gs, err := b.guildState(s, i.GuildID)
		if err != nil {
			return err
		}
		// Refuse to store a default the bot cannot actually grant.
		if !gs.CanManage(role) {
			return b.respond(s, i, fmt.Sprintf(
				"My role must sit above **%v** and I need the Manage Roles permission.", role.Name))
		}

		if err := b.store.SetDefaultRole(i.GuildID, role.ID); err != nil {
			return err
		}
		return b.respond(s, i, fmt.Sprintf("Default role set to **%v**.", role.Name))

	case "clear-default":
		if err := b.store.ClearDefaultRole(i.GuildID); err != nil {
			return err
		}
		return b.respond(s, i, "Default role cleared.")

	case "show":
		roleID := b.store.DefaultRole(i.GuildID)
		if roleID == "" {
			return b.respond(s, i, "No default role is configured.")
		}

		name := "unknown role"
		if gs, err := b.guildState(s, i.GuildID); err == nil {
			if role, err := gs.Role(roleID); err == nil && role != nil {
				name = role.Name
			}
		}
		return b.respond(s, i, fmt.Sprintf("Current default role: **%v**.", name))
	}

	return nil
}
