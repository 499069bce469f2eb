package rolewarden

import (
	"fmt"

	dgo "github.com/bwmarrin/discordgo"
)

const (
	roleSelectID = "role_select"

	maxMenuRoles    = 5
	maxOptionLength = 100

	// Discord blurple, same as the platform's own branding embeds.
	menuEmbedColor = 0x5865F2
)

// buildRoleMenu constructs the multi-select component for candidates. The
// candidate set rides in the option values, so a restarted process recovers
// it from the posted message itself rather than from any server-side record.
// Callers validate that candidates holds 1 to 5 roles.
func buildRoleMenu(candidates []*dgo.Role) dgo.SelectMenu {
	options := make([]dgo.SelectMenuOption, 0, len(candidates))
	for _, r := range candidates {
		options = append(options, dgo.SelectMenuOption{
			Label:       truncate(r.Name, maxOptionLength),
			Value:       r.ID,
			Description: truncate("Role: "+r.Name, maxOptionLength),
		})
	}

	minValues := 0
	return dgo.SelectMenu{
		CustomID:    roleSelectID,
		Placeholder: "Pick any combination of roles",
		MinValues:   &minValues,
		MaxValues:   len(options),
		Options:     options,
	}
}

// menuCandidates recovers the candidate role IDs from the select menu baked
// into a previously posted menu message.
func menuCandidates(msg *dgo.Message) []string {
	if msg == nil {
		return nil
	}
	for _, c := range msg.Components {
		row, ok := c.(*dgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			menu, ok := rc.(*dgo.SelectMenu)
			if !ok || menu.CustomID != roleSelectID {
				continue
			}
			ids := make([]string, 0, len(menu.Options))
			for _, o := range menu.Options {
				ids = append(ids, o.Value)
			}
			return ids
		}
	}
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// handleRoleMenu serves /rolemenu: validates the requested roles and posts
// the embed plus select menu message.
func (b *wardenBot) handleRoleMenu(s *dgo.Session, i *dgo.InteractionCreate) error {
	if !actorMayManageRoleMenu(i.Member.Permissions) {
		return b.respond(s, i, "You need Administrator, Manage Server or Manage Roles to do that.")
	}

	data := i.ApplicationCommandData()
	var title string
	var roles []*dgo.Role
	for _, opt := range data.Options {
		if opt.Name == "title" {
			title = opt.StringValue()
			continue
		}
		if r := opt.RoleValue(s, i.GuildID); r != nil {
			roles = append(roles, r)
		}
	}
	if len(roles) == 0 {
		return b.respond(s, i, "Pick at least one role for the menu.")
	}

	gs, err := b.guildState(s, i.GuildID)
	if err != nil {
		return err
	}
	// All five slots must be manageable before anything is posted.
	for _, r := range roles {
		if !gs.CanManage(r) {
			return b.respond(s, i, fmt.Sprintf(
				"My role must sit above **%v** and I need the Manage Roles permission.", r.Name))
		}
	}

	menu := buildRoleMenu(roles)
	embed := &dgo.MessageEmbed{
		Title:       title,
		Description: "Pick roles from the menu below to have them granted or removed automatically.",
		Color:       menuEmbedColor,
	}

	return s.InteractionRespond(i.Interaction, &dgo.InteractionResponse{
		Type: dgo.InteractionResponseChannelMessageWithSource,
		Data: &dgo.InteractionResponseData{
			Embeds: []*dgo.MessageEmbed{embed},
			Components: []dgo.MessageComponent{
				dgo.ActionsRow{Components: []dgo.MessageComponent{menu}},
			},
		},
	})
}

// handleRoleSelect applies a menu submission to the submitting member and
// reports the resulting diff privately.
func (b *wardenBot) handleRoleSelect(s *dgo.Session, i *dgo.InteractionCreate) error {
	candidates := menuCandidates(i.Message)
	if len(candidates) == 0 {
		return b.respond(s, i, "This menu is no longer usable.")
	}

	gs, err := b.guildState(s, i.GuildID)
	if err != nil {
		return err
	}

	diff, err := reconcileRoles(gs, i.Member.User.ID, candidates, i.MessageComponentData().Values)
	if err != nil {
		return err
	}
	return b.respond(s, i, diff.summary())
}
