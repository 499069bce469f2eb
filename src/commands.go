package rolewarden

import (
	"fmt"

	dgo "github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type commandFunc func(*dgo.Session, *dgo.InteractionCreate) error

func (b *wardenBot) makeCommandHandlers() map[string]commandFunc {
	return map[string]commandFunc{
		"rolemenu": b.handleRoleMenu,
		"autorole": b.handleAutoRole,
	}
}

func commandDefinitions() []*dgo.ApplicationCommand {
	adminOnly := int64(dgo.PermissionAdministrator)

	menuOpts := make([]*dgo.ApplicationCommandOption, 0, maxMenuRoles+1)
	menuOpts = append(menuOpts, &dgo.ApplicationCommandOption{
		Type:        dgo.ApplicationCommandOptionString,
		Name:        "title",
		Description: "Title shown on the menu message",
		Required:    true,
	})
	for n := 1; n <= maxMenuRoles; n++ {
		menuOpts = append(menuOpts, &dgo.ApplicationCommandOption{
			Type:        dgo.ApplicationCommandOptionRole,
			Name:        fmt.Sprintf("role%v", n),
			Description: fmt.Sprintf("Role #%v", n),
			Required:    n == 1,
		})
	}

	return []*dgo.ApplicationCommand{
		{
			Name:                     "rolemenu",
			Description:              "Post a self-service role selection menu (up to 5 roles)",
			DefaultMemberPermissions: &adminOnly,
			Options:                  menuOpts,
		},
		{
			Name:        "autorole",
			Description: "Configure the default role granted to new members",
			Options: []*dgo.ApplicationCommandOption{
				{
					Type:        dgo.ApplicationCommandOptionSubCommand,
					Name:        "set-default",
					Description: "Set the default role",
					Options: []*dgo.ApplicationCommandOption{
						{
							Type:        dgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "Role to grant on join",
							Required:    true,
						},
					},
				},
				{
					Type:        dgo.ApplicationCommandOptionSubCommand,
					Name:        "clear-default",
					Description: "Clear the default role",
				},
				{
					Type:        dgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show the current default role",
				},
			},
		},
	}
}

// registerCommands overwrites the bot's slash command set, guild-scoped when
// a guild ID was configured so changes show up without global propagation
// lag.
func (b *wardenBot) registerCommands(s *dgo.Session) {
	registered, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, b.guildID, commandDefinitions())
	if err != nil {
		log.Error().Err(err).Str("guildID", b.guildID).Msg("slash command registration failed")
		return
	}

	names := make([]string, 0, len(registered))
	for _, c := range registered {
		names = append(names, c.Name)
	}
	log.Info().Strs("commands", names).Str("guildID", b.guildID).Msg("slash commands registered")
}

// handleInteraction routes interactions to their handlers and converts
// anything unexpected into a single private failure message, keeping the
// event loop alive.
func (b *wardenBot) handleInteraction(s *dgo.Session, i *dgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("guildID", i.GuildID).Msg("interaction handler panicked")
			reportFailure(s, i)
		}
	}()

	var err error
	switch i.Type {
	case dgo.InteractionApplicationCommand:
		handler, ok := b.commandHandlers[i.ApplicationCommandData().Name]
		if !ok {
			return
		}
		err = handler(s, i)
	case dgo.InteractionMessageComponent:
		if i.MessageComponentData().CustomID != roleSelectID {
			return
		}
		err = b.handleRoleSelect(s, i)
	default:
		return
	}

	if err != nil {
		log.Error().Err(err).Str("guildID", i.GuildID).Msg("interaction failed")
		reportFailure(s, i)
	}
}

func reportFailure(s *dgo.Session, i *dgo.InteractionCreate) {
	err := respondEphemeral(s, i, "Something went wrong. Check my permissions and role position.")
	if err != nil {
		log.Error().Err(err).Msg("failure report undeliverable")
	}
}

// respondFunc delivers a private reply to an interaction's invoking user.
type respondFunc func(*dgo.Session, *dgo.InteractionCreate, string) error

func respondEphemeral(s *dgo.Session, i *dgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &dgo.InteractionResponse{
		Type: dgo.InteractionResponseChannelMessageWithSource,
		Data: &dgo.InteractionResponseData{
			Content: content,
			Flags:   dgo.MessageFlagsEphemeral,
		},
	})
}
