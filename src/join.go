package rolewarden

import (
	dgo "github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// handleMemberJoin grants the guild's configured default role to a newly
// joined member. Join events are not redelivered, so every failure here is
// logged and dropped rather than retried.
func (b *wardenBot) handleMemberJoin(s *dgo.Session, m *dgo.GuildMemberAdd) {
	roleID := b.store.DefaultRole(m.GuildID)
	if roleID == "" {
		return
	}

	gs, err := b.guildState(s, m.GuildID)
	if err != nil {
		log.Warn().Err(err).Str("guildID", m.GuildID).Msg("cannot resolve bot state for join")
		return
	}

	role, err := gs.Role(roleID)
	if err != nil || role == nil {
		log.Warn().
			Err(err).
			Str("guildID", m.GuildID).
			Str("roleID", roleID).
			Msg("default role unresolvable")
		return
	}

	if !gs.CanManage(role) {
		log.Warn().
			Str("guildID", m.GuildID).
			Str("role", role.Name).
			Msg("default role not grantable, check bot permissions and role position")
		return
	}

	if err := gs.Grant(m.User.ID, role.ID); err != nil {
		log.Error().
			Err(err).
			Str("guildID", m.GuildID).
			Str("user", m.User.String()).
			Str("role", role.Name).
			Msg("default role grant failed")
		return
	}

	log.Info().
		Str("guildID", m.GuildID).
		Str("user", m.User.String()).
		Str("role", role.Name).
		Msg("default role granted")
}
