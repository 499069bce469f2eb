package rolewarden

import (
	dgo "github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
)

// guildStateFunc resolves the guildRoles view for one guild. The bot carries
// it as a field so handlers can run against fakes.
type guildStateFunc func(*dgo.Session, string) (guildRoles, error)

func liveGuildState(s *dgo.Session, guildID string) (guildRoles, error) {
	return newGuildSession(s, guildID)
}

// guildSession adapts a discordgo session to the guildRoles interface for a
// single guild. The bot's own permission state is resolved once at
// construction, fresh for every operation that needs it.
type guildSession struct {
	sess    *dgo.Session
	guildID string

	botPerms int64
	botTop   *dgo.Role
}

func newGuildSession(s *dgo.Session, guildID string) (*guildSession, error) {
	roles, err := guildRoleList(s, guildID)
	if err != nil {
		return nil, errors.Wrap(err, "listing guild roles")
	}

	me, err := guildMember(s, guildID, s.State.User.ID)
	if err != nil {
		return nil, errors.Wrap(err, "resolving bot member")
	}

	return &guildSession{
		sess:     s,
		guildID:  guildID,
		botPerms: guildPermissions(roles, guildID, me),
		botTop:   highestRole(roles, guildID, me.Roles),
	}, nil
}

func (g *guildSession) Role(id string) (*dgo.Role, error) {
	return findRole(g.sess, g.guildID, id)
}

func (g *guildSession) MemberRoleIDs(userID string) ([]string, error) {
	m, err := guildMember(g.sess, g.guildID, userID)
	if err != nil {
		return nil, err
	}
	return m.Roles, nil
}

func (g *guildSession) CanManage(role *dgo.Role) bool {
	return botMayManageRole(g.botPerms, g.botTop, role)
}

func (g *guildSession) Grant(userID, roleID string) error {
	return g.sess.GuildMemberRoleAdd(g.guildID, userID, roleID)
}

func (g *guildSession) Revoke(userID, roleID string) error {
	return g.sess.GuildMemberRoleRemove(g.guildID, userID, roleID)
}

// guildRoleList reads a guild's roles from the state cache, hitting the REST
// API when the cache has nothing.
func guildRoleList(s *dgo.Session, guildID string) ([]*dgo.Role, error) {
	if g, err := s.State.Guild(guildID); err == nil && len(g.Roles) > 0 {
		return g.Roles, nil
	}
	return s.GuildRoles(guildID)
}

// guildMember resolves a member, state cache first.
func guildMember(s *dgo.Session, guildID, userID string) (*dgo.Member, error) {
	if m, err := s.State.Member(guildID, userID); err == nil {
		return m, nil
	}
	return s.GuildMember(guildID, userID)
}

// findRole resolves a single role by ID, returning nil without error when
// the role is gone.
func findRole(s *dgo.Session, guildID, roleID string) (*dgo.Role, error) {
	roles, err := guildRoleList(s, guildID)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if r.ID == roleID {
			return r, nil
		}
	}
	return nil, nil
}
