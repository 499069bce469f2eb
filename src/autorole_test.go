package rolewarden

import (
	"testing"

	dgo "github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func autoroleInteraction(perms int64, sub *dgo.ApplicationCommandInteractionDataOption) *dgo.InteractionCreate {
	return commandInteraction(perms, dgo.ApplicationCommandInteractionData{
		Name:    "autorole",
		Options: []*dgo.ApplicationCommandInteractionDataOption{sub},
	})
}

func setDefaultSub(roleID string) *dgo.ApplicationCommandInteractionDataOption {
	return &dgo.ApplicationCommandInteractionDataOption{
		Name: "set-default",
		Type: dgo.ApplicationCommandOptionSubCommand,
		Options: []*dgo.ApplicationCommandInteractionDataOption{
			{Name: "role", Type: dgo.ApplicationCommandOptionRole, Value: roleID},
		},
	}
}

func TestAutoRoleSetShowClear(t *testing.T) {
	g := newFakeGuild([]*dgo.Role{mkRole("r1", "blue")})
	st := &fakeStore{defaults: map[string]string{}}
	rec := &responseRecorder{}
	b := &wardenBot{store: st, respond: rec.record, guildState: fixedGuildState(g)}

	show := &dgo.ApplicationCommandInteractionDataOption{
		Name: "show",
		Type: dgo.ApplicationCommandOptionSubCommand,
	}
	clear := &dgo.ApplicationCommandInteractionDataOption{
		Name: "clear-default",
		Type: dgo.ApplicationCommandOptionSubCommand,
	}

	require.NoError(t, b.handleAutoRole(nil, autoroleInteraction(dgo.PermissionManageRoles, setDefaultSub("r1"))))
	assert.Equal(t, "r1", st.defaults["guild"])

	require.NoError(t, b.handleAutoRole(nil, autoroleInteraction(dgo.PermissionManageRoles, show)))
	assert.Contains(t, rec.messages[len(rec.messages)-1], "blue")

	require.NoError(t, b.handleAutoRole(nil, autoroleInteraction(dgo.PermissionManageRoles, clear)))
	assert.Equal(t, "", st.defaults["guild"])

	require.NoError(t, b.handleAutoRole(nil, autoroleInteraction(dgo.PermissionManageRoles, show)))
	assert.Contains(t, rec.messages[len(rec.messages)-1], "No default role")
}

func TestAutoRoleSetRejectsUnmanageableRole(t *testing.T) {
	g := newFakeGuild([]*dgo.Role{mkRole("r1", "blue")})
	g.unmanageable["r1"] = true
	st := &fakeStore{defaults: map[string]string{}}
	rec := &responseRecorder{}
	b := &wardenBot{store: st, respond: rec.record, guildState: fixedGuildState(g)}

	require.NoError(t, b.handleAutoRole(nil, autoroleInteraction(dgo.PermissionManageRoles, setDefaultSub("r1"))))
	assert.Empty(t, st.defaults)
	require.Len(t, rec.messages, 1)
	assert.Contains(t, rec.messages[0], "My role must sit above")
}

func TestAutoRoleRejectsUnprivilegedActor(t *testing.T) {
	st := &fakeStore{defaults: map[string]string{}}
	rec := &responseRecorder{}
	b := &wardenBot{store: st, respond: rec.record}

	require.NoError(t, b.handleAutoRole(nil, autoroleInteraction(dgo.PermissionSendMessages, setDefaultSub("r1"))))
	assert.Empty(t, st.defaults)
	require.Len(t, rec.messages, 1)
	assert.Contains(t, rec.messages[0], "You need Administrator")
}
