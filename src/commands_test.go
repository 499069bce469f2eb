package rolewarden

import (
	"testing"

	dgo "github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandDefinitions(t *testing.T) {
	defs := commandDefinitions()
	require.Len(t, defs, 2)

	byName := make(map[string]*dgo.ApplicationCommand, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}

	menu := byName["rolemenu"]
	require.NotNil(t, menu)
	require.Len(t, menu.Options, maxMenuRoles+1)
	assert.Equal(t, "title", menu.Options[0].Name)
	assert.True(t, menu.Options[0].Required)
	assert.Equal(t, "role1", menu.Options[1].Name)
	assert.True(t, menu.Options[1].Required)
	for _, opt := range menu.Options[2:] {
		assert.False(t, opt.Required, opt.Name)
	}

	auto := byName["autorole"]
	require.NotNil(t, auto)
	require.Len(t, auto.Options, 3)
	subs := make([]string, 0, 3)
	for _, sub := range auto.Options {
		assert.Equal(t, dgo.ApplicationCommandOptionSubCommand, sub.Type)
		subs = append(subs, sub.Name)
	}
	assert.ElementsMatch(t, []string{"set-default", "clear-default", "show"}, subs)
}

func TestMakeCommandHandlersCoversDefinitions(t *testing.T) {
	b := &wardenBot{}
	handlers := b.makeCommandHandlers()
	for _, d := range commandDefinitions() {
		assert.Contains(t, handlers, d.Name)
	}
}
