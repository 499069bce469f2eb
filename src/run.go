package rolewarden

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	dgo "github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"

	wlog "github.com/hanseol/rolewarden/src/log"
	"github.com/hanseol/rolewarden/src/store"
	"github.com/hanseol/rolewarden/src/store/jsonfile"
)

type wardenBot struct {
	store           store.Store
	commandHandlers map[string]commandFunc
	session         *dgo.Session
	guildID         string

	guildState guildStateFunc
	respond    respondFunc
}

const defaultSettingsPath = "data/settings.json"

// Run starts rolewarden
func Run(args []string) int {

	wlog.Setup()

	var bot wardenBot

	// Create bot discord session and settings store
	err := bot.fromArgs(args)
	if err != nil {
		log.Error().Err(err).Msg("Error creating bot from args.")
		return 1
	}
	bot.guildState = liveGuildState
	bot.respond = respondEphemeral
	bot.commandHandlers = bot.makeCommandHandlers()

	// Add event handlers to discordgo session https://discord.com/developers/docs/topics/gateway#commands-and-events-gateway-events
	log.Info().Msg("Adding event handlers to discordgo session")
	bot.session.AddHandler(bot.ready)
	bot.session.AddHandler(bot.handleInteraction)
	bot.session.AddHandler(bot.handleMemberJoin)

	// Member-join events need the privileged members intent.
	bot.session.Identify.Intents = dgo.IntentsGuilds | dgo.IntentsGuildMembers

	// Open Discord connection
	log.Info().Msg("Opening discord connection")
	err = bot.session.Open()
	if err != nil {
		log.Error().Err(err).Msg("")
		return 1
	}
	defer bot.close()
	log.Info().Msg("Discord connection opened")

	log.Info().Msg("Setup Complete")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt, os.Kill)
	<-sc
	fmt.Print("\n")
	return 0
}

func (b *wardenBot) fromArgs(args []string) error {

	fl := flag.NewFlagSet("rolewarden", flag.ContinueOnError)

	token := fl.String("t", "", "Discord Bot Token")
	guildID := fl.String("g", "", "Guild ID for guild-scoped command registration")
	settings := fl.String("s", defaultSettingsPath, "Path to the settings file")

	if err := fl.Parse(args); err != nil {
		return err
	}

	tok, gid, err := resolveConfig(*token, *guildID, "./creds.yml")
	if err != nil {
		return err
	}
	b.guildID = gid

	log.Info().Msg("Creating Discord Session")
	dg, err := dgo.New("Bot " + tok)
	if err != nil {
		return fmt.Errorf("Error creating discord session: %v", err)
	}
	b.session = dg

	log.Info().Str("path", *settings).Msg("Loading settings store")
	b.store = jsonfile.Load(*settings)

	return nil
}

// resolveConfig fills the token and guild ID from flags first, then the
// environment, then creds.yml. The file is only consulted when the earlier
// sources left a value unset, and a malformed file only fails startup when
// the token still depends on it.
func resolveConfig(token, guildID, credsPath string) (string, string, error) {
	if token == "" {
		token = os.Getenv("DISCORD_TOKEN")
	}
	if guildID == "" {
		guildID = os.Getenv("GUILD_ID")
	}

	if token == "" || guildID == "" {
		creds, err := readCreds(credsPath)
		if err != nil {
			if token == "" {
				return "", "", err
			}
			log.Warn().Err(err).Str("path", credsPath).Msg("ignoring malformed creds.yml")
		}
		if token == "" {
			token = creds.Token
		}
		if guildID == "" {
			guildID = creds.GuildID
		}
	}

	if token == "" {
		return "", "", errors.New("No Discord token provided")
	}
	return token, guildID, nil
}

type credsFile struct {
	Token   string
	GuildID string `yaml:"guildID"`
}

// readCreds parses the optional creds.yml; a missing file is not an error.
func readCreds(path string) (credsFile, error) {
	var creds credsFile
	dat, err := os.ReadFile(path)
	if err != nil {
		return creds, nil
	}
	err = yaml.Unmarshal(dat, &creds)
	return creds, err
}

func (b *wardenBot) close() {
	b.session.Close()
}

func (b *wardenBot) ready(s *dgo.Session, event *dgo.Ready) {
	err := s.UpdateGameStatus(0, "role menus")
	if err != nil {
		log.Error().Err(err).Msg("")
	}
	b.registerCommands(s)
}
