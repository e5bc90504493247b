package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolld/internal/logging"
	"github.com/KirkDiggler/rolld/internal/services/formatting"
	"github.com/KirkDiggler/rolld/internal/services/roller"
)

// Bot represents the Discord bot instance
type Bot struct {
	session           *discordgo.Session
	commands          map[string]CommandHandler
	commandIDs        map[string]string // Maps command name to command ID
	rollerService     roller.Service
	formattingService formatting.Service
	config            *Config
	log               zerolog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Roller service
	RollerService roller.Service

	// Formatting service
	FormattingService formatting.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.RollerService == nil {
		return nil, errors.New("roller service cannot be nil")
	}

	if cfg.FormattingService == nil {
		return nil, errors.New("formatting service cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:           session,
		commands:          make(map[string]CommandHandler),
		commandIDs:        make(map[string]string),
		rollerService:     cfg.RollerService,
		formattingService: cfg.FormattingService,
		config:            cfg,
		log:               logging.GetLogger("discord"),
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	// Register the roll command
	rollCmd := NewRollCommand(b.rollerService, b.formattingService)
	if err := b.RegisterCommand(rollCmd); err != nil {
		return fmt.Errorf("failed to register roll command: %w", err)
	}

	b.log.Info().Msg("Bot is now running")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	// Remove all commands
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	guildID := ""
	if b.config.GuildID != "" {
		guildID = b.config.GuildID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, guildID, cmdID); err != nil {
			b.log.Error().Err(err).Str("command", cmdName).Str("id", cmdID).Msg("Failed to delete command")
		} else {
			b.log.Info().Str("command", cmdName).Str("id", cmdID).Msg("Deleted command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// Register the command with Discord
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := ""
	if b.config.GuildID != "" {
		guildID = b.config.GuildID
		b.log.Info().Str("command", cmd.GetName()).Str("guild", guildID).Msg("Registering guild command")
	} else {
		b.log.Info().Str("command", cmd.GetName()).Msg("Registering global command")
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID

	return nil
}

// Component custom IDs. A reroll ID carries the expression after the colon
// so the handler needs no stored state to repeat a roll.
const rerollPrefix = "reroll:"

// RerollCustomID builds the custom ID for a "Roll again" button
func RerollCustomID(expression string) string {
	return rerollPrefix + expression
}

// ParseRerollCustomID extracts the expression from a reroll custom ID
func ParseRerollCustomID(customID string) (string, bool) {
	return strings.CutPrefix(customID, rerollPrefix)
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Handle different interaction types
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		// Handle slash commands
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.log.Error().Err(err).Str("command", i.ApplicationCommandData().Name).Msg("Error handling command")
			}
		}
	case discordgo.InteractionMessageComponent:
		// Handle buttons and other components
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.log.Error().Err(err).Msg("Error handling component interaction")
		}
	}
}

// handleComponentInteraction handles button clicks and other component interactions
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	// "Roll again" buttons carry the expression they repeat
	if expression, ok := ParseRerollCustomID(customID); ok {
		return respondWithRoll(s, i, b.rollerService, b.formattingService, expression)
	}

	return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
}
