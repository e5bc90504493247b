package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/rolld/internal/common/clock"
	"github.com/KirkDiggler/rolld/internal/common/uuid"
	"github.com/KirkDiggler/rolld/internal/dice"
	"github.com/KirkDiggler/rolld/internal/engine"
	"github.com/KirkDiggler/rolld/internal/handlers/discord"
	"github.com/KirkDiggler/rolld/internal/logging"
	"github.com/KirkDiggler/rolld/internal/services/formatting"
	"github.com/KirkDiggler/rolld/internal/services/roller"
)

// config is read from the environment, with .env as a fallback for local runs
type config struct {
	// DiscordToken is the bot token
	DiscordToken string `env:"DISCORD_TOKEN,required"`

	// ApplicationID is the bot's application ID
	ApplicationID string `env:"DISCORD_APP_ID,required"`

	// GuildID scopes command registration to one guild; empty registers globally
	GuildID string `env:"DISCORD_GUILD_ID"`

	// Verbosity raises the log level like the CLI's -v
	Verbosity int `env:"ROLLD_VERBOSITY" envDefault:"1"`
}

func main() {
	// Load .env if present; deployed environments set variables directly
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse configuration")
	}

	logging.Setup(cfg.Verbosity)

	// Initialize the roll pipeline
	simulator, err := engine.New(&engine.Config{
		Roller: dice.New(&dice.Config{}),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create roll engine")
	}

	rollerSvc, err := roller.New(&roller.Config{
		Engine:        simulator,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create roller service")
	}

	formattingSvc, err := formatting.New(&formatting.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create formatting service")
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:             cfg.DiscordToken,
		ApplicationID:     cfg.ApplicationID,
		GuildID:           cfg.GuildID,
		RollerService:     rollerSvc,
		FormattingService: formattingSvc,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Discord bot")
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start Discord bot")
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Error().Err(err).Msg("Error stopping bot")
	}

	log.Info().Msg("Bot has been shut down")
}
