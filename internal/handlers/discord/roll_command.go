package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolld/internal/logging"
	"github.com/KirkDiggler/rolld/internal/services/formatting"
	"github.com/KirkDiggler/rolld/internal/services/roller"
)

// RollCommand handles the /roll command
type RollCommand struct {
	BaseCommand
	rollerService     roller.Service
	formattingService formatting.Service
	log               zerolog.Logger
}

// NewRollCommand creates a new roll command handler
func NewRollCommand(rollerService roller.Service, formattingService formatting.Service) *RollCommand {
	return &RollCommand{
		BaseCommand: BaseCommand{
			Name:        "roll",
			Description: "Roll dice using standard notation, e.g. 2d6+3 or 4d6d1",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "notation",
					Description: "Dice notation to roll (add x3 to roll three times)",
					Required:    true,
				},
			},
		},
		rollerService:     rollerService,
		formattingService: formattingService,
		log:               logging.GetLogger("discord.roll"),
	}
}

// Handle processes a Discord interaction for the roll command
func (c *RollCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	expression := extractNotationOption(data.Options)

	c.log.Debug().Str("expression", expression).Msg("Handling roll command")

	return respondWithRoll(s, i, c.rollerService, c.formattingService, expression)
}

// extractNotationOption pulls the notation string out of the command options
func extractNotationOption(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, option := range options {
		if option.Name == "notation" {
			return option.StringValue()
		}
	}

	return ""
}
