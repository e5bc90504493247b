package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/rolld/internal/services/formatting"
	"github.com/KirkDiggler/rolld/internal/services/roller"
)

// Embed colors
const (
	colorCrit     = 0x00ff00 // Green color
	colorCritFail = 0xff0000 // Red color
	colorNeutral  = 0x99aab5 // Discord greyple
)

// Discord caps component custom IDs at 100 bytes
const maxCustomIDLength = 100

// respondWithRoll runs one expression through the roller and answers the
// interaction with the rendered result. Component interactions update the
// message they came from instead of posting a new one.
func respondWithRoll(s *discordgo.Session, i *discordgo.InteractionCreate, rollerSvc roller.Service, formattingSvc formatting.Service, expression string) error {
	ctx := context.Background()

	output, err := rollerSvc.Roll(ctx, &roller.RollInput{Expression: expression})
	if err != nil {
		return respondWithRollFailure(s, i, formattingSvc, expression, err)
	}

	formatted := make([]*formatting.FormatResultOutput, 0, len(output.Records))
	for _, record := range output.Records {
		rendered, err := formattingSvc.FormatResult(ctx, &formatting.FormatResultInput{
			Result: record.Result,
		})
		if err != nil {
			return err
		}

		formatted = append(formatted, rendered)
	}

	embed, components := renderRollResponse(output.Expression, formatted)

	if i.Type == discordgo.InteractionMessageComponent {
		// Update the existing message instead of sending a new one
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{embed},
				Components: components,
			},
		})
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// respondWithRollFailure renders a parse or simulation failure as an
// ephemeral error embed so only the caller sees it.
func respondWithRollFailure(s *discordgo.Session, i *discordgo.InteractionCreate, formattingSvc formatting.Service, expression string, rollErr error) error {
	rendered, err := formattingSvc.FormatParseError(context.Background(), &formatting.FormatParseErrorInput{
		Expression: expression,
		Err:        rollErr,
	})
	if err != nil {
		return err
	}

	return RespondWithEphemeralError(s, i, rendered.Text)
}

// renderRollResponse builds the embed and the "Roll again" button for a
// completed roll. A single roll renders in the description; repeated rolls
// get one field each.
func renderRollResponse(expression string, formatted []*formatting.FormatResultOutput) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎲 %s", expression),
		Color: embedColor(formatted),
	}

	// A flavor title from the formatter takes over the headline
	for _, rendered := range formatted {
		if rendered.Title != "" {
			embed.Title = rendered.Title
			break
		}
	}

	if len(formatted) == 1 {
		embed.Description = formatted[0].Summary
	} else {
		for n, rendered := range formatted {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   fmt.Sprintf("Roll %d", n+1),
				Value:  rendered.Summary,
				Inline: false,
			})
		}
	}

	customID := RerollCustomID(expression)
	if len(customID) > maxCustomIDLength {
		return embed, nil
	}

	rollButton := discordgo.Button{
		Label:    "Roll again",
		Style:    discordgo.PrimaryButton,
		CustomID: customID,
		Emoji: &discordgo.ComponentEmoji{
			Name: "🎲",
		},
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{rollButton},
		},
	}

	return embed, components
}

// embedColor picks the embed color from the rendered highlights. A crit
// anywhere wins over a crit fail anywhere.
func embedColor(formatted []*formatting.FormatResultOutput) int {
	color := colorNeutral
	for _, rendered := range formatted {
		switch rendered.Highlight {
		case formatting.HighlightCrit:
			return colorCrit
		case formatting.HighlightCritFail:
			color = colorCritFail
		}
	}

	return color
}
