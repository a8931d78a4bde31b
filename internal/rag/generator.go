package rag

import (
	"context"
	"fmt"
	"strings"

	"emailogan/internal/models"
	"emailogan/internal/utils"

	"github.com/rs/zerolog"
)

const (
	// StyleProfessional is the fallback for unrecognized style values.
	StyleProfessional = "professional"
	StyleFriendly     = "friendly"
	StyleConcise      = "concise"
	StyleDetailed     = "detailed"

	completionMaxTokens   = 1000
	completionTemperature = 0.7
)

// styleDescriptors maps each style to the tone descriptor filled into
// the system-instruction template.
var styleDescriptors = map[string]string{
	StyleProfessional: "professional and formal",
	StyleFriendly:     "friendly and conversational",
	StyleConcise:      "brief and to the point",
	StyleDetailed:     "comprehensive and thorough",
}

// Completer makes a single stateless system+user completion exchange.
type Completer interface {
	CreateChatCompletion(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error)
}

// Generator produces reply drafts that mimic the knowledge base's
// writing style.
type Generator struct {
	completer Completer
	logger    zerolog.Logger
}

// NewGenerator creates a reply generator over the given completer.
func NewGenerator(completer Completer, logger zerolog.Logger) *Generator {
	return &Generator{completer: completer, logger: logger}
}

// NormalizeStyle maps any style value onto the fixed enumeration,
// falling back to professional for unrecognized values.
func NormalizeStyle(style string) string {
	if _, ok := styleDescriptors[style]; ok {
		return style
	}
	return StyleProfessional
}

// GenerateReply makes one synchronous completion call producing a reply
// to emailText. When contextBlock is non-empty the model is instructed
// to mimic the exemplars' writing style; otherwise it falls back to a
// non-personalized instruction set.
func (g *Generator) GenerateReply(ctx context.Context, emailText, style, contextBlock string, matches []models.RetrievalMatch) (*models.GeneratedReply, error) {
	style = NormalizeStyle(style)

	systemPrompt := buildSystemPrompt(style, contextBlock, emailText)
	userPrompt := fmt.Sprintf("Please generate a reply to the following email:\n\n%s\n\n---\nGenerate your REPLY below:", emailText)

	g.logger.Debug().
		Str("style", style).
		Int("system_prompt_chars", len(systemPrompt)).
		Int("context_chars", len(contextBlock)).
		Msg("Generating reply")

	response, err := g.completer.CreateChatCompletion(ctx, systemPrompt, userPrompt, completionMaxTokens, completionTemperature)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return &models.GeneratedReply{
		Response:     response,
		Style:        style,
		SourceEmails: matches,
	}, nil
}

// buildSystemPrompt fills the reply-generation instruction template.
// The instructions direct the model to reply to the supplied email, not
// to reword it, and to match the exemplar style when context exists.
func buildSystemPrompt(style, contextBlock, emailText string) string {
	var sb strings.Builder

	sb.WriteString("You are an AI assistant that generates REPLY emails. Your task is to write a RESPONSE to an email that will be provided.\n\n")

	if contextBlock != "" {
		sb.WriteString("CONTEXT - Previous emails showing your writing style and tone:\n")
		sb.WriteString(contextBlock)
		sb.WriteString("\n\nIMPORTANT: Study these examples carefully and mimic the writing style, tone, vocabulary, and patterns used in these emails. This helps maintain consistency with how you typically write emails.\n\n")
	}

	styleMatching := "Write naturally and professionally"
	if contextBlock != "" {
		styleMatching = "Match the writing style from the example emails above"
	}

	sb.WriteString("INSTRUCTIONS:\n")
	sb.WriteString("1. Generate a REPLY to the email provided (do NOT reword or rewrite the original email)\n")
	sb.WriteString("2. Write as if you are responding TO the sender\n")
	sb.WriteString("3. Address their questions, concerns, or topics\n")
	sb.WriteString(fmt.Sprintf("4. Use a %s tone\n", styleDescriptors[style]))
	sb.WriteString(fmt.Sprintf("5. %s\n", styleMatching))
	sb.WriteString("6. Sign off appropriately based on the context\n\n")

	lang := utils.DetectLanguage(emailText)
	sb.WriteString(utils.GetLanguageInstruction(lang))

	return sb.String()
}
