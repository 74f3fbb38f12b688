// Package ai wraps the remote text-generation service. Every Assistant method
// degrades to a neutral result instead of returning an error.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"smartnote/internal/logs"
)

const (
	MinTagContentLength = 10
	MaxSuggestedTags    = 5

	DefaultRewriteInstruction = "Rewrite this to be more professional and clear"

	SummaryFailed = "Error generating summary."
	SummaryEmpty  = "Could not generate summary."
)

// Assistant is what the editor and CLI call
type Assistant struct {
	gen Generator
}

func NewAssistant(gen Generator) *Assistant {
	return &Assistant{gen: gen}
}

// SuggestTags returns up to five lowercase single-word tags. Content shorter
// than MinTagContentLength never reaches the generator.
func (a *Assistant) SuggestTags(ctx context.Context, content string) []string {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < MinTagContentLength {
		return []string{}
	}

	prompt := fmt.Sprintf("Analyze the following note content and generate up to %d relevant, concise tags (one word each, lowercase). Content: \"%s\"", MaxSuggestedTags, content)
	raw, err := a.gen.Generate(ctx, Request{Prompt: prompt, StringList: true})
	if err != nil {
		logs.Logger.Error().Err(err).Str("op", "tags").Msg("tag generation failed")
		return []string{}
	}
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		logs.Logger.Error().Err(err).Str("op", "tags").Msg("tag response was not a string array")
		return []string{}
	}
	return NormalizeTags(tags)
}

// NormalizeTags lowercases, keeps the first word, drops blanks and duplicates,
// and caps the list at MaxSuggestedTags.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, MaxSuggestedTags)
	seen := make(map[string]bool)
	for _, t := range tags {
		fields := strings.Fields(strings.ToLower(t))
		if len(fields) == 0 {
			continue
		}
		word := strings.Trim(fields[0], "#,.;:")
		if word == "" || seen[word] {
			continue
		}
		seen[word] = true
		out = append(out, word)
		if len(out) == MaxSuggestedTags {
			break
		}
	}
	return out
}

// Summarize returns a short summary, or a fixed message on failure
func (a *Assistant) Summarize(ctx context.Context, content string) string {
	if content == "" {
		return ""
	}

	prompt := fmt.Sprintf("Provide a concise summary (max 2 sentences) of the following note: \"%s\"", content)
	text, err := a.gen.Generate(ctx, Request{Prompt: prompt})
	if err != nil {
		logs.Logger.Error().Err(err).Str("op", "summary").Msg("summary generation failed")
		return SummaryFailed
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return SummaryEmpty
	}
	return text
}

// Rewrite returns the rewritten text, or content unchanged on failure
func (a *Assistant) Rewrite(ctx context.Context, content, instruction string) string {
	if instruction == "" {
		instruction = DefaultRewriteInstruction
	}

	prompt := fmt.Sprintf("Task: %s. Input Text: \"%s\". \n\nReturn only the rewritten text.", instruction, content)
	text, err := a.gen.Generate(ctx, Request{Prompt: prompt})
	if err != nil {
		logs.Logger.Error().Err(err).Str("op", "rewrite").Msg("rewrite failed")
		return content
	}
	if strings.TrimSpace(text) == "" {
		return content
	}
	return text
}
