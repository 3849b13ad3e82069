package profile

import (
	_ "embed"
	"strings"
)

//go:embed prompt.md
var promptTemplate string

// DefaultMaxPromptChars bounds the resume text embedded into the prompt.
const DefaultMaxPromptChars = 12000

const resumePlaceholder = "{{RESUME_TEXT}}"

func buildPrompt(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxPromptChars
	}
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > maxChars {
		runes = runes[:maxChars]
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Extract the resume below as a JSON object.\n\nResume:\n" + resumePlaceholder + "\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, resumePlaceholder, string(runes))
}
