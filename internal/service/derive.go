package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"persona-admin/internal/storage"
)

const (
	// MinPromptLength and MaxPromptLength bound a system prompt, in characters.
	MinPromptLength = 10
	MaxPromptLength = 100000

	maxPersonaCodeLength  = 50
	maxDescriptionLength  = 200
	defaultDescription    = "AI Assistant Persona"
	defaultHistoryKeep    = 10
	defaultHistoryLimit   = 10
	maxHistoryLimit       = 100
	categoryGeneral       = "general"
	categoryPersonal      = "personal"
	categoryOperation     = "operation"
	categoryExtension     = "extension"
	assistantRoleTemplate = "You are an AI assistant acting as %s.\nProvide accurate and helpful answers to the user's requests."
)

var personaCodePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Categories lists the persona categories exposed to clients.
var Categories = []string{categoryPersonal, categoryGeneral, categoryOperation, categoryExtension}

// PersonaFromRecord builds the read-only persona view of a stored record.
// Title, description and category are derived from the prompt text and code.
func PersonaFromRecord(rec storage.PersonaRecord) Persona {
	description := DeriveDescription(rec.PromptText)
	return Persona{
		PersonaCode:   rec.PersonaCode,
		Title:         DeriveTitle(rec.PersonaCode, rec.PromptText),
		Description:   description,
		DescriptionEn: description,
		Category:      InferCategory(rec.PersonaCode),
		SystemPrompt:  rec.PromptText,
		Active:        true,
		CreatedDate:   rec.CreatedAt,
		UpdatedDate:   rec.CreatedAt,
	}
}

// DeriveTitle returns the text of the first "# " heading line, or the code
// with underscores replaced by spaces, upper-cased.
func DeriveTitle(personaCode, promptText string) string {
	for _, line := range strings.Split(promptText, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return strings.ToUpper(strings.ReplaceAll(personaCode, "_", " "))
}

// DeriveDescription returns the first line that is not blank, not a heading
// and not a "---" separator, truncated to 200 characters.
func DeriveDescription(promptText string) string {
	for _, line := range strings.Split(promptText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "---") {
			continue
		}
		return truncate(line, maxDescriptionLength)
	}
	return defaultDescription
}

// InferCategory maps a persona code to a category by substring.
func InferCategory(personaCode string) string {
	lower := strings.ToLower(personaCode)
	switch {
	case strings.Contains(lower, "personal"), strings.Contains(lower, "private"):
		return categoryPersonal
	case strings.Contains(lower, "operation"), strings.Contains(lower, "ops"), strings.Contains(lower, "admin"):
		return categoryOperation
	default:
		return categoryGeneral
	}
}

// ValidatePrompt checks a system prompt. It returns nil when the prompt is valid.
func ValidatePrompt(promptText string) *ValidationError {
	n := utf8.RuneCountInString(promptText)
	switch {
	case strings.TrimSpace(promptText) == "":
		return &ValidationError{Field: "systemPrompt", Message: "System prompt cannot be empty"}
	case n < MinPromptLength:
		return &ValidationError{Field: "systemPrompt", Message: fmt.Sprintf("System prompt too short (minimum %d characters)", MinPromptLength)}
	case n > MaxPromptLength:
		return &ValidationError{Field: "systemPrompt", Message: fmt.Sprintf("System prompt too long (maximum %d characters)", MaxPromptLength)}
	}
	return nil
}

// DefaultSystemPrompt synthesizes a prompt for a persona created without one.
func DefaultSystemPrompt(title, description string) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")
	if strings.TrimSpace(description) != "" {
		b.WriteString(description)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, assistantRoleTemplate, title)
	return b.String()
}

// validatePersona checks the fields required to store a persona.
func validatePersona(p Persona) *ValidationError {
	code := p.PersonaCode
	switch {
	case strings.TrimSpace(code) == "":
		return &ValidationError{Field: "personaCode", Message: "is required"}
	case len(code) > maxPersonaCodeLength:
		return &ValidationError{Field: "personaCode", Message: fmt.Sprintf("must be at most %d characters", maxPersonaCodeLength)}
	case !personaCodePattern.MatchString(code):
		return &ValidationError{Field: "personaCode", Message: "may contain only letters, digits and underscores"}
	case strings.TrimSpace(p.Title) == "":
		return &ValidationError{Field: "title", Message: "is required"}
	case strings.TrimSpace(p.Category) == "":
		return &ValidationError{Field: "category", Message: "is required"}
	}
	return nil
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
