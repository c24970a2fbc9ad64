package utils

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts
var promptFiles embed.FS

// LoadPrompt loads a prompt from the embedded markdown files.
func LoadPrompt(name string) (string, error) {
	content, err := promptFiles.ReadFile(fmt.Sprintf("prompts/%s.md", name))
	if err != nil {
		return "", fmt.Errorf("failed to load prompt %s: %w", name, err)
	}
	return strings.TrimSpace(string(content)), nil
}

// LoadPromptWithContext loads a prompt and renders it as a text template
// against the given context.
func LoadPromptWithContext(name string, context map[string]string) (string, error) {
	content, err := LoadPrompt(name)
	if err != nil {
		return "", err
	}

	tpl, err := template.New(name).Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt %s: %w", name, err)
	}

	var sb strings.Builder
	if err := tpl.Execute(&sb, context); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", name, err)
	}

	return sb.String(), nil
}
