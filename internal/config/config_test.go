package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValues(t *testing.T) {
	for _, key := range []string{
		"LLM_PROVIDER", "ANALYSIS_MODEL", "CLASSIFIER_MODEL", "BACKEND_URL",
		"SCRAPE_PROVIDER", "PAGE_HARVEST_LIMIT", "PROMPT_CONTENT_LIMIT",
		"SNIPPET_LIMIT", "HTTP_TIMEOUT_SECONDS", "OUTPUT_DIR", "PROJECT_DIR",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := DefaultConfig()

	if cfg.LLMProvider != "openai" {
		t.Errorf("LLMProvider: got %q", cfg.LLMProvider)
	}
	if cfg.AnalysisModel != "gpt-4o" || cfg.ClassifierModel != "gpt-4o-mini" {
		t.Errorf("models: got %q / %q", cfg.AnalysisModel, cfg.ClassifierModel)
	}
	if cfg.PageHarvestLimit != 5000 || cfg.PromptContentLimit != 4000 || cfg.SnippetLimit != 400 {
		t.Errorf("caps: got %d / %d / %d", cfg.PageHarvestLimit, cfg.PromptContentLimit, cfg.SnippetLimit)
	}
	if cfg.WebsiteResults != 3 || cfg.NewsResults != 5 {
		t.Errorf("result counts: got %d / %d", cfg.WebsiteResults, cfg.NewsResults)
	}
	if cfg.ScrapeProvider != "firecrawl" {
		t.Errorf("ScrapeProvider: got %q", cfg.ScrapeProvider)
	}
	if cfg.HTTPTimeoutSeconds != 30 {
		t.Errorf("HTTPTimeoutSeconds: got %d", cfg.HTTPTimeoutSeconds)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "deepseek")
	t.Setenv("ANALYSIS_MODEL", "deepseek-chat")
	t.Setenv("SNIPPET_LIMIT", "250")
	t.Setenv("DEALFLOW_DEBUG", "true")

	cfg := DefaultConfig()

	if cfg.LLMProvider != "deepseek" {
		t.Errorf("LLMProvider: got %q", cfg.LLMProvider)
	}
	if cfg.AnalysisModel != "deepseek-chat" {
		t.Errorf("AnalysisModel: got %q", cfg.AnalysisModel)
	}
	if cfg.SnippetLimit != 250 {
		t.Errorf("SnippetLimit: got %d", cfg.SnippetLimit)
	}
	if !cfg.Debug {
		t.Error("Debug should be enabled")
	}
}

func TestEnvironmentOverrideIgnoresGarbage(t *testing.T) {
	t.Setenv("SNIPPET_LIMIT", "not-a-number")

	cfg := DefaultConfig()
	if cfg.SnippetLimit != 400 {
		t.Errorf("garbage value must leave the default, got %d", cfg.SnippetLimit)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}

	cfg.LLMProvider = "claude"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "llm provider") {
		t.Fatalf("expected llm provider error, got %v", err)
	}

	cfg.LLMProvider = "openai"
	cfg.ScrapeProvider = "wget"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "scrape provider") {
		t.Fatalf("expected scrape provider error, got %v", err)
	}

	cfg.ScrapeProvider = "local"
	cfg.SnippetLimit = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero snippet limit")
	}
}

func TestMemoPath(t *testing.T) {
	cfg := &Config{OutputDir: "/tmp/memos"}
	want := filepath.Join("/tmp/memos", "Acme Co_Memo.pdf")
	if got := cfg.MemoPath("Acme Co"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSaveFileStripsAPIKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)

	cfg := DefaultConfig()
	cfg.OpenAIAPIKey = "sk-secret"
	cfg.TavilyAPIKey = "tvly-secret"
	cfg.FirecrawlAPIKey = "fc-secret"
	cfg.LLMProvider = "deepseek"

	if err := cfg.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "secret") {
		t.Fatalf("saved config leaks API keys:\n%s", data)
	}

	var saved map[string]any
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("saved config is not valid JSON: %v", err)
	}
	if saved["llm_provider"] != "deepseek" {
		t.Fatalf("llm_provider not persisted: %v", saved["llm_provider"])
	}
}

func TestLoadFileOverlaysAndKeepsEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)

	if err := os.WriteFile(path, []byte(`{"llm_provider":"deepseek","snippet_limit":200}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("SNIPPET_LIMIT", "123")

	cfg := DefaultConfig()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.LLMProvider != "deepseek" {
		t.Errorf("file value not applied: %q", cfg.LLMProvider)
	}
	if cfg.SnippetLimit != 123 {
		t.Errorf("env must beat file, got %d", cfg.SnippetLimit)
	}
}

func TestLoadFileRejectsBadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := DefaultConfig()
	if err := cfg.LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
