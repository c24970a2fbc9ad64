package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every externally tunable setting for a memo run. It is built
// once at process start and passed into component constructors; pipeline code
// never reads the environment directly.
type Config struct {
	ProjectDir string `json:"project_dir"`
	OutputDir  string `json:"output_dir"`

	// LLM settings
	LLMProvider           string  `json:"llm_provider"` // openai or deepseek
	AnalysisModel         string  `json:"analysis_model"`
	ClassifierModel       string  `json:"classifier_model"`
	BackendURL            string  `json:"backend_url"`
	OpenAIAPIKey          string  `json:"openai_api_key"`
	DeepSeekAPIKey        string  `json:"deepseek_api_key"`
	AnalysisTemperature   float64 `json:"analysis_temperature"`
	ClassifierTemperature float64 `json:"classifier_temperature"`

	// Search and scrape collaborators
	TavilyAPIKey    string `json:"tavily_api_key"`
	FirecrawlAPIKey string `json:"firecrawl_api_key"`
	ScrapeProvider  string `json:"scrape_provider"` // firecrawl or local

	// Context size caps, in characters
	PageHarvestLimit   int `json:"page_harvest_limit"`
	PromptContentLimit int `json:"prompt_content_limit"`
	SnippetLimit       int `json:"snippet_limit"`

	// Search result counts
	WebsiteResults int `json:"website_results"`
	NewsResults    int `json:"news_results"`

	HTTPTimeoutSeconds int  `json:"http_timeout_seconds"`
	Debug              bool `json:"debug"`

	// Eino Debug configuration
	EinoDebugEnabled bool `json:"eino_debug_enabled"`
	EinoDebugPort    int  `json:"eino_debug_port"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		ProjectDir: currentDir,
		OutputDir:  currentDir,

		LLMProvider:           "openai",
		AnalysisModel:         "gpt-4o",
		ClassifierModel:       "gpt-4o-mini",
		BackendURL:            "https://api.openai.com/v1",
		AnalysisTemperature:   0.7,
		ClassifierTemperature: 0,

		ScrapeProvider: "firecrawl",

		PageHarvestLimit:   5000,
		PromptContentLimit: 4000,
		SnippetLimit:       400,

		WebsiteResults: 3,
		NewsResults:    5,

		HTTPTimeoutSeconds: 30,
		Debug:              false,

		EinoDebugEnabled: false,
		EinoDebugPort:    52538,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	// Override with environment variables if they exist
	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("PROJECT_DIR"); val != "" {
		c.ProjectDir = val
	}
	if val := os.Getenv("OUTPUT_DIR"); val != "" {
		c.OutputDir = val
	}

	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("ANALYSIS_MODEL"); val != "" {
		c.AnalysisModel = val
	}
	if val := os.Getenv("CLASSIFIER_MODEL"); val != "" {
		c.ClassifierModel = val
	}
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}
	if val := os.Getenv("ANALYSIS_TEMPERATURE"); val != "" {
		if t, err := strconv.ParseFloat(val, 64); err == nil {
			c.AnalysisTemperature = t
		}
	}
	if val := os.Getenv("CLASSIFIER_TEMPERATURE"); val != "" {
		if t, err := strconv.ParseFloat(val, 64); err == nil {
			c.ClassifierTemperature = t
		}
	}

	if val := os.Getenv("TAVILY_API_KEY"); val != "" {
		c.TavilyAPIKey = val
	}
	if val := os.Getenv("FIRECRAWL_API_KEY"); val != "" {
		c.FirecrawlAPIKey = val
	}
	if val := os.Getenv("SCRAPE_PROVIDER"); val != "" {
		c.ScrapeProvider = val
	}

	if val := os.Getenv("PAGE_HARVEST_LIMIT"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.PageHarvestLimit = v
		}
	}
	if val := os.Getenv("PROMPT_CONTENT_LIMIT"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.PromptContentLimit = v
		}
	}
	if val := os.Getenv("SNIPPET_LIMIT"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.SnippetLimit = v
		}
	}

	if val := os.Getenv("HTTP_TIMEOUT_SECONDS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.HTTPTimeoutSeconds = v
		}
	}

	if val := os.Getenv("DEALFLOW_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}

	if val := os.Getenv("EINO_DEBUG_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.EinoDebugEnabled = enabled
		}
	}
	if val := os.Getenv("EINO_DEBUG_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.EinoDebugPort = port
		}
	}
}

// Validate reports configuration states that cannot produce a memo at all.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case "openai", "deepseek":
	default:
		return fmt.Errorf("unknown llm provider %q (expected openai or deepseek)", c.LLMProvider)
	}
	switch c.ScrapeProvider {
	case "firecrawl", "local":
	default:
		return fmt.Errorf("unknown scrape provider %q (expected firecrawl or local)", c.ScrapeProvider)
	}
	if c.PageHarvestLimit <= 0 || c.PromptContentLimit <= 0 || c.SnippetLimit <= 0 {
		return fmt.Errorf("context size caps must be positive")
	}
	return nil
}

func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.ProjectDir, c.OutputDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// MemoPath returns the deterministic output path for a company's memo. The
// company name is used verbatim; callers must keep path-unsafe characters out
// of it.
func (c *Config) MemoPath(company string) string {
	return filepath.Join(c.OutputDir, fmt.Sprintf("%s_Memo.pdf", company))
}
