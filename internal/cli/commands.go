package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dyike/DealFlowGo/internal/config"
	"github.com/dyike/DealFlowGo/internal/models"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	if path, ok := config.DetectConfigFile(); ok {
		if err := cfg.LoadFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "dealflow",
		Short: "DealFlowGo - AI-Powered Investment Memo Generator",
		Long: `DealFlowGo researches a company end to end and produces an investment memo.
It searches the web for the company, scrapes its website, pulls live market
data for public companies, and synthesizes a structured analysis into a PDF
memo plus an interactive terminal report.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start interactive mode
			return runInteractiveMode(cfg)
		},
	}

	rootCmd.AddCommand(newMemoCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(cfg))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")

	return rootCmd
}

// newMemoCmd creates the memo command
func newMemoCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memo [COMPANY NAME]",
		Short: "Generate an investment memo for a company",
		Long: `Research a company and generate a full investment memo.
Example: dealflow memo "Shopify" --profile=market`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			companyName := strings.TrimSpace(strings.Join(args, " "))
			profileFlag, _ := cmd.Flags().GetString("profile")
			output, _ := cmd.Flags().GetString("output")
			if output != "" {
				cfg.OutputDir = output
			}
			exportHistory, _ := cmd.Flags().GetBool("export-history")

			profile, err := parseProfile(profileFlag)
			if err != nil {
				return err
			}

			return runMemoCommand(cfg, companyName, profile, exportHistory)
		},
	}

	cmd.Flags().String("profile", string(models.ProfileMarket), "Analysis profile: basic or market")
	cmd.Flags().String("output", "", "Directory for the generated memo (defaults to the current directory)")
	cmd.Flags().Bool("export-history", false, "Also export the 1-year price history as CSV (public companies only)")

	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("DealFlowGo v1.0.0")
			fmt.Println("AI-Powered Investment Memo Generator")
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Manage DealFlowGo configuration settings",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the current configuration to " + config.DefaultConfigFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigFile
			if err := cfg.SaveFile(path); err != nil {
				return err
			}
			fmt.Printf("✅ Configuration written to %s (API keys stay in the environment)\n", path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cfg)
		},
	})

	return configCmd
}

func parseProfile(value string) (models.Profile, error) {
	switch models.Profile(strings.ToLower(strings.TrimSpace(value))) {
	case models.ProfileBasic:
		return models.ProfileBasic, nil
	case models.ProfileMarket:
		return models.ProfileMarket, nil
	default:
		return "", fmt.Errorf("unknown profile %q (expected basic or market)", value)
	}
}

// showConfig displays the current configuration
func showConfig(cfg *config.Config) {
	fmt.Println("📋 Current DealFlowGo Configuration:")
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("Project Directory:    %s\n", cfg.ProjectDir)
	fmt.Printf("Output Directory:     %s\n", cfg.OutputDir)
	fmt.Println()
	fmt.Printf("LLM Provider:         %s\n", cfg.LLMProvider)
	fmt.Printf("Analysis Model:       %s\n", cfg.AnalysisModel)
	fmt.Printf("Classifier Model:     %s\n", cfg.ClassifierModel)
	fmt.Printf("Backend URL:          %s\n", cfg.BackendURL)
	fmt.Println()
	fmt.Printf("Scrape Provider:      %s\n", cfg.ScrapeProvider)
	fmt.Printf("Page Harvest Limit:   %d chars\n", cfg.PageHarvestLimit)
	fmt.Printf("Prompt Content Limit: %d chars\n", cfg.PromptContentLimit)
	fmt.Printf("Snippet Limit:        %d chars\n", cfg.SnippetLimit)
	fmt.Printf("Website Results:      %d\n", cfg.WebsiteResults)
	fmt.Printf("News Results:         %d\n", cfg.NewsResults)
	fmt.Println()
	fmt.Printf("HTTP Timeout:         %ds\n", cfg.HTTPTimeoutSeconds)
	fmt.Printf("Debug Mode:           %t\n", cfg.Debug)
	fmt.Printf("Eino Debug:           %t\n", cfg.EinoDebugEnabled)
	if cfg.EinoDebugEnabled {
		fmt.Printf("Eino Debug Port:      %d\n", cfg.EinoDebugPort)
		fmt.Printf("Debug URL:            http://localhost:%d\n", cfg.EinoDebugPort)
	}
	fmt.Println()

	fmt.Println("🔌 API Configuration:")
	fmt.Println("─────────────────────")
	printKeyStatus("Tavily API", cfg.TavilyAPIKey != "")
	printKeyStatus("Firecrawl API", cfg.FirecrawlAPIKey != "")
	printKeyStatus("OpenAI API", cfg.OpenAIAPIKey != "")
	printKeyStatus("DeepSeek API", cfg.DeepSeekAPIKey != "")
}

func printKeyStatus(name string, configured bool) {
	status := "❌ Not configured"
	if configured {
		status = "✅ Configured"
	}
	fmt.Printf("%-21s %s\n", name+":", status)
}

// validateConfig validates the configuration and dependencies
func validateConfig(cfg *config.Config) error {
	fmt.Println("🔍 Validating DealFlowGo Configuration...")
	fmt.Println("═══════════════════════════════════════")

	fmt.Print("📁 Checking directories... ")
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Println("❌")
		return fmt.Errorf("directory validation failed: %w", err)
	}
	fmt.Println("✅")

	fmt.Print("⚙️  Checking configuration values... ")
	if err := cfg.Validate(); err != nil {
		fmt.Println("❌")
		return err
	}
	fmt.Println("✅")

	fmt.Print("🔑 Checking API keys... ")
	var warnings []string
	if cfg.TavilyAPIKey == "" {
		warnings = append(warnings, "TAVILY_API_KEY not configured (web search will fail)")
	}
	if cfg.ScrapeProvider == "firecrawl" && cfg.FirecrawlAPIKey == "" {
		warnings = append(warnings, "FIRECRAWL_API_KEY not configured (set SCRAPE_PROVIDER=local to scrape without it)")
	}
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			warnings = append(warnings, "OPENAI_API_KEY not configured")
		}
	case "deepseek":
		if cfg.DeepSeekAPIKey == "" {
			warnings = append(warnings, "DEEPSEEK_API_KEY not configured")
		}
	}

	if len(warnings) > 0 {
		fmt.Println("⚠️")
		for _, warning := range warnings {
			fmt.Printf("  ⚠️  %s\n", warning)
		}
	} else {
		fmt.Println("✅")
	}

	fmt.Println()
	if len(warnings) == 0 {
		fmt.Println("✅ Configuration validation completed successfully!")
	} else {
		fmt.Printf("⚠️  Configuration validation completed with %d warnings.\n", len(warnings))
		fmt.Println("Some features may be limited without proper API configuration.")
	}

	return nil
}
