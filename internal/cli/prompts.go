package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/dyike/DealFlowGo/internal/models"
)

// PromptForCompany prompts the user to enter a company name
func PromptForCompany() (string, error) {
	var companyName string
	prompt := &survey.Input{
		Message: "Enter the company name (e.g., Shopify, OpenAI):",
		Help:    "The company to research. Public and private companies both work.",
	}

	err := survey.AskOne(prompt, &companyName, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if len(str) == 0 {
			return fmt.Errorf("company name cannot be empty")
		}
		if len(str) > 100 {
			return fmt.Errorf("company name too long (max 100 characters)")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(companyName), nil
}

// PromptForProfile prompts the user to choose an analysis profile
func PromptForProfile() (models.Profile, error) {
	const (
		marketOption = "Market - full memo with ticker lookup and live market data"
		basicOption  = "Basic - quick SWOT from search and website only"
	)

	var selected string
	prompt := &survey.Select{
		Message: "Select an analysis profile:",
		Options: []string{marketOption, basicOption},
		Default: marketOption,
		Help:    "The market profile adds ticker classification and financial metrics on top of the basic flow.",
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	if selected == basicOption {
		return models.ProfileBasic, nil
	}
	return models.ProfileMarket, nil
}

// PromptForAnother asks whether to analyze another company
func PromptForAnother() (bool, error) {
	again := false
	prompt := &survey.Confirm{
		Message: "Analyze another company?",
		Default: true,
	}
	err := survey.AskOne(prompt, &again)
	return again, err
}
