package cli

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/dyike/DealFlowGo/internal/config"
	"github.com/dyike/DealFlowGo/internal/display"
)

// runInteractiveMode walks the user through memo runs until they quit.
func runInteractiveMode(cfg *config.Config) error {
	fmt.Println("🚀 Welcome to DealFlowGo - AI-Powered Investment Memos")
	fmt.Println()

	for {
		companyName, err := PromptForCompany()
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				fmt.Println("👋 Thanks for using DealFlowGo!")
				return nil
			}
			return err
		}

		profile, err := PromptForProfile()
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}

		if err := runMemoCommand(cfg, companyName, profile, false); err != nil {
			display.DisplayError(err)
		}

		again, err := PromptForAnother()
		if err != nil || !again {
			fmt.Println("👋 Thanks for using DealFlowGo!")
			return nil
		}

		fmt.Println()
	}
}
