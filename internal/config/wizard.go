package config

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the
// resulting Config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to bookcat! Let's point it at your catalog.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Backend URL.
	urlPrompt := promptui.Prompt{
		Label:    "Catalog base URL",
		Default:  cfg.BaseURL,
		Validate: validateBaseURL,
	}
	baseURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	cfg.BaseURL = baseURL

	// 2. List endpoint.
	listPrompt := promptui.Select{
		Label: "Book list endpoint",
		Items: []string{
			ListPathRead + "   (current backends)",
			ListPathLegacy + "  (older backends)",
		},
	}
	listIdx, _, err := listPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("list endpoint: %w", err)
	}
	cfg.ListPath = []string{ListPathRead, ListPathLegacy}[listIdx]

	// 3. Colors.
	colorPrompt := promptui.Prompt{
		Label:     "Use colored output",
		IsConfirm: true,
		Default:   "y",
	}
	_, err = colorPrompt.Run()
	cfg.Color = err == nil

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
