package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/chatcomplete/internal/config"
	"github.com/NikitaCOEUR/chatcomplete/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	ConfigPath string
	Logs       []string
}

// Status displays the effective configuration and a summary of the logs
func Status(params StatusParams) error {
	info, err := config.LoadEffective(params.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Render and display
	output := status.Render(status.Collect(info, params.Logs))
	fmt.Println(output)

	return nil
}
