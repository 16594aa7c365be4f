package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/chatcomplete/internal/config"
)

// Schema displays or exports the JSON Schema for configuration files
func Schema(outputPath string) error {
	schemaJSON, err := config.Schema()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	// If output path is provided, write to file
	if outputPath != "" {
		if err := os.WriteFile(outputPath, append(schemaJSON, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", outputPath, err)
		}
		fmt.Printf("JSON Schema written to: %s\n", outputPath)
		return nil
	}

	// Otherwise, print to stdout
	fmt.Println(string(schemaJSON))
	return nil
}
