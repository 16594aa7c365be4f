package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/chatcomplete/internal/config"
)

// Validate validates a configuration file, the global one when configPath is empty
func Validate(configPath string) error {
	if configPath == "" {
		configPath = config.FindGlobalConfig()
		if configPath == "" {
			return fmt.Errorf("no config file found; pass a path or run 'chatcomplete init --global'")
		}
	}

	fmt.Printf("Validating: %s\n\n", configPath)

	result, err := config.ValidateFile(configPath)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Println("✅ Configuration is valid!")
		return nil
	}

	// Display errors
	fmt.Println("❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		fmt.Printf("%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	fmt.Printf("\nFound %d error(s)\n", len(result.Errors))

	// Return non-zero exit code
	return fmt.Errorf("validation failed")
}
