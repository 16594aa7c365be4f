package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/chatcomplete/internal/cerrors"
)

// Init writes the commented default configuration to ./chatcomplete.yml, or
// to the global config directory
func Init(global bool) error {
	configPath, err := defaultConfigPath(global)
	if err != nil {
		return cerrors.NewConfigurationError("", "failed to get config path", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		return cerrors.NewAlreadyExistsError(configPath, fmt.Sprintf("config file already exists: %s", configPath))
	}

	if err := writeSampleConfig(configPath); err != nil {
		return cerrors.NewConfigurationError(configPath, "failed to create config file", err)
	}

	if global {
		fmt.Printf("Created global config: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Edit the config file to suit your needs")
		fmt.Println("  2. Run 'chatcomplete edit --global' to edit it later")
		fmt.Println("  3. The global config is loaded automatically")
	} else {
		fmt.Printf("Created sample config: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Edit the config file to suit your needs")
		fmt.Printf("  2. Run 'chatcomplete --config %s validate' to check it\n", configPath)
	}

	return nil
}
