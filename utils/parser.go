package utils

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/vitwit/boostpay/types"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ParseConfig decodes a YAML (or JSON) document over the default
// configuration and validates the result. A networks list in data replaces
// the default table entirely.
func ParseConfig(data []byte) (*types.Config, error) {
	cfg := types.DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &types.BoostError{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("failed to parse config: %v", err),
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the config file at path.
func LoadConfig(path string) (*types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.NewError(types.ErrConfigError, "read config "+path, err)
	}
	return ParseConfig(data)
}

// ValidateConfig runs struct tag validation followed by the network table
// invariants.
func ValidateConfig(cfg *types.Config) error {
	if err := validate.Struct(cfg); err != nil {
		return &types.BoostError{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("validation failed: %v", err),
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return ValidateNetworks(cfg.Networks)
}
