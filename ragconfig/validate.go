package ragconfig

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks every struct tag constraint on Config, grounded on
// go-gavel's unit-config validation pattern (SPEC_FULL.md §6.1).
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("ragconfig: invalid configuration: %w", err)
	}
	return nil
}
