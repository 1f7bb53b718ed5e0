package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wippyai/ownership/demo"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "demo.many")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidFormats returns the list of valid report formats
func ValidFormats() []string {
	return []string{"text", "yaml", "json"}
}

// ValidColorModes returns the list of valid color modes
func ValidColorModes() []string {
	return []string{"auto", "always", "never"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	for _, name := range c.Demo.Scenarios {
		if _, ok := demo.Lookup(name); !ok {
			errs = append(errs, ValidationError{
				Field:   "demo.scenarios",
				Value:   name,
				Message: "unknown scenario, valid: " + strings.Join(demo.Names(), ", "),
			})
		}
	}
	if _, err := c.Demo.Selector(); err != nil {
		errs = append(errs, ValidationError{
			Field:   "demo.order",
			Value:   c.Demo.Order,
			Message: "must be " + strings.Join(demo.ValidOrders(), ", ") + ", " + demo.ExprPrefix + "<expression> or a branch number",
		})
	}
	if c.Demo.Many < 1 {
		errs = append(errs, ValidationError{
			Field:   "demo.many",
			Value:   c.Demo.Many,
			Message: "must be at least 1",
		})
	}

	if !slices.Contains(ValidFormats(), c.Output.Format) {
		errs = append(errs, ValidationError{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: "must be one of " + strings.Join(ValidFormats(), ", "),
		})
	}
	if !slices.Contains(ValidColorModes(), c.Output.Color) {
		errs = append(errs, ValidationError{
			Field:   "output.color",
			Value:   c.Output.Color,
			Message: "must be one of " + strings.Join(ValidColorModes(), ", "),
		})
	}

	if !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: "must be one of " + strings.Join(ValidLogLevels(), ", "),
		})
	}

	return errs
}
