package sim

import "fmt"

// ConfigurationError reports a missing or invalid collaborator or tuning value
// detected while assembling a simulation.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sim: configuration: %s is required", e.Field)
	}
	return fmt.Sprintf("sim: configuration: %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
