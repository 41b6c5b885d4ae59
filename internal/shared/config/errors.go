package config

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a required setting (usually a credential) that is absent.
// Settings lists the accepted variable names; any one of them satisfies the requirement.
type ConfigurationError struct {
	Settings []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Settings) == 1 {
		return fmt.Sprintf("missing configuration: set %s", e.Settings[0])
	}
	return fmt.Sprintf("missing configuration: set %s", strings.Join(e.Settings, " or "))
}
