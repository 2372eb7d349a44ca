// internal/platform/registry/helpers.go
package registry

import (
	"fmt"
	"time"
)

// Helpers para leer ProviderConfig.Custom sin repetir type assertions en
// cada factory. Los valores llegan desde YAML, así que los números pueden
// ser int o float64.

// GetStringConfig returns custom[key] when it is a non-empty string.
func GetStringConfig(custom map[string]interface{}, key, defaultValue string) string {
	if val, ok := custom[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}

// GetIntConfig returns custom[key] as an int. float64 values are truncated.
func GetIntConfig(custom map[string]interface{}, key string, defaultValue int) int {
	switch val := custom[key].(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// GetDurationConfig accepts a time.Duration, a duration string ("5s") or
// a number of seconds.
func GetDurationConfig(custom map[string]interface{}, key string, defaultValue time.Duration) time.Duration {
	switch val := custom[key].(type) {
	case time.Duration:
		return val
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	case int:
		return time.Duration(val) * time.Second
	case float64:
		return time.Duration(val * float64(time.Second))
	}
	return defaultValue
}

// ValidateRequiredString fails when value is empty.
func ValidateRequiredString(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required and cannot be empty", fieldName)
	}
	return nil
}

// ValidateEnum fails when value is not one of allowed.
func ValidateEnum(fieldName, value string, allowed []string) error {
	for _, option := range allowed {
		if value == option {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %v, got %s", fieldName, allowed, value)
}
