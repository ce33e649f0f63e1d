package lint

import (
	"fmt"
	"strconv"
	"strings"
)

// GetOption extracts a typed option with a default value.
func GetOption[T any](opts map[string]any, key string, defaultVal T) T {
	if opts == nil {
		return defaultVal
	}
	v, ok := opts[key]
	if !ok {
		return defaultVal
	}
	if typed, ok := v.(T); ok {
		return typed
	}
	return defaultVal
}

// GetIntOption extracts an int option, handling float64 from JSON and
// numeric strings from environment variables.
// Returns ErrInvalidOption when the value is present but not an integer.
func GetIntOption(opts map[string]any, key string, defaultVal int) (int, error) {
	if opts == nil {
		return defaultVal, nil
	}
	v, ok := opts[key]
	if !ok {
		return defaultVal, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidOption, key, n)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidOption, key, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", ErrInvalidOption, key, v)
	}
}

// GetPositiveIntOption is GetIntOption restricted to values greater than zero.
func GetPositiveIntOption(opts map[string]any, key string, defaultVal int) (int, error) {
	n, err := GetIntOption(opts, key, defaultVal)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidOption, key, n)
	}
	return n, nil
}
