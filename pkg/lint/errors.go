package lint

import (
	"errors"
	"fmt"
)

// ErrInvalidSeverity is wrapped by ConfigError when a severity string is
// not one of error, warning or info.
var ErrInvalidSeverity = errors.New("invalid severity")

// ConfigError reports a malformed rule table. Unlike findings, it stops the
// run before any rule executes.
type ConfigError struct {
	// Key is the rule key or setting that was rejected.
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rule configuration %q: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
