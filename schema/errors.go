package schema

import "fmt"

// ConfigError reports conflicting schema metadata, e.g. Describe/Default
// used alongside WithExternalSchema. The external schema is meant to be the
// sole source of truth for metadata once set.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("schema: conflicting configuration: %s", e.Reason)
}
