package unitreg

import "context"

// Descriptor declares one unit instance. Any config layer that can map into
// this struct can integrate with unitreg.
//
// ConfigName is the key under which runtime configuration for this unit is
// looked up; it defaults to Name when empty.
type Descriptor struct {
	Name       string `json:"name" yaml:"name"`
	ConfigName string `json:"configName,omitempty" yaml:"configName,omitempty"`
}

func (d Descriptor) configKey() string {
	if d.ConfigName != "" {
		return d.ConfigName
	}
	return d.Name
}

// Config is the runtime configuration consulted when the registry is built.
type Config struct {
	Units                map[string]UnitConfig `json:"units,omitempty" yaml:"units,omitempty"`
	RequestScopedSession bool                  `json:"requestScopedSession,omitempty" yaml:"requestScopedSession,omitempty"`
}

// UnitConfig is the per-unit slice of Config, keyed by configuration name.
//
// Active is tri-state: nil means no explicit decision, which counts as
// active. Only an explicit false deactivates a unit.
type UnitConfig struct {
	Active *bool `json:"active,omitempty" yaml:"active,omitempty"`
}

func (c Config) active(configName string) bool {
	uc, ok := c.Units[configName]
	if !ok || uc.Active == nil {
		return true
	}
	return *uc.Active
}

// Lifecycle describes how the units of one registry are constructed and
// released.
//
// Construct produces the resource for a named unit and must be provided.
// It may be slow; the registry calls it at most once per unit for as long
// as construction keeps succeeding.
// Teardown is an optional shutdown hook. If omitted, io.Closer is used
// when possible.
type Lifecycle[T any] struct {
	Construct func(ctx context.Context, name string) (T, error)
	Teardown  func(ctx context.Context, value T) error
}
