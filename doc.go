// Package unitreg provides a lazily-initialized registry of named
// heavyweight resources ("units").
//
// It offers:
// - exactly-once lazy construction per unit under concurrent first access
// - parallel eager start with fail-fast error reporting
// - per-unit activation through runtime configuration
// - idempotent close with isolated per-unit teardown failures at shutdown
package unitreg
