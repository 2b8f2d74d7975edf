package atlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for the atlas package.
var (
	// ErrInvalidConfig is wrapped by every configuration error.
	ErrInvalidConfig = errors.New("atlas: invalid vertex configuration")

	// ErrUnknownTiling is returned by Lookup for names outside the catalog.
	ErrUnknownTiling = errors.New("atlas: unknown tiling")
)

// ConfigError describes a malformed vertex configuration. Vertex and
// Slot are -1 when the error is not tied to a vertex type or slot.
type ConfigError struct {
	Vertex int
	Slot   int
	Reason string
	Err    error // underlying cause, may be nil
}

func (e *ConfigError) Error() string {
	var msg string
	switch {
	case e.Vertex < 0:
		msg = "atlas: " + e.Reason
	case e.Slot < 0:
		msg = fmt.Sprintf("atlas: vertex %d: %s", e.Vertex, e.Reason)
	default:
		msg = fmt.Sprintf("atlas: vertex %d, slot %d: %s", e.Vertex, e.Slot, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns ErrInvalidConfig and the underlying cause.
func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidConfig}
	}
	return []error{ErrInvalidConfig, e.Err}
}

// FillError is returned when the corners of a vertex type do not add up
// to a full turn.
type FillError struct {
	Vertex  int
	Degrees float64
}

func (e *FillError) Error() string {
	return fmt.Sprintf("atlas: vertex %d: prototiles fill %.2f° around the vertex, want 360°", e.Vertex, e.Degrees)
}

// Unwrap returns ErrInvalidConfig.
func (e *FillError) Unwrap() error {
	return ErrInvalidConfig
}
